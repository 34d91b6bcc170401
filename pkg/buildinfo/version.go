// SPDX-License-Identifier: GPL-3.0-or-later

package buildinfo

// Version is the snmpcollect version. It is set at build time with -ldflags "-X ...".
var Version = "v0.0.0"
