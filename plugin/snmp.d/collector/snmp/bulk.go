// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

// bulkColumnIndex maps the position of a varbind in a response to the column that
// requested it. A GETBULK response repeats the requested OIDs in request order, so
// slot j belongs to requested[j mod n]. requested is the snapshot of column indexes
// taken when the request was built; columns deactivated while the response is being
// consumed do not change it. A GETNEXT response is the n == len(vars) case.
func bulkColumnIndex(slot int, requested []int) int {
	if slot < 0 || len(requested) == 0 {
		return -1
	}
	return requested[slot%len(requested)]
}

// maxRepetitions splits the bulk budget between the columns still walking.
func maxRepetitions(bulkSize, active int) uint32 {
	if active <= 0 || bulkSize <= active {
		return 1
	}
	return uint32(bulkSize / active)
}
