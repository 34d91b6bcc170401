// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		args    []string
		want    *Option
		wantErr bool
	}{
		"defaults": {
			args: nil,
			want: &Option{ConfigPath: "/etc/snmpcollect/snmpcollect.yaml"},
		},
		"all options": {
			args: []string{"-c", "/tmp/snmp.yaml", "-l", ":9116", "--once", "--log-level", "warning", "-d", "-v"},
			want: &Option{
				ConfigPath: "/tmp/snmp.yaml",
				Listen:     ":9116",
				Once:       true,
				LogLevel:   "warning",
				Debug:      true,
				Version:    true,
			},
		},
		"long names": {
			args: []string{"--config=/tmp/snmp.yaml", "--listen=127.0.0.1:9116"},
			want: &Option{ConfigPath: "/tmp/snmp.yaml", Listen: "127.0.0.1:9116"},
		},
		"unknown option": {
			args:    []string{"--bogus"},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			opt, err := Parse(test.args)

			if test.wantErr {
				assert.Error(t, err)
				assert.False(t, IsHelp(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, opt)
		})
	}
}

func TestIsHelp(t *testing.T) {
	_, err := Parse([]string{"-h"})

	assert.True(t, IsHelp(err))
}
