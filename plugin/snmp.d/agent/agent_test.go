// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgent_pollOnce(t *testing.T) {
	var out bytes.Buffer
	a := New(Config{Once: true, Out: &out})
	f := newPollerFactory()
	f.failFor["broken"] = errors.New("bad config")

	settings := testSettings(testEntry("router1", 1), testEntry("switch1", 2), testEntry("broken", 3))

	require.NoError(t, a.pollOnce(context.Background(), settings, f.new))

	assert.Contains(t, out.String(), `snmp_up{host="router1"} 1`)
	assert.Contains(t, out.String(), `snmp_up{host="switch1"} 1`)
	assert.NotContains(t, out.String(), `host="broken"`)

	for _, host := range []string{"router1", "switch1"} {
		require.Len(t, f.created(host), 1)
		assert.Equal(t, 1, f.created(host)[0].pollCount())
		assert.Equal(t, 1, f.created(host)[0].cleanupCount())
	}
}

func TestAgent_Run_once_badConfig(t *testing.T) {
	a := New(Config{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"), Once: true, Out: &bytes.Buffer{}})

	assert.Error(t, a.Run())
}

func TestAgent_serve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snmpcollect.yaml")
	writeFile(t, path, "update_every: 1\ndata: []\nhosts: []\n")
	a := New(Config{ConfigPath: path, Listen: "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	hup := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, hup) }()

	hup <- syscall.SIGHUP
	assert.Eventually(t, func() bool { return len(hup) == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not return")
	}
}

func TestAgent_serve_badConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snmpcollect.yaml")
	writeFile(t, path, "hosts:\n  - address: 192.0.2.1\n")
	a := New(Config{ConfigPath: path})

	assert.Error(t, a.serve(context.Background(), make(chan os.Signal)))
}

func TestFirstNotEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNotEmpty("", "b", "c"))
	assert.Equal(t, "", firstNotEmpty("", ""))
}
