//go:build linux

package notify

import (
	"os"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyArgs(t *testing.T) {
	args := notifyArgs(Message{
		Summary:  "flipplayer",
		Body:     "Failed to load video",
		Icon:     "dialog-error",
		Expire:   5 * time.Second,
		Replaces: 7,
		Critical: true,
	})

	require.Len(t, args, 8)
	assert.Equal(t, "flipplayer", args[0])
	assert.Equal(t, uint32(7), args[1])
	assert.Equal(t, "dialog-error", args[2])
	assert.Equal(t, "Failed to load video", args[4])
	assert.Equal(t, int32(5000), args[7])

	hints, ok := args[6].(map[string]dbus.Variant)
	require.True(t, ok)
	assert.Equal(t, byte(2), hints["urgency"].Value())
}

func TestNotifyArgs_ServerDefaultTimeout(t *testing.T) {
	args := notifyArgs(Message{Summary: "x"})

	assert.Equal(t, int32(-1), args[7])
	hints := args[6].(map[string]dbus.Variant)
	assert.Equal(t, byte(1), hints["urgency"].Value())
}

func TestNew_SessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n, err := New()
	require.NoError(t, err)
	assert.NotNil(t, n)
}
