package browser

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLaunchesPlatformCommand(t *testing.T) {
	var gotName string
	var gotArgs []string

	o := &Opener{command: func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		// Substitute a no-op so the test never spawns a browser.
		return exec.CommandContext(ctx, "true")
	}}

	err := o.Open(context.Background(), "https://example.com/article")
	require.NoError(t, err)

	wantName, wantArgs := launcher("https://example.com/article")
	assert.Equal(t, wantName, gotName)
	assert.Equal(t, wantArgs, gotArgs)
}

func TestOpenRejectsBadURLs(t *testing.T) {
	o := NewOpener()
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{name: "file scheme", url: "file:///etc/passwd"},
		{name: "javascript scheme", url: "javascript:alert(1)"},
		{name: "no scheme", url: "example.com"},
		{name: "unparsable", url: "http://[::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, o.Open(ctx, tt.url))
		})
	}
}

func TestOpenStartFailure(t *testing.T) {
	o := &Opener{command: func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "/nonexistent/launcher")
	}}

	err := o.Open(context.Background(), "https://example.com")
	assert.ErrorContains(t, err, "launching system browser")
}
