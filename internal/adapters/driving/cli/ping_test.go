package cli

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing_RunningServer(t *testing.T) {
	a := useTestApp(t)
	srv := httptest.NewServer(a.Router(a.Settings.Get()))
	t.Cleanup(srv.Close)

	out, err := runCommand(t, "ping", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "Version")
	assert.Contains(t, out, "Google")
}

func TestPing_Unreachable(t *testing.T) {
	useTestApp(t)
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	out, err := runCommand(t, "ping", "--url", url)
	require.Error(t, err)
	assert.Contains(t, out, "down")
}
