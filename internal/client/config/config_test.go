package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Empty(t, c.AccessToken)
	assert.Equal(t, cryptox.DefaultIterations, c.KDFIterations)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "client.yml")
	require.NoError(t, os.WriteFile(path, []byte("server_endpoint_addr: file:1\naccess_token: from-file\nrequest_timeout: 2s\n"), 0o600))

	os.Args = []string{"cmd", "-c", path, "-a", "flag:2"}
	c := LoadConfig()

	assert.Equal(t, "flag:2", c.ServerEndpointAddr, "flags override the file")
	assert.Equal(t, "from-file", c.AccessToken)
	assert.Equal(t, 2*time.Second, c.RequestTimeout)
	assert.Equal(t, cryptox.DefaultIterations, c.KDFIterations)
}

func TestParseFile_JSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kdf_iterations": 5000, "request_timeout": 1000000000}`), 0o600))
	os.Args = []string{"cmd", "-config", path}

	c := &Config{}
	c.LoadDefaults()
	parseFile(c)

	assert.Equal(t, 5000, c.KDFIterations)
	assert.Equal(t, time.Second, c.RequestTimeout)
}

func TestParseFile_BadFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	os.Args = []string{"cmd", "-c", path}

	require.Panics(t, func() { parseFile(&Config{}) })
}
