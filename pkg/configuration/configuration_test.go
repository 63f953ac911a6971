package configuration

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T, args ...string) *Root {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envConfig, "")

	cmd := &cobra.Command{Use: "tfgate"}
	c := EmptyRoot()
	require.NoError(t, c.Init(cmd))
	require.NoError(t, c.InitReverseProxy(cmd))
	require.NoError(t, cmd.ParseFlags(args))
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func TestRoot_Defaults(t *testing.T) {
	c := newRoot(t)
	require.NoError(t, c.Load())

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "", c.Server.Host)
	assert.Equal(t, "tfgate", c.Discovery.InstanceName)
	assert.Empty(t, c.Path())
	assert.Nil(t, c.CORS.Options())
}

func TestRoot_Precedence(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: 9000
  host: 127.0.0.1
basicAuth:
  username: from-file
  password: file-secret
cors:
  allowedOrigins:
    - https://files.example.com
reverseProxy:
  upstream: http://127.0.0.1:8081
  requestHeader:
    - X-Forwarded-User=tfgate
`)

	c := newRoot(t, "--config", path, "--username", "from-flag")
	t.Setenv("TFGATE_SERVER_PORT", "9100")
	t.Setenv("TFGATE_BASICAUTH_USERNAME", "from-env")

	require.NoError(t, c.Load())
	require.NoError(t, c.Prepare())

	assert.Equal(t, path, c.Path())
	assert.Equal(t, 9100, c.Server.Port, "env overrides file")
	assert.Equal(t, "127.0.0.1", c.Server.Host)
	assert.Equal(t, "from-flag", c.BasicAuth.Username, "flag overrides env")
	assert.Equal(t, "file-secret", c.BasicAuth.Password)
	assert.Equal(t, []string{"https://files.example.com"}, c.CORS.AllowedOrigins)
	assert.Equal(t, "tfgate", c.ReverseProxy.RequestHeaders.Get("X-Forwarded-User"))

	opts := c.CORS.Options()
	require.NotNil(t, opts)
	assert.Contains(t, opts.AllowedHeaders, "Authorization")
}

func TestRoot_MissingConfigFile(t *testing.T) {
	c := newRoot(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, c.Load())
}

func TestBasicAuth_PasswordFile(t *testing.T) {
	path := writeFile(t, "password", "  hunter2\n")
	c := newRoot(t, "-u", "admin", "--password-file", path)

	require.NoError(t, c.Load())
	require.NoError(t, c.Prepare())
	assert.Equal(t, "hunter2", c.BasicAuth.Password)
}

func TestBasicAuth_PasswordPrompt(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func() (string, error) {
		return "prompted\n", nil
	}

	c := newRoot(t, "-u", "admin", "-W")
	require.NoError(t, c.Load())
	require.NoError(t, c.Prepare())
	assert.Equal(t, "prompted", c.BasicAuth.Password)
}

func TestBasicAuth_Redacted(t *testing.T) {
	ba := BasicAuth{Username: "admin", Password: "secret123"}
	r := ba.Redacted()
	assert.Equal(t, "admin", r.Username)
	assert.NotContains(t, r.Password, "secret")
	assert.Equal(t, "secret123", ba.Password)
}

func TestRoot_Validate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative port", []string{"--port", "-1"}},
		{"port too large", []string{"--port", "70000"}},
		{"cert without key", []string{"--tls-cert", "cert.pem"}},
		{"key without cert", []string{"--tls-key", "key.pem"}},
		{"bad size", []string{"--max-read-size", "lots"}},
		{"size overflow", []string{"--max-read-size", "10000000TB"}},
		{"bad upstream", []string{"--upstream", "ftp://files"}},
		{"bad request header", []string{"--request-header", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newRoot(t, tt.args...)
			require.NoError(t, c.Load())
			assert.Error(t, c.Prepare())
		})
	}
}

func TestServer_ValidateNegativeReadLimit(t *testing.T) {
	s := Server{Port: 8080, MaxReadBytes: -1}
	assert.Error(t, s.validate())

	s.MaxReadBytes = 0
	assert.NoError(t, s.validate())
}

func TestParseSizeString(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"3B", 3},
		{"12b", 2},
		{"10KB", 10 * 1000},
		{"10KiB", 10 * 1024},
		{"10MB", 10 * 1000 * 1000},
		{"2GiB", 2 * 1024 * 1024 * 1024},
		{"8Mb", 1000 * 1000},
		{"9223372036854775807B", math.MaxInt64},
		{"8388607TiB", 8388607 << 40},
	}
	for _, tt := range tests {
		got, err := ParseSizeString(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"lots", "1.5GB", "10", "x10MB", "10MBx", "10iB", "10000000TB", "8388608TiB", "9223372036854775808B"} {
		_, err := ParseSizeString(bad)
		assert.Error(t, err, bad)
	}
}
