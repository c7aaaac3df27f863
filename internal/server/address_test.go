//go:build unix

package server

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAddress_TCP(t *testing.T) {
	addr, err := ResolveAddress("127.0.0.1", 8000)
	require.NoError(t, err)
	assert.Equal(t, Address{Network: NetworkTCP, Addr: "127.0.0.1:8000"}, addr)
	assert.Equal(t, "127.0.0.1:8000", addr.String())

	addr, err = ResolveAddress("::1", 9000)
	require.NoError(t, err)
	assert.Equal(t, "[::1]:9000", addr.Addr)
}

func TestResolveAddress_Unix(t *testing.T) {
	addr, err := ResolveAddress("unix:/tmp/fasttext.sock", 8000)
	require.NoError(t, err)
	assert.Equal(t, Address{Network: NetworkUnix, Addr: "/tmp/fasttext.sock"}, addr)
	assert.Equal(t, "unix:/tmp/fasttext.sock", addr.String())

	_, err = ResolveAddress("unix:", 8000)
	assert.ErrorIs(t, err, ErrEmptySocketPath)
}

func socketPath(t *testing.T) string {
	// socket paths are limited to ~104 bytes, t.TempDir can exceed that on macOS
	dir, err := os.MkdirTemp("", "fts")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}

func TestListen_UnixRemovesStaleSocket(t *testing.T) {
	path := socketPath(t)
	addr := Address{Network: NetworkUnix, Addr: path}

	stale, err := net.Listen(NetworkUnix, path)
	require.NoError(t, err)
	// leave the socket file behind like a crashed process would
	stale.(*net.UnixListener).SetUnlinkOnClose(false)
	require.NoError(t, stale.Close())
	_, err = os.Lstat(path)
	require.NoError(t, err)

	listener, err := Listen(addr)
	require.NoError(t, err)

	conn, err := net.Dial(NetworkUnix, path)
	require.NoError(t, err)
	_ = conn.Close()

	require.NoError(t, listener.Close())
	_, err = os.Lstat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListen_UnixRefusesRegularFile(t *testing.T) {
	path := socketPath(t)
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o600))

	_, err := Listen(Address{Network: NetworkUnix, Addr: path})
	assert.ErrorIs(t, err, ErrNotASocket)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestListen_TCP(t *testing.T) {
	listener, err := Listen(Address{Network: NetworkTCP, Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	defer listener.Close()
	assert.NotEmpty(t, listener.Addr().String())

	_, err = Listen(Address{Network: "udp", Addr: "x"})
	assert.Error(t, err)
}
