package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
)

var (
	ErrUnixSocketUnsupported = errors.New("unix domain sockets are not supported on this platform")
	ErrEmptySocketPath       = errors.New("unix socket path is empty")
	ErrNotASocket            = errors.New("bind path exists and is not a socket")
)

const (
	NetworkTCP  = "tcp"
	NetworkUnix = "unix"
)

// Address is where the server binds: a TCP host:port or a filesystem socket path
type Address struct {
	Network string
	Addr    string
}

func (a Address) String() string {
	if a.Network == NetworkUnix {
		return constants.UnixAddressPrefix + a.Addr
	}
	return a.Addr
}

// ResolveAddress turns the configured address and port into a bind address.
// An address of the form unix:/path ignores the port.
func ResolveAddress(address string, port int) (Address, error) {
	if path, ok := strings.CutPrefix(address, constants.UnixAddressPrefix); ok {
		if !unixSupported {
			return Address{}, ErrUnixSocketUnsupported
		}
		if path == "" {
			return Address{}, ErrEmptySocketPath
		}
		return Address{Network: NetworkUnix, Addr: path}, nil
	}
	return Address{Network: NetworkTCP, Addr: net.JoinHostPort(address, strconv.Itoa(port))}, nil
}

// Listen binds exactly one listener for addr
func Listen(addr Address) (net.Listener, error) {
	switch addr.Network {
	case NetworkTCP:
		return net.Listen(NetworkTCP, addr.Addr)
	case NetworkUnix:
		if !unixSupported {
			return nil, ErrUnixSocketUnsupported
		}
		if err := removeStaleSocket(addr.Addr); err != nil {
			return nil, err
		}
		return net.Listen(NetworkUnix, addr.Addr)
	default:
		return nil, fmt.Errorf("unknown network %q", addr.Network)
	}
}

// removeStaleSocket deletes a socket left behind by a previous process. Regular files are never removed.
func removeStaleSocket(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%w: %s", ErrNotASocket, path)
	}
	return os.Remove(path)
}
