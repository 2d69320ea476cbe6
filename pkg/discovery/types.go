package discovery

import (
	"errors"
	"time"
)

const (
	// ServiceType is the DNS-SD service type of a web board.
	ServiceType = "_multitimer._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// Version is the TXT protocol version advertised.
	Version = "1"

	// DefaultPath is the board path advertised when none is set.
	DefaultPath = "/"
)

// TXT record keys.
const (
	TXTKeyVersion = "ver"
	TXTKeyPath    = "path"
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// DefaultTTL is the DNS record TTL.
	DefaultTTL = 120 * time.Second

	// BrowseTimeout is the default duration of a Browse.
	BrowseTimeout = 3 * time.Second
)

// Errors.
var (
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrInvalidPort         = errors.New("invalid port")
	ErrMissingRequired     = errors.New("missing required TXT field")
	ErrUnsupportedVersion  = errors.New("unsupported board version")
)

// BoardInfo describes the board being advertised.
type BoardInfo struct {
	// Instance is the user visible service name, e.g. "kitchen".
	Instance string

	Port uint16

	// Path is the HTTP path of the board page.
	Path string
}

// Board is a board found on the network.
type Board struct {
	Instance  string
	Host      string
	Port      uint16
	Path      string
	Addresses []string
}

// URL returns an http URL for the board using its first address, or its
// host name when no address is known.
func (b Board) URL() string {
	host := b.Host
	if len(b.Addresses) > 0 {
		host = b.Addresses[0]
	}
	return httpURL(host, b.Port, b.Path)
}
