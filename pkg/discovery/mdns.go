package discovery

import (
	"context"
	"fmt"
	"net"
	"slices"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
	"github.com/multitimer/multitimer-go/pkg/logs"
	"github.com/sirupsen/logrus"
)

// Config configures advertising and browsing.
type Config struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	TTL time.Duration

	Logger logrus.FieldLogger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{TTL: DefaultTTL}
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logs.Discard()
	}
	return c.Logger
}

// interfaces returns the network interfaces to use. nil means all.
func (c Config) interfaces() []net.Interface {
	if c.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(c.Interface)
	if err != nil {
		c.logger().WithError(err).WithField("interface", c.Interface).Warn("unknown interface, using all")
		return nil
	}
	return []net.Interface{*iface}
}

// MDNSAdvertiser announces one board using zeroconf.
type MDNSAdvertiser struct {
	config Config

	mu     sync.Mutex
	server *zeroconf.Server
	info   BoardInfo
}

// NewMDNSAdvertiser creates an idle advertiser.
func NewMDNSAdvertiser(config Config) *MDNSAdvertiser {
	return &MDNSAdvertiser{config: config}
}

// Advertise starts announcing the board, replacing any earlier
// announcement.
func (a *MDNSAdvertiser) Advertise(ctx context.Context, info BoardInfo) error {
	if err := ValidateInstanceName(info.Instance); err != nil {
		return err
	}
	if info.Port == 0 {
		return ErrInvalidPort
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	txtStrings := TXTRecordsToStrings(EncodeBoardTXT(&info))

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.Instance,
		ServiceType,
		Domain,
		int(info.Port),
		txtStrings,
		a.config.interfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register board service: %w", err)
	}

	a.server = server
	a.info = info
	a.config.logger().WithFields(logrus.Fields{
		"instance": info.Instance,
		"port":     info.Port,
		"txt":      txtStrings,
	}).Info("advertising board")
	return nil
}

// Advertising reports whether a board is announced.
func (a *MDNSAdvertiser) Advertising() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// Stop withdraws the announcement. Stopping an idle advertiser does
// nothing.
func (a *MDNSAdvertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return
	}
	a.server.Shutdown()
	a.server = nil
	a.config.logger().WithField("instance", a.info.Instance).Info("stopped advertising board")
}

// Browse collects boards announced on the network until ctx is done.
// Boards seen on several interfaces are merged into one entry.
func Browse(ctx context.Context, config Config) ([]Board, error) {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	var opts []zeroconf.ClientOption
	if ifaces := config.interfaces(); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}

	errc := make(chan error, 1)
	go func() {
		errc <- zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	var set boardSet
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			b := entryToBoard(entry)
			if b == nil {
				config.logger().WithField("instance", entry.Instance).Debug("ignoring board with bad TXT record")
				continue
			}
			set.add(b)

		case entry, ok := <-removed:
			if !ok {
				removed = nil
				continue
			}
			set.remove(entry.Instance)

		case <-ctx.Done():
			return set.list(), nil

		case err := <-errc:
			if err != nil && ctx.Err() == nil {
				return nil, fmt.Errorf("browse failed: %w", err)
			}
			errc = nil
		}
	}
}

// boardSet collects browse results by instance name in order of first
// announcement. A board removed and announced again moves to the end.
type boardSet struct {
	order  []string
	boards map[string]*Board
}

func (s *boardSet) add(b *Board) {
	if s.boards == nil {
		s.boards = make(map[string]*Board)
	}
	if existing, found := s.boards[b.Instance]; found {
		existing.Addresses = mergeAddresses(existing.Addresses, b.Addresses)
		return
	}
	s.boards[b.Instance] = b
	s.order = append(s.order, b.Instance)
}

func (s *boardSet) remove(instance string) {
	if _, found := s.boards[instance]; !found {
		return
	}
	delete(s.boards, instance)
	s.order = slices.DeleteFunc(s.order, func(name string) bool { return name == instance })
}

func (s *boardSet) list() []Board {
	out := make([]Board, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.boards[name])
	}
	return out
}

// entryToBoard converts a zeroconf entry. It returns nil for entries
// whose TXT record is not a board's.
func entryToBoard(entry *zeroconf.ServiceEntry) *Board {
	ips := make([]net.IP, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	ips = append(ips, entry.AddrIPv4...)
	ips = append(ips, entry.AddrIPv6...)
	return newBoard(entry.Instance, entry.HostName, entry.Port, entry.Text, ips)
}

func newBoard(instance, host string, port int, text []string, ips []net.IP) *Board {
	path, err := DecodeBoardTXT(StringsToTXTRecords(text))
	if err != nil {
		return nil
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, ip.String())
	}

	return &Board{
		Instance:  instance,
		Host:      host,
		Port:      uint16(port),
		Path:      path,
		Addresses: addrs,
	}
}

func mergeAddresses(have, more []string) []string {
	for _, a := range more {
		found := false
		for _, h := range have {
			if h == a {
				found = true
				break
			}
		}
		if !found {
			have = append(have, a)
		}
	}
	return have
}
