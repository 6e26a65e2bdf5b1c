package discovery

import (
	"context"
	"errors"
	"net"
	"sort"

	"github.com/enbility/zeroconf/v3"
)

// mDNS browsing parameters.
const (
	// ServiceTypeHTTPS is the browsed service type.
	ServiceTypeHTTPS = "_https._tcp"

	// Domain is the mDNS domain.
	Domain = "local."
)

// ErrNotFound is returned when browsing ends without a match.
var ErrNotFound = errors.New("discovery: service not found")

// Service is one discovered HTTPS endpoint.
type Service struct {
	// Instance is the advertised instance name.
	Instance string

	// Host is the advertised hostname.
	Host string

	// Port is the advertised port.
	Port int

	// Addresses are the resolved IP addresses, IPv4 before IPv6.
	Addresses []string

	// Text holds the raw TXT records.
	Text []string
}

// clone returns a deep copy safe to hand to a consumer.
func (s *Service) clone() *Service {
	dup := *s
	dup.Addresses = append([]string(nil), s.Addresses...)
	dup.Text = append([]string(nil), s.Text...)
	return &dup
}

// BrowserConfig configures a Browser.
type BrowserConfig struct {
	// Interface restricts browsing to one named network interface.
	// Empty browses all interfaces.
	Interface string
}

// Browser browses the local network for HTTPS endpoints.
type Browser struct {
	config BrowserConfig
}

// NewBrowser creates a Browser.
func NewBrowser(config BrowserConfig) *Browser {
	return &Browser{config: config}
}

// Browse watches for HTTPS endpoints until the context is cancelled.
// Announcements are aggregated by instance name: addresses seen on
// multiple interfaces merge into a single entry, and an instance is
// emitted at most once. The returned channel is closed when browsing
// stops.
func (b *Browser) Browse(ctx context.Context) (<-chan *Service, error) {
	out := make(chan *Service)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	opts := b.browserOptions()

	go aggregate(ctx, entries, removed, out)

	go func() {
		_ = zeroconf.Browse(ctx, ServiceTypeHTTPS, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// aggregate folds per-interface announcements into one entry per
// instance name and closes out when browsing stops. Emitted services
// are clones: later announcements merge into the private map copy
// only, so a consumer never observes a mutation.
func aggregate(ctx context.Context, entries, removed chan *zeroconf.ServiceEntry, out chan *Service) {
	defer close(out)

	services := make(map[string]*Service)

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return
			}
			svc := entryToService(entry)
			if svc == nil {
				continue
			}

			existing, found := services[svc.Instance]
			if found {
				existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
				continue
			}
			services[svc.Instance] = svc
			select {
			case out <- svc.clone():
			case <-ctx.Done():
				return
			}

		case entry, ok := <-removed:
			if !ok {
				continue
			}
			delete(services, entry.Instance)

		case <-ctx.Done():
			return
		}
	}
}

// Find browses until an endpoint with the given instance name appears.
// An empty instance matches the first endpoint seen.
func (b *Browser) Find(ctx context.Context, instance string) (*Service, error) {
	results, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case svc, ok := <-results:
			if !ok {
				return nil, ErrNotFound
			}
			if instance == "" || svc.Instance == instance {
				return svc, nil
			}
		case <-ctx.Done():
			return nil, ErrNotFound
		}
	}
}

func (b *Browser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// entryToService converts a zeroconf entry. Entries with no resolved
// address are dropped.
func entryToService(entry *zeroconf.ServiceEntry) *Service {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	if len(addrs) == 0 {
		return nil
	}

	return &Service{
		Instance:  entry.Instance,
		Host:      entry.HostName,
		Port:      entry.Port,
		Addresses: addrs,
		Text:      entry.Text,
	}
}

// mergeAddresses unions two address lists, keeping deterministic
// order.
func mergeAddresses(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, a := range existing {
		if !seen[a] {
			seen[a] = true
			merged = append(merged, a)
		}
	}
	added := false
	for _, a := range incoming {
		if !seen[a] {
			seen[a] = true
			merged = append(merged, a)
			added = true
		}
	}
	if added {
		sort.Strings(merged[len(existing):])
	}
	return merged
}
