package discovery

import (
	"context"
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/enbility/zeroconf/v3"
)

func newTestEntry(instance, host string, port int) *zeroconf.ServiceEntry {
	entry := &zeroconf.ServiceEntry{}
	entry.Instance = instance
	entry.Service = ServiceTypeHTTPS
	entry.Domain = Domain
	entry.HostName = host
	entry.Port = port
	return entry
}

func TestEntryToService(t *testing.T) {
	entry := newTestEntry("web", "web.local.", 443)
	entry.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.10")}
	entry.AddrIPv6 = []net.IP{net.ParseIP("fe80::1")}
	entry.Text = []string{"path=/"}

	svc := entryToService(entry)
	if svc == nil {
		t.Fatal("entryToService returned nil")
	}
	if svc.Instance != "web" || svc.Host != "web.local." || svc.Port != 443 {
		t.Fatalf("unexpected service: %+v", svc)
	}
	want := []string{"192.168.1.10", "fe80::1"}
	if !reflect.DeepEqual(svc.Addresses, want) {
		t.Fatalf("Addresses = %v, want %v", svc.Addresses, want)
	}
	if !reflect.DeepEqual(svc.Text, []string{"path=/"}) {
		t.Fatalf("Text = %v", svc.Text)
	}
}

func TestEntryToServiceNoAddresses(t *testing.T) {
	entry := newTestEntry("web", "web.local.", 443)
	if svc := entryToService(entry); svc != nil {
		t.Fatalf("entry without addresses should be dropped, got %+v", svc)
	}
}

func TestAggregateEmittedServicesImmutable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	out := make(chan *Service)
	go aggregate(ctx, entries, removed, out)

	first := newTestEntry("web", "web.local.", 443)
	first.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.10")}
	entries <- first

	svc := <-out
	want := []string{"192.168.1.10"}
	if !reflect.DeepEqual(svc.Addresses, want) {
		t.Fatalf("Addresses = %v, want %v", svc.Addresses, want)
	}

	// A second announcement of the same instance on another interface
	// merges privately; the emitted service must not change, and the
	// instance is not emitted again.
	second := newTestEntry("web", "web.local.", 443)
	second.AddrIPv4 = []net.IP{net.ParseIP("10.0.0.10")}
	entries <- second

	other := newTestEntry("printer", "printer.local.", 443)
	other.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.20")}
	entries <- other

	next := <-out
	if next.Instance != "printer" {
		t.Fatalf("second emission = %q, want %q", next.Instance, "printer")
	}
	if !reflect.DeepEqual(svc.Addresses, want) {
		t.Fatalf("emitted service mutated after merge: %v", svc.Addresses)
	}

	cancel()
	select {
	case _, ok := <-out:
		if ok {
			t.Fatal("unexpected emission after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("output channel not closed after cancel")
	}
}

func TestMergeAddresses(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{
			name:     "disjoint",
			existing: []string{"10.0.0.1"},
			incoming: []string{"10.0.0.2"},
			want:     []string{"10.0.0.1", "10.0.0.2"},
		},
		{
			name:     "overlap deduplicated",
			existing: []string{"10.0.0.1", "10.0.0.2"},
			incoming: []string{"10.0.0.2", "10.0.0.3"},
			want:     []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"},
		},
		{
			name:     "nothing new",
			existing: []string{"10.0.0.1"},
			incoming: []string{"10.0.0.1"},
			want:     []string{"10.0.0.1"},
		},
		{
			name:     "new addresses sorted",
			existing: []string{"10.0.0.9"},
			incoming: []string{"10.0.0.3", "10.0.0.1"},
			want:     []string{"10.0.0.9", "10.0.0.1", "10.0.0.3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeAddresses(tt.existing, tt.incoming)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mergeAddresses() = %v, want %v", got, tt.want)
			}
		})
	}
}
