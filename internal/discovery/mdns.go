package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type of the remote panel
	ServiceType = "_weatherpanel._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for panel discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is assumed when an entry carries no port
	DefaultPort = 8080

	// appKey and appValue mark TXT records written by Announce
	appKey   = "app"
	appValue = "weatherpanel"
)

// Scanner handles mDNS panel discovery
type Scanner struct {
	// Timeout is the maximum time to wait for panel discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForPanels discovers all weather panels on the local network until the
// timeout expires or ctx is canceled.
func (s *Scanner) ScanForPanels(ctx context.Context) ([]*Panel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})
	panels := make([]*Panel, 0)
	seen := make(map[string]bool)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			panel := s.parseServiceEntry(entry)
			if panel == nil || seen[panel.Instance] {
				continue
			}
			seen[panel.Instance] = true
			panels = append(panels, panel)
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	// The resolver closes entries once ctx is done.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	return panels, nil
}

// WaitForPanel waits for a panel with the given instance name
func (s *Scanner) WaitForPanel(ctx context.Context, instance string) (*Panel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Panel, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		if panel := s.firstMatching(entries, instance); panel != nil {
			found <- panel
			cancel()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case panel := <-found:
		return panel, nil
	case <-ctx.Done():
		select {
		case panel := <-found:
			return panel, nil
		default:
		}
		return nil, fmt.Errorf("panel %q not found within timeout", instance)
	}
}

// firstMatching reads entries until a weather panel named instance appears.
// It returns nil if entries is closed first.
func (s *Scanner) firstMatching(entries <-chan *zeroconf.ServiceEntry, instance string) *Panel {
	for entry := range entries {
		panel := s.parseServiceEntry(entry)
		if panel != nil && panel.Instance == instance {
			return panel
		}
	}
	return nil
}

// parseServiceEntry converts a zeroconf service entry to a Panel.
// Returns nil if the entry was not announced by a weather panel.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Panel {
	if entry.Instance == "" {
		return nil
	}

	metadata := parseText(entry.Text)
	if metadata[appKey] != appValue {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return &Panel{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// parseText splits TXT records in "key=value" format. Keys without a value
// map to the empty string.
func parseText(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	return metadata
}

// ScanForPanels is a convenience function to scan with a custom timeout
func ScanForPanels(ctx context.Context, timeout time.Duration) ([]*Panel, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForPanels(ctx)
}
