package discovery

import (
	"fmt"
	"sort"

	"github.com/grandcat/zeroconf"
)

// Announcement is a running mDNS registration of a remote panel
type Announcement struct {
	server *zeroconf.Server
}

// Announce registers the remote panel under instance on port. Extra TXT
// fields are published alongside the app marker that Scanner filters on.
func Announce(instance string, port int, txt map[string]string) (*Announcement, error) {
	if instance == "" {
		return nil, fmt.Errorf("instance name is required")
	}
	if port <= 0 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, buildText(txt), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	return &Announcement{server: server}, nil
}

// Shutdown withdraws the announcement
func (a *Announcement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

// buildText renders TXT records in a stable order with the app marker first
func buildText(txt map[string]string) []string {
	records := []string{appKey + "=" + appValue}

	keys := make([]string, 0, len(txt))
	for k := range txt {
		if k != appKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		records = append(records, k+"="+txt[k])
	}
	return records
}
