package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Panel represents a weather panel announcing its remote endpoint on the
// network
type Panel struct {
	// Instance is the mDNS instance name (e.g., "kitchen")
	Instance string

	// Hostname is the mDNS hostname (e.g., "raspberrypi.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the remote panel HTTP port
	Port int

	// Metadata contains the TXT record data
	// Common fields: "app=weatherpanel", "version=1.2.0", "city=Stockholm"
	Metadata map[string]string

	// DiscoveredAt is when the panel was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the panel
func (p *Panel) String() string {
	return fmt.Sprintf("Weather panel %s (%s) at %s:%d", p.Instance, p.Hostname, p.IP, p.Port)
}

// BaseURL returns the HTTP base URL for the panel
func (p *Panel) BaseURL() string {
	return fmt.Sprintf("http://%s", p.hostPort())
}

// WebSocketURL returns the URL of the panel's frame stream
func (p *Panel) WebSocketURL() string {
	return fmt.Sprintf("ws://%s/ws", p.hostPort())
}

func (p *Panel) hostPort() string {
	if strings.Contains(p.IP, ":") {
		return fmt.Sprintf("[%s]:%d", p.IP, p.Port)
	}
	return fmt.Sprintf("%s:%d", p.IP, p.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (p *Panel) GetMetadata(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}
