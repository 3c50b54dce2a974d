// Package discovery announces and finds weather panels with mDNS.
//
// A panel running its remote endpoint registers a "_weatherpanel._tcp"
// service with TXT records describing it. Scanner browses for that service
// type and returns the panels it hears from until the timeout expires.
//
// # Usage Example
//
//	// Announce while the remote panel is serving
//	ann, err := discovery.Announce("kitchen", 8080, map[string]string{"city": "Stockholm"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ann.Shutdown()
//
//	// Elsewhere on the network
//	panels, err := discovery.ScanForPanels(ctx, 5*time.Second)
//	for _, p := range panels {
//	    fmt.Println(p, p.WebSocketURL())
//	}
//
// # Panel Information
//
// Each discovered panel includes:
//   - Instance: the announced instance name
//   - Hostname and IP: IPv4 preferred over IPv6
//   - Port: remote panel HTTP port
//   - Metadata: TXT fields such as version and city
package discovery
