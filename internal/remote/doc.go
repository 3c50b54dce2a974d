// Package remote serves the weather panel over HTTP.
//
// Endpoints:
//   - /ws: websocket stream of panel frames; clients may press buttons
//   - /metrics: Prometheus metrics
//   - /healthz: liveness probe
//
// # Message Format
//
// Server to client, on connect and after every redraw:
//
//	{"type":"frame","screen":"menu","lines":["...", "..."],"highlight":2}
//
// Client to server:
//
//	{"type":"press","button":"1"}
//	{"type":"press","button":"2"}
//	{"type":"press","button":"both"}
//
// A press taps the matching software button line; "both" holds both lines
// past the long-press threshold. The device loop samples the lines, so
// remote presses go through the same debouncing as local ones.
//
// Malformed client messages are answered with {"type":"error","message":"..."}
// and the connection stays open.
package remote
