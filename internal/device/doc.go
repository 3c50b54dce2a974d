// Package device runs the weather panel main loop.
//
// A Runner owns the screen state and is the only goroutine that touches it.
// Every tick it samples the input source, feeds the resulting events to the
// state machine and performs the returned actions: drawing through a
// display.Renderer, fetching through a Fetcher and persisting the selected
// city through a CityStore. Fetches run synchronously and block the loop
// until they complete.
//
// Other goroutines (the terminal simulator, the remote panel) only flip
// button levels and read rendered frames, so no locking of screen state is
// needed beyond the snapshot returned by State.
package device
