// Package sim is a terminal simulator for the weather panel.
//
// It shows the panel frame in the terminal and turns key presses into
// button levels on two input.SimLine values. The device loop samples those
// lines exactly as it would sample GPIO pins, so debouncing and the
// long-press gesture behave as on hardware.
//
// Keys:
//   - 1: tap button 1 (next)
//   - 2: tap button 2 (open / confirm)
//   - b: hold both buttons long enough to trigger the long-press
//   - q: quit
//
// Usage:
//
//	model := sim.NewModel(panel, b1, b2, cfg.Timing.LongPress)
//	err := sim.Run(ctx, panel, model)
package sim
