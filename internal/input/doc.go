// Package input turns two raw button lines into debounced press events.
//
// A Debouncer samples both lines once per loop tick and yields at most one
// Event per tick:
//   - Button1 / Button2 on a released-to-pressed edge, at most once per
//     debounce interval per button
//   - BothHeldLong once both buttons have been held together for longer than
//     the long-press duration; detection re-arms only after both are released
//
// While both buttons are down no single-button event is produced.
//
// Lines come from GPIO pins on real hardware (GPIOLine, active-low with
// pull-ups) or from SimLine, which the terminal simulator and the remote
// panel drive.
package input
