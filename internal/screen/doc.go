// Package screen implements the panel's screen state machine.
//
// Step is a pure function: it takes the current State and one Event and
// returns the next State plus the Actions the driver must carry out (render a
// screen, fetch data, persist the city). No I/O happens here, which keeps every
// transition testable without a display or network.
//
// # Screens
//
//	Boot        splash, moves to Menu once the splash deadline passes
//	Menu        Button1 moves the highlight, Button2 opens the item
//	Forecast    fetched on the first tick after entry, held, then back to Menu
//	Historical  fetched at entry, then idles
//	Settings    drawn once, then hands over to CitySelect
//	CitySelect  Button1 cycles cities, Button2 saves and returns to Menu
//
// BothHeldLong resets to Menu with the first item highlighted from any screen.
//
// # Fetch results
//
// A fetch action is answered by a ForecastLoaded or HistoricalLoaded event.
// Results are applied only while the machine is still waiting for them, so a
// result that arrives after a reset is dropped. This keeps the contract the
// same whether the driver fetches synchronously or in the background.
package screen
