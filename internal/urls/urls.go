package urls

// ForecastAPI documents the point forecast endpoint used by the forecast screen.
const ForecastAPI = "https://opendata.smhi.se/apidocs/metfcst/index.html"

// ObservationsAPI documents the station observation endpoint used by the
// historical screen, including how station ids are assigned.
const ObservationsAPI = "https://opendata.smhi.se/apidocs/metobs/index.html"

// StationList lists the observation stations that report air temperature
// (parameter 1). Use it to pick a station_id for a new city.
const StationList = "https://opendata-download-metobs.smhi.se/api/version/latest/parameter/1.json"
