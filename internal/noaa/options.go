package noaa

import "net/url"

// Default parameter values for the CO-OPS data API. These mirror the
// API's documented defaults for tide work: MLLW datum, GMT timestamps,
// english units, high/low prediction interval.
const (
	DefaultDatum    = "MLLW"
	DefaultTimeZone = "gmt"
	DefaultUnits    = "english"
	DefaultInterval = "hilo"
)

// applicationName is sent on every data API request so NOAA can
// attribute traffic.
const applicationName = "MCP_NOAA_Tides"

// DataOptions are the optional parameters shared by the data API
// products. Zero values take the documented defaults. BeginDate and
// EndDate use yyyyMMdd format and are only honored as a pair; when
// either is missing the query covers today.
type DataOptions struct {
	BeginDate string
	EndDate   string
	Datum     string
	TimeZone  string
	Units     string
}

func (o DataOptions) withDefaults() DataOptions {
	if o.Datum == "" {
		o.Datum = DefaultDatum
	}
	if o.TimeZone == "" {
		o.TimeZone = DefaultTimeZone
	}
	if o.Units == "" {
		o.Units = DefaultUnits
	}
	return o
}

// apply fills values with the resolved option set for the given product.
func (o DataOptions) apply(values url.Values, stationID, product string) {
	resolved := o.withDefaults()

	values.Set("station", stationID)
	values.Set("product", product)
	values.Set("datum", resolved.Datum)
	values.Set("time_zone", resolved.TimeZone)
	values.Set("units", resolved.Units)
	values.Set("format", "json")
	values.Set("application", applicationName)

	if resolved.BeginDate != "" && resolved.EndDate != "" {
		values.Set("begin_date", resolved.BeginDate)
		values.Set("end_date", resolved.EndDate)
	} else {
		values.Set("date", "today")
	}
}

// PredictionOptions extends DataOptions with the prediction interval.
type PredictionOptions struct {
	DataOptions
	Interval string
}

func (o PredictionOptions) apply(values url.Values, stationID string) {
	o.DataOptions.apply(values, stationID, "predictions")
	interval := o.Interval
	if interval == "" {
		interval = DefaultInterval
	}
	values.Set("interval", interval)
}
