package domain

// IndexInfo describes a market index resolved from tabular data.
type IndexInfo struct {
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Components []string `json:"components"`
	Weighting  string   `json:"weighting"`
}

// Performance metric names. They double as the source column names.
const (
	MetricReturn1D   = "return_1d"
	MetricReturn1W   = "return_1w"
	MetricReturn1M   = "return_1m"
	MetricReturn3M   = "return_3m"
	MetricReturn1Y   = "return_1y"
	MetricVolatility = "volatility"
)

// PerformanceMetricNames lists the metrics in their canonical order.
var PerformanceMetricNames = []string{
	MetricReturn1D,
	MetricReturn1W,
	MetricReturn1M,
	MetricReturn3M,
	MetricReturn1Y,
	MetricVolatility,
}

// IndexPerformance holds the pass-through performance metrics of an index.
// Every metric defaults to 0.
type IndexPerformance struct {
	Return1D   float64 `json:"return_1d"`
	Return1W   float64 `json:"return_1w"`
	Return1M   float64 `json:"return_1m"`
	Return3M   float64 `json:"return_3m"`
	Return1Y   float64 `json:"return_1y"`
	Volatility float64 `json:"volatility"`
}

// Set assigns the metric with the given name. It reports false for an
// unknown metric name.
func (p *IndexPerformance) Set(name string, value float64) bool {
	switch name {
	case MetricReturn1D:
		p.Return1D = value
	case MetricReturn1W:
		p.Return1W = value
	case MetricReturn1M:
		p.Return1M = value
	case MetricReturn3M:
		p.Return3M = value
	case MetricReturn1Y:
		p.Return1Y = value
	case MetricVolatility:
		p.Volatility = value
	default:
		return false
	}
	return true
}

// Get returns the metric with the given name.
func (p IndexPerformance) Get(name string) (float64, bool) {
	switch name {
	case MetricReturn1D:
		return p.Return1D, true
	case MetricReturn1W:
		return p.Return1W, true
	case MetricReturn1M:
		return p.Return1M, true
	case MetricReturn3M:
		return p.Return3M, true
	case MetricReturn1Y:
		return p.Return1Y, true
	case MetricVolatility:
		return p.Volatility, true
	}
	return 0, false
}
