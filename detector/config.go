package detector

import (
	"github.com/weygoldt/thunderfish/algorithms/threshold"
)

// Threshold estimation methods.
const (
	MethodStd        = "std"
	MethodMedianStd  = "medianstd"
	MethodHist       = "hist"
	MethodMinMax     = "minmax"
	MethodPercentile = "percentile"
)

// ThresholdConfig selects and parameterizes the threshold estimator.
type ThresholdConfig struct {
	Method string  `json:"method"` // "std", "medianstd", "hist", "minmax", "percentile"
	Factor float64 `json:"factor"`

	// WinSize enables windowed estimation: one threshold per
	// half-overlapping window of this duration in seconds. Zero uses a
	// single threshold for the whole recording. MedianStd always
	// returns a single threshold and uses WinSize as its snippet
	// duration.
	WinSize float64 `json:"win_size,omitempty"`

	// Percentile of the inter-percentile range, "percentile" method only.
	Percentile float64 `json:"percentile,omitempty"`

	// Histogram shape, "hist" method only.
	NBins      int     `json:"n_bins,omitempty"`
	HistHeight float64 `json:"hist_height,omitempty"`

	// Snippet count, "medianstd" method only.
	NSnippets int `json:"n_snippets,omitempty"`
}

// Config holds the full event detection pipeline configuration. All
// durations are in seconds.
type Config struct {
	Threshold ThresholdConfig `json:"threshold"`

	// MinDistance merges events separated by this gap or less.
	MinDistance float64 `json:"min_distance"`

	// MinDuration/MaxDuration drop events outside (min, max); zero
	// disables the corresponding bound.
	MinDuration float64 `json:"min_duration,omitempty"`
	MaxDuration float64 `json:"max_duration,omitempty"`

	// WidenBy enlarges surviving events on both sides without overlap.
	WidenBy float64 `json:"widen_by,omitempty"`

	// Width measurement at PeakFrac of the peak height above the
	// baseline selected by BasePolicy.
	PeakFrac   float64 `json:"peak_frac"`
	BasePolicy string  `json:"base_policy"`

	// Snippet extraction around each peak, in samples relative to the
	// peak index.
	ExtractSnippets bool `json:"extract_snippets,omitempty"`
	SnippetStart    int  `json:"snippet_start,omitempty"`
	SnippetStop     int  `json:"snippet_stop,omitempty"`
}

// DefaultConfig returns a configuration suited for clean recordings of
// quasi-periodic pulses.
func DefaultConfig() *Config {
	return &Config{
		Threshold: ThresholdConfig{
			Method:     MethodStd,
			Factor:     4.0,
			Percentile: 1.0,
			NBins:      threshold.DefaultHistBins,
			HistHeight: threshold.DefaultHistHeight,
			NSnippets:  1000,
		},
		MinDistance:  0.0,
		PeakFrac:     0.75,
		BasePolicy:   "closest",
		SnippetStart: -10,
		SnippetStop:  10,
	}
}
