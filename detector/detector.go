// Package detector glues the algorithm packages into a configured,
// logged end-to-end pipeline: threshold estimation, peak/trough
// detection, event alignment, merging, duration filtering, widening,
// width measurement and snippet extraction. It is the consumer surface
// for window selection, pulse classification and feature extraction;
// all inputs and outputs are in-memory sequences.
package detector

import (
	"fmt"

	"github.com/weygoldt/thunderfish/algorithms/common"
	"github.com/weygoldt/thunderfish/algorithms/detect"
	"github.com/weygoldt/thunderfish/algorithms/events"
	"github.com/weygoldt/thunderfish/algorithms/threshold"
	"github.com/weygoldt/thunderfish/logging"
)

// Events is the result of one detection run. Peak and trough indices
// refer to samples of the input data; onsets, offsets and measures are
// in seconds.
type Events struct {
	Threshold float64              `json:"threshold"` // scalar threshold, 0 when windowed
	Peaks     []int                `json:"peaks"`
	Troughs   []int                `json:"troughs"`
	Onsets    []float64            `json:"onsets"`
	Offsets   []float64            `json:"offsets"`
	Measures  []events.PeakMeasure `json:"measures"`
	Snippets  [][]float64          `json:"snippets,omitempty"`
}

// EventDetector runs the detection pipeline with a fixed configuration.
// It holds no per-run state: a single detector may be used from many
// goroutines, one recording per call.
type EventDetector struct {
	config *Config
	logger logging.Logger
}

// New creates an event detector. A nil config selects DefaultConfig.
func New(config *Config) *EventDetector {
	if config == nil {
		config = DefaultConfig()
	}
	return &EventDetector{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "event_detector",
		}),
	}
}

// Detect extracts cleaned event intervals from one recording sampled at
// rate Hz.
func (d *EventDetector) Detect(data []float64, rate float64) (*Events, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data: %w", common.ErrInvalidArgument)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("sampling rate must be positive, got %g: %w",
			rate, common.ErrInvalidArgument)
	}
	base, err := events.ParseBasePolicy(d.config.BasePolicy)
	if err != nil {
		return nil, err
	}

	time := make([]float64, len(data))
	for i := range time {
		time[i] = float64(i) / rate
	}

	scalarThresh, perSample, err := d.estimateThreshold(data, rate)
	if err != nil {
		return nil, fmt.Errorf("threshold estimation failed: %w", err)
	}

	var peaks, troughs []int
	if perSample != nil {
		peaks, troughs, err = detect.PeaksVarying(data, perSample)
	} else {
		peaks, troughs, err = detect.Peaks(data, scalarThresh)
	}
	if err != nil {
		return nil, fmt.Errorf("peak detection failed: %w", err)
	}
	d.logger.Debug("detected extrema", logging.Fields{
		"peaks":     len(peaks),
		"troughs":   len(troughs),
		"threshold": scalarThresh,
	})

	measures, err := events.PeakSizeWidths(time, data, peaks, troughs,
		d.config.PeakFrac, base)
	if err != nil {
		return nil, fmt.Errorf("peak measurement failed: %w", err)
	}

	// event intervals run from each peak to its trough, in seconds
	onsets := indexTimes(time, peaks)
	offsets := indexTimes(time, troughs)
	onsets, offsets = events.TrimToOnset(onsets, offsets)
	if d.config.MinDistance > 0 {
		onsets, offsets = events.Merge(onsets, offsets, d.config.MinDistance)
	}
	onsets, offsets = events.Remove(onsets, offsets,
		d.config.MinDuration, d.config.MaxDuration)
	if d.config.WidenBy > 0 {
		onsets, offsets = events.Widen(onsets, offsets,
			time[len(time)-1], d.config.WidenBy)
	}

	result := &Events{
		Threshold: scalarThresh,
		Peaks:     peaks,
		Troughs:   troughs,
		Onsets:    onsets,
		Offsets:   offsets,
		Measures:  measures,
	}

	if d.config.ExtractSnippets {
		result.Snippets, err = detect.Snippets(data, peaks,
			d.config.SnippetStart, d.config.SnippetStop)
		if err != nil {
			return nil, fmt.Errorf("snippet extraction failed: %w", err)
		}
	}

	d.logger.Info("event detection finished", logging.Fields{
		"events":   len(result.Onsets),
		"peaks":    len(peaks),
		"duration": float64(len(data)) / rate,
	})
	return result, nil
}

// estimateThreshold returns either a scalar threshold or a per-sample
// threshold sequence, depending on the configured method and window.
func (d *EventDetector) estimateThreshold(data []float64, rate float64) (float64, []float64, error) {
	cfg := d.config.Threshold
	windowed := cfg.WinSize > 0 && cfg.Method != MethodMedianStd

	switch cfg.Method {
	case MethodStd:
		if windowed {
			th, err := threshold.StdWindowed(data, rate, cfg.WinSize, cfg.Factor)
			return 0, th, err
		}
		th, err := threshold.Std(data, cfg.Factor)
		return th, nil, err
	case MethodMedianStd:
		winSize := cfg.WinSize
		if winSize <= 0 {
			winSize = 0.0005
		}
		th, err := threshold.MedianStd(data, rate, winSize, cfg.NSnippets, cfg.Factor)
		return th, nil, err
	case MethodHist:
		if windowed {
			th, _, err := threshold.HistWindowed(data, rate, cfg.WinSize,
				cfg.Factor, cfg.NBins, cfg.HistHeight)
			return 0, th, err
		}
		th, _, err := threshold.Hist(data, cfg.Factor, cfg.NBins, cfg.HistHeight)
		return th, nil, err
	case MethodMinMax:
		if windowed {
			th, err := threshold.MinMaxWindowed(data, rate, cfg.WinSize, cfg.Factor)
			return 0, th, err
		}
		th, err := threshold.MinMax(data, cfg.Factor)
		return th, nil, err
	case MethodPercentile:
		if windowed {
			th, err := threshold.PercentileWindowed(data, rate, cfg.WinSize,
				cfg.Factor, cfg.Percentile)
			return 0, th, err
		}
		th, err := threshold.Percentile(data, cfg.Factor, cfg.Percentile)
		return th, nil, err
	default:
		return 0, nil, fmt.Errorf("unknown threshold method %q: %w",
			cfg.Method, common.ErrInvalidArgument)
	}
}

// indexTimes maps sample indices to their timestamps.
func indexTimes(time []float64, indices []int) []float64 {
	times := make([]float64, len(indices))
	for i, idx := range indices {
		times[i] = time[idx]
	}
	return times
}
