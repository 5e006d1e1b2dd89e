// Package telemetry aggregates per-frame particle field statistics into
// fixed-size windows and writes them as CSV rows.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/phanxgames/ambient"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is the number of frames aggregated per row.
const DefaultWindow = 60

// WindowStats summarizes one window of frames.
type WindowStats struct {
	WindowEnd  uint64  `csv:"window_end"`
	Frames     int     `csv:"frames"`
	Particles  int     `csv:"particles"`
	MeanSize   float64 `csv:"mean_size"`
	MaxSize    float64 `csv:"max_size"`
	Magnified  float64 `csv:"magnified"`  // mean particles under pointer influence per frame
	MeanSpeed  float64 `csv:"mean_speed"` // mean push velocity magnitude
	MeanTickUS float64 `csv:"mean_tick_us"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("mean_size", s.MeanSize),
		slog.Float64("max_size", s.MaxSize),
		slog.Float64("magnified", s.Magnified),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("mean_tick_us", s.MeanTickUS),
	)
}

// Recorder samples a field after every frame. Attach Observe with
// Field.SetFrameObserver.
type Recorder struct {
	window int
	out    io.Writer
	file   *os.File

	headerWritten bool
	lastFrame     time.Time
	now           func() time.Time

	sizes     []float64
	speeds    []float64
	magnified []float64
	ticks     []float64
	particles int

	last WindowStats
	rows int
}

// NewRecorder writes rows to w, aggregating window frames per row. A window
// of zero or less uses DefaultWindow.
func NewRecorder(w io.Writer, window int) *Recorder {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Recorder{
		window: window,
		out:    w,
		now:    time.Now,
	}
}

// NewFileRecorder creates dir and writes rows to dir/frames.csv.
// Returns nil if dir is empty (output disabled); a nil Recorder is safe to use.
func NewFileRecorder(dir string, window int) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	r := NewRecorder(f, window)
	r.file = f
	return r, nil
}

// Observe samples the field's current frame. Errors writing a row are
// logged and sampling continues.
func (r *Recorder) Observe(f *ambient.Field) {
	if r == nil {
		return
	}

	now := r.now()
	if !r.lastFrame.IsZero() {
		r.ticks = append(r.ticks, float64(now.Sub(r.lastFrame).Microseconds()))
	}
	r.lastFrame = now

	ps := f.Particles()
	r.particles = len(ps)
	var magnified float64
	for i := range ps {
		p := &ps[i]
		r.sizes = append(r.sizes, p.Size)
		r.speeds = append(r.speeds, math.Hypot(p.VX, p.VY))
		if p.Size > p.BaseSize {
			magnified++
		}
	}
	r.magnified = append(r.magnified, magnified)

	if len(r.magnified) >= r.window {
		if err := r.flush(f.FrameCount()); err != nil {
			ambient.Logger().Error("telemetry write failed", "err", err)
		}
	}
}

// flush aggregates the buffered frames into a row and writes it.
func (r *Recorder) flush(frame uint64) error {
	stats := WindowStats{
		WindowEnd: frame,
		Frames:    len(r.magnified),
		Particles: r.particles,
		Magnified: stat.Mean(r.magnified, nil),
	}
	if len(r.sizes) > 0 {
		stats.MeanSize = stat.Mean(r.sizes, nil)
		stats.MaxSize = floats.Max(r.sizes)
		stats.MeanSpeed = stat.Mean(r.speeds, nil)
	}
	if len(r.ticks) > 0 {
		stats.MeanTickUS = stat.Mean(r.ticks, nil)
	}

	r.sizes = r.sizes[:0]
	r.speeds = r.speeds[:0]
	r.magnified = r.magnified[:0]
	r.ticks = r.ticks[:0]
	r.last = stats
	r.rows++

	ambient.Logger().Debug("telemetry window", "stats", stats)
	return r.write(stats)
}

func (r *Recorder) write(stats WindowStats) error {
	if r.out == nil {
		return nil
	}
	records := []WindowStats{stats}
	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// Last returns the most recently written window and whether any exists.
func (r *Recorder) Last() (WindowStats, bool) {
	if r == nil || r.rows == 0 {
		return WindowStats{}, false
	}
	return r.last, true
}

// Rows returns the number of rows written.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

// Close closes the output file, if the recorder owns one.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}
