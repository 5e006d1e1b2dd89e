package telemetry

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phanxgames/ambient"
)

// nullSurface discards all drawing.
type nullSurface struct{ w, h float64 }

func (s *nullSurface) Size() (float64, float64)       { return s.w, s.h }
func (s *nullSurface) SetSize(w, h float64)           { s.w, s.h = w, h }
func (s *nullSurface) Clear()                         {}
func (s *nullSurface) Save()                          {}
func (s *nullSurface) Restore()                       {}
func (s *nullSurface) SetAlpha(float64)               {}
func (s *nullSurface) SetFill(ambient.Color)          {}
func (s *nullSurface) SetGlow(ambient.Color, float64) {}
func (s *nullSurface) Translate(float64, float64)     {}
func (s *nullSurface) Rotate(float64)                 {}
func (s *nullSurface) FillPolygon([]ambient.Vec2)     {}
func (s *nullSurface) FillCircle(float64)             {}

type testHost struct {
	surface nullSurface
	events  ambient.Events
	queue   ambient.FrameQueue
}

func (h *testHost) Surface(id string) (ambient.Surface, bool) { return &h.surface, true }
func (h *testHost) ViewportSize() (float64, float64)          { return 400, 300 }
func (h *testHost) DarkMode() bool                            { return true }
func (h *testHost) Events() *ambient.Events                   { return &h.events }
func (h *testHost) Scheduler() ambient.Scheduler              { return &h.queue }

func newTestField(t *testing.T, population int) (*ambient.Field, *testHost) {
	t.Helper()
	h := &testHost{}
	f, err := ambient.NewField(h, ambient.FieldConfig{Population: population})
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f, h
}

func readRows(t *testing.T, b *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(b.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return rows
}

func TestRecorderWritesHeaderOnce(t *testing.T) {
	f, h := newTestField(t, 10)
	var buf bytes.Buffer
	r := NewRecorder(&buf, 5)
	f.SetFrameObserver(r.Observe)

	for range 15 {
		h.queue.Flush()
	}

	if r.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", r.Rows())
	}
	rows := readRows(t, &buf)
	if len(rows) != 4 {
		t.Fatalf("csv lines = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "window_end" {
		t.Errorf("header[0] = %q, want window_end", rows[0][0])
	}
	for i, row := range rows[1:] {
		if row[0] == "window_end" {
			t.Errorf("row %d repeats the header", i+1)
		}
	}
}

func TestRecorderAggregates(t *testing.T) {
	f, h := newTestField(t, 20)
	r := NewRecorder(nil, 4)
	clock := time.Unix(0, 0)
	r.now = func() time.Time {
		clock = clock.Add(16 * time.Millisecond)
		return clock
	}
	f.SetFrameObserver(r.Observe)

	for range 4 {
		h.queue.Flush()
	}

	stats, ok := r.Last()
	if !ok {
		t.Fatal("expected a window")
	}
	if stats.Frames != 4 || stats.Particles != 20 || stats.WindowEnd != 4 {
		t.Errorf("stats = %+v, want 4 frames, 20 particles, window_end 4", stats)
	}
	if !ambient.AmbientSize.Contains(stats.MeanSize) {
		t.Errorf("mean size %v outside ambient preset", stats.MeanSize)
	}
	if stats.MaxSize < stats.MeanSize {
		t.Errorf("max size %v < mean %v", stats.MaxSize, stats.MeanSize)
	}
	if stats.Magnified != 0 || stats.MeanSpeed != 0 {
		t.Errorf("no pointer: magnified=%v speed=%v, want 0", stats.Magnified, stats.MeanSpeed)
	}
	if stats.MeanTickUS != 16000 {
		t.Errorf("mean tick = %vus, want 16000", stats.MeanTickUS)
	}
}

func TestRecorderCountsMagnified(t *testing.T) {
	f, h := newTestField(t, 50)
	r := NewRecorder(nil, 1)
	f.SetFrameObserver(r.Observe)

	// Put the pointer next to a particle clear of the wrap edges.
	var target ambient.Particle
	for _, p := range f.Particles() {
		if p.BaseX > 1 && p.BaseX < 399 && p.BaseY > 1 && p.BaseY < 299 {
			target = p
			break
		}
	}
	h.events.EmitPointerMove(target.BaseX+target.DriftX+1, target.BaseY+target.DriftY)
	h.queue.Flush()

	stats, ok := r.Last()
	if !ok {
		t.Fatal("expected a window")
	}
	if stats.Magnified < 1 {
		t.Errorf("magnified = %v, want >= 1", stats.Magnified)
	}
	if stats.MeanSpeed <= 0 {
		t.Errorf("mean speed = %v, want > 0", stats.MeanSpeed)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	r, err := NewFileRecorder("", 10)
	if err != nil || r != nil {
		t.Fatalf("NewFileRecorder(\"\") = %v, %v; want nil, nil", r, err)
	}
	f, _ := newTestField(t, 3)
	r.Observe(f)
	if r.Rows() != 0 {
		t.Error("nil recorder should report zero rows")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestFileRecorder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r, err := NewFileRecorder(dir, 2)
	if err != nil {
		t.Fatalf("NewFileRecorder: %v", err)
	}
	f, h := newTestField(t, 5)
	f.SetFrameObserver(r.Observe)
	h.queue.Flush()
	h.queue.Flush()
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("window_end,")) {
		t.Errorf("frames.csv = %q, want header first", data)
	}
}
