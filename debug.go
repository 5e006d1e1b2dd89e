package ambient

import "time"

// debugStats holds per-frame timing and interaction metrics.
// Only collected when debug mode is on.
type debugStats struct {
	tickTime  time.Duration
	particles int
	magnified int
	moving    int
}

// SetDebugMode enables or disables per-frame stats on the diagnostic
// logger at Debug level.
func (f *Field) SetDebugMode(enabled bool) {
	f.debug = enabled
}

// collectDebugStats counts particles currently under pointer influence
// (magnified) and those still carrying push velocity (moving).
func (f *Field) collectDebugStats(tick time.Duration) debugStats {
	stats := debugStats{tickTime: tick, particles: len(f.particles)}
	for i := range f.particles {
		p := &f.particles[i]
		if p.Size > p.BaseSize {
			stats.magnified++
		}
		if p.VX != 0 || p.VY != 0 {
			stats.moving++
		}
	}
	return stats
}

// debugLog reports timing and counts for the frame just drawn.
func (f *Field) debugLog(tick time.Duration) {
	if !f.debug {
		return
	}
	stats := f.collectDebugStats(tick)
	logger.Debug("frame",
		"frame", f.frames,
		"tick", stats.tickTime,
		"particles", stats.particles,
		"magnified", stats.magnified,
		"moving", stats.moving)
}
