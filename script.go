package ambient

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// scriptFile is the top-level structure of a script.
type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"move":       true,
	"sweep":      true,
	"leave":      true,
	"theme":      true,
	"screenshot": true,
	"wait":       true,
}

// scriptTarget is what a ScriptRunner drives. The run host implements it.
type scriptTarget interface {
	injector() *Injector
	toggleTheme()
	screenshot(label string)
}

// ScriptRunner sequences injected pointer events, theme toggles and
// screenshots across frames for unattended captures. Attach one with
// RunConfig.Script.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a script. Both YAML and JSON are accepted:
//
//	steps:
//	  - {action: sweep, fromX: 0, fromY: 300, toX: 800, toY: 300, frames: 120}
//	  - {action: screenshot, label: swept}
//	  - {action: leave}
//	  - {action: wait, frames: 60}
//	  - {action: theme}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sf scriptFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sf.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sf.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sf.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(t scriptTarget) {
	if r.done {
		return
	}
	inj := t.injector()
	// Wait for pending injections to drain before advancing.
	if inj.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		inj.InjectMove(st.X, st.Y)
	case "sweep":
		inj.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "leave":
		inj.InjectLeave()
	case "theme":
		t.toggleTheme()
	case "screenshot":
		t.screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && inj.Pending() == 0 {
		r.done = true
	}
}
