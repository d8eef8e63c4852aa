package trellis

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	Name   string  `json:"name,omitempty"` // panel or mode name
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Key    int     `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// interactionScript is the top-level JSON structure for a script.
type interactionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input events and panel operations across
// frames for automated interaction testing. Attach to a UI via SetScript.
//
// Supported actions: "click", "press", "release", "move", "drag", "wheel",
// "key", "open", "close", "mode", "wait".
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script interactionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a script runner. The runner's step method is called
// from UI.Update each frame, before queued input drains.
func (ui *UI) SetScript(runner *ScriptRunner) {
	ui.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from UI.Update.
func (r *ScriptRunner) step(ui *UI) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(ui.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
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
	case "click":
		ui.InjectClick(st.X, st.Y)
	case "press":
		ui.InjectPress(st.X, st.Y)
	case "release":
		ui.InjectRelease(st.X, st.Y)
	case "move":
		ui.InjectMove(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		ui.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wheel":
		ui.InjectWheel(st.X, st.Y, st.Delta)
	case "key":
		ui.InjectKey(Key(st.Key))
	case "open":
		ui.Panels.Open(st.Name)
	case "close":
		ui.Panels.Close(st.Name)
	case "mode":
		ui.SetMode(st.Name)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		warnf("script: unknown action %q", st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(ui.injectQueue) == 0 {
		r.done = true
	}
}
