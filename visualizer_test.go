package physvis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Visualizer construction validates everything before touching the window
// or GPU, so the rejection paths run headless.

func TestNewVisualizerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.FramesInFlight = 0

	_, err := NewVisualizer(cfg, NewNopLogger())
	assert.Error(t, err)
}

func TestNewVisualizerRejectsBadTint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Tint = [4]float32{-1, 0, 0, 1}

	_, err := NewVisualizer(cfg, NewNopLogger())
	assert.Error(t, err)
}

func TestFrameClock(t *testing.T) {
	var clock frameClock

	if dt := clock.tick(); dt != 0 {
		t.Errorf("first tick dt = %f, want 0", dt)
	}
	time.Sleep(10 * time.Millisecond)
	if dt := clock.tick(); dt <= 0 {
		t.Errorf("second tick dt = %f, want > 0", dt)
	}
}
