package physvis

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type frameClock struct {
	last time.Time
}

// tick returns the seconds elapsed since the previous tick.
func (c *frameClock) tick() float32 {
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	return float32(dt.Seconds())
}

// Visualizer runs the demo loop: step the body, build the Uniforms block for
// the frame, stage it into the ring and upload it.
type Visualizer struct {
	log      Logger
	window   *WindowState
	gpu      *GpuState
	uniforms *uniformBufferSet
	camera   *CameraState
	body     *RigidBody
	tint     mgl32.Vec4
	gravity  mgl32.Vec3
	watcher  *ConfigWatcher
	clock    frameClock
}

func NewVisualizer(cfg Config, logger Logger) (*Visualizer, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	// A host/shader layout mismatch means every frame would upload garbage;
	// refuse to start instead.
	if err := VerifyUniformsLayout(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	tint, err := cfg.Render.TintColor()
	if err != nil {
		return nil, err
	}
	ring, err := NewFrameRing(cfg.Render.FramesInFlight, UniformsSize)
	if err != nil {
		return nil, err
	}

	window := createWindowState(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	gpu := createGpuState(window)
	set := createUniformBufferSet(gpu, ring)

	body := NewRigidBody(1.0)
	body.Transform.Position = mgl32.Vec3{0, 5, 0}
	body.AngularVelocity = mgl32.Vec3{0, 1, 0}
	body.LinearDamping = 0.1

	logger.Infof("visualizer ready: %dx%d, %d frames in flight, uniform stride %d",
		cfg.Window.Width, cfg.Window.Height, cfg.Render.FramesInFlight, ring.Stride())

	return &Visualizer{
		log:      logger,
		window:   window,
		gpu:      gpu,
		uniforms: set,
		camera:   cfg.Camera.CameraState(),
		body:     body,
		tint:     tint,
		gravity:  mgl32.Vec3{0, -9.81, 0},
	}, nil
}

// WatchConfig reloads camera and tint parameters from path between frames.
func (v *Visualizer) WatchConfig(path string) error {
	watcher, err := WatchConfig(path, v.log)
	if err != nil {
		return err
	}
	v.watcher = watcher
	return nil
}

func (v *Visualizer) applyConfigUpdates() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg := <-v.watcher.Updates():
		tint, err := cfg.Render.TintColor()
		if err != nil {
			v.log.Warnf("config update rejected: %v", err)
			return
		}
		v.camera = cfg.Camera.CameraState()
		v.tint = tint
		v.log.Infof("applied config update: tint %v, fov %g", tint, cfg.Camera.FovY)
	default:
	}
}

// Run drives frames until the window closes.
func (v *Visualizer) Run() {
	for !v.window.ShouldClose() {
		pollEvents()
		v.applyConfigUpdates()

		dt := v.clock.tick()
		v.body.Step(v.gravity, dt)

		if err := v.frame(); err != nil {
			v.log.Errorf("frame dropped: %v", err)
		}

		// nothing presents here, so pace the loop ourselves
		time.Sleep(8 * time.Millisecond)
	}
}

func (v *Visualizer) frame() error {
	slot, err := v.uniforms.ring.Acquire()
	if err != nil {
		return err
	}

	u := v.camera.BuildUniforms(&v.body.Transform, v.tint, v.window.AspectRatio())
	if err := slot.Write(&u); err != nil {
		return err
	}
	slot.Submit()
	v.uniforms.upload(v.gpu.queue, slot)
	// WriteBuffer copies on the queue timeline before any later submission
	// reads the range, so the slot is immediately reusable.
	slot.Complete()
	return nil
}

func (v *Visualizer) Close() {
	if v.watcher != nil {
		v.watcher.Close()
	}
	v.uniforms.release()
	v.window.destroy()
}
