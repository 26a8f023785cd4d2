package physvis

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Render RenderConfig `toml:"render"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	Position [3]float32 `toml:"position"`
	Yaw      float32    `toml:"yaw"`
	Pitch    float32    `toml:"pitch"`
	FovY     float32    `toml:"fov_y"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
}

type RenderConfig struct {
	// Tint is RGBA in [0,1]. TintName, when set, wins and is resolved
	// against the SVG 1.1 color names.
	Tint           [4]float32 `toml:"tint"`
	TintName       string     `toml:"tint_name"`
	FramesInFlight int        `toml:"frames_in_flight"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "physvis",
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 2, 20},
			FovY:     60,
			Near:     0.1,
			Far:      1000,
		},
		Render: RenderConfig{
			Tint:           [4]float32{1, 1, 1, 1},
			FramesInFlight: 3,
		},
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("fov_y %g must be in (0, 180)", c.Camera.FovY)
	}
	if c.Camera.Near <= 0 {
		return fmt.Errorf("near plane %g must be positive", c.Camera.Near)
	}
	if c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("far plane %g must be beyond near plane %g", c.Camera.Far, c.Camera.Near)
	}
	if c.Render.FramesInFlight < 1 || c.Render.FramesInFlight > maxFramesInFlight {
		return fmt.Errorf("frames_in_flight %d must be 1..%d", c.Render.FramesInFlight, maxFramesInFlight)
	}
	if _, err := c.Render.TintColor(); err != nil {
		return err
	}
	return nil
}

// TintColor resolves the configured tint to the RGBA vector the shader gets.
func (c *RenderConfig) TintColor() (mgl32.Vec4, error) {
	if c.TintName != "" {
		rgba, ok := colornames.Map[strings.ToLower(c.TintName)]
		if !ok {
			return mgl32.Vec4{}, fmt.Errorf("unknown tint color %q", c.TintName)
		}
		return mgl32.Vec4{
			float32(rgba.R) / 255,
			float32(rgba.G) / 255,
			float32(rgba.B) / 255,
			float32(rgba.A) / 255,
		}, nil
	}
	for i, v := range c.Tint {
		if v < 0 || v > 1 {
			return mgl32.Vec4{}, fmt.Errorf("tint component %d is %g, must be in [0,1]", i, v)
		}
	}
	return mgl32.Vec4{c.Tint[0], c.Tint[1], c.Tint[2], c.Tint[3]}, nil
}

// CameraState builds the camera the config describes.
func (c *CameraConfig) CameraState() *CameraState {
	cam := NewCameraState()
	cam.Position = mgl32.Vec3{c.Position[0], c.Position[1], c.Position[2]}
	cam.Yaw = c.Yaw
	cam.Pitch = c.Pitch
	cam.FovY = c.FovY
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}
