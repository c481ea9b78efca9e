package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/PixPMusic/gopher-soundboard/internal/board"
	"github.com/PixPMusic/gopher-soundboard/internal/tracks"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDevice     = "Launchpad Mini"
	DefaultFPS        = 30
	DefaultSampleRate = 44100
	DefaultBuffer     = 100 * time.Millisecond

	maxFPS = 1000
)

// TrackConfig binds one sound file to a button
type TrackConfig struct {
	Path     string      `yaml:"path"`
	Mode     tracks.Mode `yaml:"mode"`
	Loop     bool        `yaml:"loop,omitempty"`
	Buffered bool        `yaml:"buffered,omitempty"`
}

// AudioConfig holds output device settings
type AudioConfig struct {
	SampleRate int           `yaml:"sample_rate"`
	Buffer     time.Duration `yaml:"buffer"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Config holds application configuration
type Config struct {
	Device          string                 `yaml:"device"`
	FPS             int                    `yaml:"fps"`
	Registration    board.RegisterPolicy   `yaml:"registration"`
	ToggleLongPress tracks.LongPressPolicy `yaml:"toggle_long_press"`
	OpenAtStartup   bool                   `yaml:"open_at_startup"`
	Audio           AudioConfig            `yaml:"audio"`
	Log             LogConfig              `yaml:"log"`
	Tracks          map[string]TrackConfig `yaml:"tracks"`

	// path the config was loaded from, used to resolve relative track paths
	path string
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-soundboard"), nil
}

// DefaultPath returns the full path to the default config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns a config with every setting at its default and one example track
func Default() *Config {
	return &Config{
		Device: DefaultDevice,
		FPS:    DefaultFPS,
		Audio: AudioConfig{
			SampleRate: DefaultSampleRate,
			Buffer:     DefaultBuffer,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Tracks: map[string]TrackConfig{
			"a1": {Path: "sounds/example.mp3", Mode: tracks.ModeToggle},
		},
	}
}

// Load reads and validates the config at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes and validates a YAML config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "parse")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Device == "" {
		c.Device = DefaultDevice
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = DefaultSampleRate
	}
	if c.Audio.Buffer == 0 {
		c.Audio.Buffer = DefaultBuffer
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Tracks == nil {
		c.Tracks = map[string]TrackConfig{}
	}
}

// Validate checks value ranges. Button names are checked when tracks are
// registered, so a typo only loses that one track.
func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > maxFPS {
		return errors.Errorf("fps must be between 1 and %d, got %d", maxFPS, c.FPS)
	}
	if c.Audio.SampleRate <= 0 {
		return errors.Errorf("audio sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Buffer <= 0 {
		return errors.Errorf("audio buffer must be positive, got %s", c.Audio.Buffer)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return errors.Errorf("log format must be console or json, got %q", c.Log.Format)
	}
	for _, name := range c.TrackNames() {
		if c.Tracks[name].Path == "" {
			return errors.Errorf("track %s: path is required", name)
		}
	}
	return nil
}

// TrackNames returns the configured button names, sorted
func (c *Config) TrackNames() []string {
	names := make([]string, 0, len(c.Tracks))
	for name := range c.Tracks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TrackPath returns the track's file path; relative paths are taken from the
// directory of the config file
func (c *Config) TrackPath(name string) string {
	p := c.Tracks[name].Path
	if filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// Path is where the config was loaded from or last saved to
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config")
	}
	c.path = path
	return nil
}
