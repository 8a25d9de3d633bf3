// Package config loads the YAML configuration for the command-line tools.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sonicbind/portaudio/portaudio"
)

// Config is the top-level configuration, loaded from YAML.
type Config struct {
	LogLevel string      `yaml:"log_level"` // "debug", "info", "warn", "error"
	Audio    AudioConfig `yaml:"audio"`
}

// AudioConfig holds the stream parameters used by the play and record
// commands.
type AudioConfig struct {
	InputDevice     int     `yaml:"input_device"`  // device index, -1 for default
	OutputDevice    int     `yaml:"output_device"` // device index, -1 for default
	SampleRate      float64 `yaml:"sample_rate"`
	Channels        int     `yaml:"channels"`
	Format          string  `yaml:"format"` // "int16", "int24", "int32", "float32", "int8", "uint8"
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
}

// Default returns the built-in configuration: default devices, CD-quality
// stereo Int16, engine-chosen buffering.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			InputDevice:     portaudio.NoDevice,
			OutputDevice:    portaudio.NoDevice,
			SampleRate:      44100,
			Channels:        2,
			Format:          "int16",
			FramesPerBuffer: portaudio.FramesPerBufferUnspecified,
		},
	}
}

// Load reads the YAML file at path over the built-in defaults, then applies
// environment overrides. An empty path skips the file; a missing or malformed
// file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies PAUDIO_* environment variables over the loaded
// values. Unparseable values are ignored.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("PAUDIO_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("PAUDIO_INPUT_DEVICE"); ok {
		if n, err := strconv.Atoi(val); err == nil {
			c.Audio.InputDevice = n
		}
	}
	if val, ok := os.LookupEnv("PAUDIO_OUTPUT_DEVICE"); ok {
		if n, err := strconv.Atoi(val); err == nil {
			c.Audio.OutputDevice = n
		}
	}
	if val, ok := os.LookupEnv("PAUDIO_SAMPLE_RATE"); ok {
		if r, err := strconv.ParseFloat(val, 64); err == nil {
			c.Audio.SampleRate = r
		}
	}
}

// Validate checks the loaded values for ranges the audio layer would reject.
func (c *Config) Validate() error {
	a := c.Audio
	if a.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %v", a.SampleRate)
	}
	if a.Channels < 1 {
		return fmt.Errorf("channels must be at least 1, got %d", a.Channels)
	}
	if a.FramesPerBuffer < 0 {
		return fmt.Errorf("frames_per_buffer must not be negative, got %d", a.FramesPerBuffer)
	}
	if _, err := c.SampleFormat(); err != nil {
		return err
	}
	return nil
}

// SampleFormat maps the configured format name to the engine's sample format.
func (c *Config) SampleFormat() (portaudio.PaSampleFormat, error) {
	switch strings.ToLower(c.Audio.Format) {
	case "float32":
		return portaudio.SampleFmtFloat32, nil
	case "int32":
		return portaudio.SampleFmtInt32, nil
	case "int24":
		return portaudio.SampleFmtInt24, nil
	case "int16", "":
		return portaudio.SampleFmtInt16, nil
	case "int8":
		return portaudio.SampleFmtInt8, nil
	case "uint8":
		return portaudio.SampleFmtUInt8, nil
	default:
		return 0, fmt.Errorf("unknown sample format %q", c.Audio.Format)
	}
}
