// Package config loads digitpad settings from a YAML file with
// environment overrides.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/juruen/digitpad/log"
)

const (
	configFileName = "digitpad.yaml"

	envConfig        = "DIGITPAD_CONFIG"
	envClassifierURL = "DIGITPAD_CLASSIFIER_URL"
	envPort          = "DIGITPAD_PORT"

	defaultClassifierURL = "http://localhost:8080/predict"
)

type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Downsample DownsampleConfig `yaml:"downsample"`
	Submission SubmissionConfig `yaml:"submission"`
	Server     ServerConfig     `yaml:"server"`
}

type ClassifierConfig struct {
	URL string `yaml:"url"`
	// Timeout bounds a single request; 0 waits for the service indefinitely.
	Timeout     time.Duration `yaml:"timeout"`
	TokenSecret string        `yaml:"token_secret"`
}

type SurfaceConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	StrokeWidth float64 `yaml:"stroke_width"`
}

type DownsampleConfig struct {
	Filter string `yaml:"filter"`
}

type SubmissionConfig struct {
	CooldownSeconds int           `yaml:"cooldown_seconds"`
	Tick            time.Duration `yaml:"tick"`
	DisplayDelay    time.Duration `yaml:"display_delay"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

func Default() *Config {
	return &Config{
		Classifier: ClassifierConfig{URL: defaultClassifierURL},
		Surface:    SurfaceConfig{Width: 448, Height: 448, StrokeWidth: 19},
		Downsample: DownsampleConfig{Filter: "bilinear"},
		Submission: SubmissionConfig{
			CooldownSeconds: 5,
			Tick:            time.Second,
			DisplayDelay:    250 * time.Millisecond,
		},
		Server: ServerConfig{Port: "8000"},
	}
}

// Path returns the config file location: $DIGITPAD_CONFIG, or
// digitpad.yaml under the user config dir, falling back to the home dir.
func Path() (string, error) {
	if p := os.Getenv(envConfig); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".digitpad", configFileName), nil
	}
	return filepath.Join(dir, "digitpad", configFileName), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Trace.Printf("config %s not found, using defaults", path)
	case err != nil:
		return nil, errors.Wrapf(err, "read config %s", path)
	default:
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
		log.Trace.Printf("config loaded: %s", path)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the config from Path.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, errors.Wrap(err, "locate config")
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if url := os.Getenv(envClassifierURL); url != "" {
		c.Classifier.URL = url
	}
	if port := os.Getenv(envPort); port != "" {
		c.Server.Port = port
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Classifier.URL == "":
		return errors.New("classifier.url is required")
	case c.Classifier.Timeout < 0:
		return errors.New("classifier.timeout must not be negative")
	case c.Surface.Width <= 0 || c.Surface.Height <= 0:
		return errors.Errorf("surface size %dx%d must be positive", c.Surface.Width, c.Surface.Height)
	case c.Surface.StrokeWidth <= 0:
		return errors.New("surface.stroke_width must be positive")
	case c.Submission.CooldownSeconds < 0:
		return errors.New("submission.cooldown_seconds must not be negative")
	case c.Submission.Tick <= 0:
		return errors.New("submission.tick must be positive")
	case c.Submission.DisplayDelay < 0:
		return errors.New("submission.display_delay must not be negative")
	}
	return nil
}
