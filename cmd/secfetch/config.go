package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/secfetch/secfetch-go/pkg/session"
)

// Fetch defaults, matching the classic HelloHTTPS target.
const (
	defaultHost    = "os.mbed.com"
	defaultPath    = "/media/uploads/mbed_official/hello.txt"
	defaultTimeout = 30 * time.Second
)

// Config holds the fetch configuration. Flag values override file
// values, which override defaults.
type Config struct {
	Host        string
	Port        int
	Path        string
	CAFile      string
	Auth        string
	MarkerList  string
	BufferSize  int
	Timeout     time.Duration
	LogLevel    string
	CaptureFile string

	ConfigFile  string
	Discover    bool
	Interactive bool

	// Derived values.
	authMode  session.AuthMode
	anchorPEM []byte
	markers   []string
}

// loadConfig merges the config file (if any) under the flag values
// and resolves derived fields.
func loadConfig(flags Config) (Config, error) {
	cfg := flags

	if flags.ConfigFile != "" {
		file, err := readConfigFile(flags.ConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg = mergeConfig(file, flags)
	}

	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = session.DefaultPort
	}
	if cfg.Path == "" {
		cfg.Path = defaultPath
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	mode, err := parseAuthMode(cfg.Auth)
	if err != nil {
		return cfg, err
	}
	cfg.authMode = mode

	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return cfg, fmt.Errorf("read ca file: %w", err)
		}
		cfg.anchorPEM = pem
	} else {
		cfg.anchorPEM = builtinAnchors
	}

	cfg.markers = parseMarkers(cfg.MarkerList)
	if len(cfg.markers) == 0 {
		cfg.markers = session.DefaultMarkers()
	}

	return cfg, nil
}

// fileConfig mirrors Config for YAML decoding. Durations are strings
// in the file ("30s") since yaml.v3 has no native duration support.
type fileConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Path        string `yaml:"path"`
	CAFile      string `yaml:"ca_file"`
	Auth        string `yaml:"auth"`
	MarkerList  string `yaml:"markers"`
	BufferSize  int    `yaml:"buffer_size"`
	Timeout     string `yaml:"timeout"`
	LogLevel    string `yaml:"log_level"`
	CaptureFile string `yaml:"capture_file"`
}

func readConfigFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg = Config{
		Host:        file.Host,
		Port:        file.Port,
		Path:        file.Path,
		CAFile:      file.CAFile,
		Auth:        file.Auth,
		MarkerList:  file.MarkerList,
		BufferSize:  file.BufferSize,
		LogLevel:    file.LogLevel,
		CaptureFile: file.CaptureFile,
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// mergeConfig overlays non-zero flag values on file values.
func mergeConfig(file, flags Config) Config {
	merged := file
	merged.ConfigFile = flags.ConfigFile
	merged.Discover = flags.Discover
	merged.Interactive = flags.Interactive

	if flags.Host != "" {
		merged.Host = flags.Host
	}
	if flags.Port != 0 {
		merged.Port = flags.Port
	}
	if flags.Path != "" {
		merged.Path = flags.Path
	}
	if flags.CAFile != "" {
		merged.CAFile = flags.CAFile
	}
	if flags.Auth != "" {
		merged.Auth = flags.Auth
	}
	if flags.MarkerList != "" {
		merged.MarkerList = flags.MarkerList
	}
	if flags.BufferSize != 0 {
		merged.BufferSize = flags.BufferSize
	}
	if flags.Timeout != 0 {
		merged.Timeout = flags.Timeout
	}
	if flags.LogLevel != "" {
		merged.LogLevel = flags.LogLevel
	}
	if flags.CaptureFile != "" {
		merged.CaptureFile = flags.CaptureFile
	}
	return merged
}

func parseAuthMode(s string) (session.AuthMode, error) {
	switch s {
	case "", "required":
		return session.AuthModeRequired, nil
	case "optional":
		return session.AuthModeOptional, nil
	case "none":
		return session.AuthModeNone, nil
	default:
		return 0, fmt.Errorf("unknown auth mode: %q", s)
	}
}

func parseMarkers(list string) []string {
	if list == "" {
		return nil
	}
	var markers []string
	for _, m := range strings.Split(list, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			markers = append(markers, m)
		}
	}
	return markers
}
