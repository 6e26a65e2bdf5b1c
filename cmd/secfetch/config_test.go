package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/secfetch/secfetch-go/pkg/session"
)

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		in      string
		want    session.AuthMode
		wantErr bool
	}{
		{in: "", want: session.AuthModeRequired},
		{in: "required", want: session.AuthModeRequired},
		{in: "optional", want: session.AuthModeOptional},
		{in: "none", want: session.AuthModeNone},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseAuthMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAuthMode(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAuthMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAuthMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMarkers(t *testing.T) {
	got := parseMarkers(" 200 OK , Hello world! ,")
	want := []string{"200 OK", "Hello world!"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseMarkers() = %v, want %v", got, want)
	}
	if parseMarkers("") != nil {
		t.Fatal("empty list should yield nil")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(Config{})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Host != defaultHost || cfg.Port != session.DefaultPort || cfg.Path != defaultPath {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if len(cfg.anchorPEM) == 0 {
		t.Fatal("built-in anchors should be loaded")
	}
}

func TestLoadConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secfetch.yaml")
	data := []byte("host: filehost\nport: 8443\npath: /file\ntimeout: 5s\nauth: optional\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(Config{ConfigFile: path, Host: "flaghost"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Host != "flaghost" {
		t.Fatalf("flag should override file host, got %q", cfg.Host)
	}
	if cfg.Port != 8443 || cfg.Path != "/file" {
		t.Fatalf("file values should survive: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.authMode != session.AuthModeOptional {
		t.Fatalf("authMode = %v, want optional", cfg.authMode)
	}
}
