package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.GridURL == "" {
		t.Error("Default() has empty GridURL")
	}
	if cfg.Debug || cfg.Coverage {
		t.Error("Default() should leave debug and coverage off")
	}
}

func TestLoad(t *testing.T) {
	doc := `
gridUrl: http://grid.example.com:4444/wd/hub
http:
  timeout: 30s
  keepAlive: true
windowSize:
  width: 1280
  height: 1024
debug: true
coverage: true
capabilities:
  browserName: phantomjs
`
	cfg, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GridURL != "http://grid.example.com:4444/wd/hub" {
		t.Errorf("GridURL = %q", cfg.GridURL)
	}
	if cfg.HTTP == nil || cfg.HTTP.Timeout.Std() != 30*time.Second || !cfg.HTTP.KeepAlive {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.WindowSize == nil || cfg.WindowSize.Width != 1280 || cfg.WindowSize.Height != 1024 {
		t.Errorf("WindowSize = %+v", cfg.WindowSize)
	}
	if !cfg.Debug || !cfg.Coverage {
		t.Error("Debug/Coverage not set")
	}
	if cfg.Capabilities.BrowserName() != "phantomjs" {
		t.Errorf("capabilities browserName = %q", cfg.Capabilities.BrowserName())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty gridUrl", "gridUrl: \"\"", "gridUrl is required"},
		{"bad yaml", "gridUrl: [", "failed to parse"},
		{"bad window size", "gridUrl: http://x\nwindowSize: {width: 0, height: 600}", "windowSize"},
		{"bad duration", "gridUrl: http://x\nhttp: {timeout: soon}", "bad duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("does/not/exist.yaml")
	if err == nil {
		t.Error("LoadFile() expected error for missing file")
	}
}
