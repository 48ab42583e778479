package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"osrm_api/pkg/status"
	"osrm_api/pkg/validate"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\"): %v", err)
	}
	if cfg.Limits != validate.DefaultLimits() || cfg.LogLevel != "info" || !slices.Equal(cfg.Versions, []string{"v1"}) {
		t.Errorf("defaults = %+v", cfg)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "log-level: debug\nlimits:\n  max-locations-trip: 10\nversions: [v1, v2]\n")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Limits.MaxLocationsTrip != 10 {
		t.Errorf("MaxLocationsTrip = %d, want 10", cfg.Limits.MaxLocationsTrip)
	}
	if !slices.Equal(cfg.Versions, []string{"v1", "v2"}) {
		t.Errorf("Versions = %v, want [v1 v2]", cfg.Versions)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Limits.MaxLocationsViaRoute != 500 {
		t.Errorf("MaxLocationsViaRoute = %d, want 500", cfg.Limits.MaxLocationsViaRoute)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	v := validate.New(validate.DefaultLimits())

	tests := []struct {
		name    string
		file    string
		content string
		want    status.Status
		service string
	}{
		{
			name:    "json route",
			file:    "route.json",
			content: `{"service":"route","profile":"driving","coordinates":[[13.388,52.517],[13.397,52.529]],"steps":true}`,
			want:    status.Ok,
			service: "route",
		},
		{
			name:    "yaml trip",
			file:    "trip.yml",
			content: "service: trip\nprofile: foot\ncoordinates: [[13.388, 52.517], [13.397, 52.529]]\nsource: first\n",
			want:    status.Ok,
			service: "trip",
		},
		{
			name:    "unknown service",
			file:    "bad.json",
			content: `{"service":"tableX","profile":"driving","coordinates":[[1,2]]}`,
			want:    status.InvalidService,
		},
		{
			name:    "index out of range",
			file:    "table.json",
			content: `{"service":"table","profile":"driving","coordinates":[[1,2]],"sources":[4]}`,
			want:    status.InvalidValue,
			service: "table",
		},
		{
			name:    "unsupported version",
			file:    "v99.json",
			content: `{"service":"route","version":"v99","profile":"driving","coordinates":[[13.388,52.517],[13.397,52.529]]}`,
			want:    status.InvalidVersion,
			service: "route",
		},
		{
			name:    "null profile",
			file:    "nullprofile.json",
			content: `{"service":"route","profile":null,"coordinates":[[13.388,52.517],[13.397,52.529]]}`,
			want:    status.InvalidQuery,
		},
		{
			name:    "tile",
			file:    "tile.json",
			content: `{"service":"tile","profile":"driving","coordinates":[[1,2]]}`,
			want:    status.InvalidService,
			service: "tile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			res := check(v, path)
			if res.Code != tt.want {
				t.Errorf("Code = %v (%s), want %v", res.Code, res.Message, tt.want)
			}
			if res.Service != tt.service {
				t.Errorf("Service = %q, want %q", res.Service, tt.service)
			}
			if res.File != path {
				t.Errorf("File = %q, want %q", res.File, path)
			}
		})
	}

	res := check(v, filepath.Join(dir, "does-not-exist.json"))
	if res.Code != status.InvalidURL {
		t.Errorf("missing file Code = %v, want InvalidUrl", res.Code)
	}
}
