package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slog"

	"osrm_api/pkg/request"
	"osrm_api/pkg/response"
	"osrm_api/pkg/status"
	"osrm_api/pkg/validate"
)

// result is printed to stdout, one JSON line per input file.
type result struct {
	File string `json:"file"`
	response.ErrorResponse
	Service string `json:"service,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config with limits (empty = defaults)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: osrmcheck [--config config.yaml] [--log-level info] <request.json|request.yaml>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q\n", cfg.LogLevel)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	v := validate.New(cfg.Limits, cfg.Versions...)
	enc := json.NewEncoder(os.Stdout)

	failed := 0
	for _, path := range flag.Args() {
		res := check(v, path)
		if res.Code != status.Ok {
			failed++
		}
		if err := enc.Encode(res); err != nil {
			slog.Error("write result", "file", path, "err", err)
			os.Exit(1)
		}
	}

	slog.Info("checked requests", "files", flag.NArg(), "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func check(v *validate.Validator, path string) result {
	res := result{File: path}

	req, err := readRequest(path)
	if err == nil {
		if kind, ok := req.Kind(); ok {
			res.Service = kind.String()
		}
		err = v.Request(req)
	}
	res.ErrorResponse = response.NewErrorResponse(err)

	if err != nil {
		slog.Warn("request rejected", "file", path, "code", res.Code, "message", res.Message)
	} else {
		slog.Debug("request ok", "file", path, "service", res.Service,
			"profile", req.Profile, "coordinates", len(req.Coordinates))
	}
	return res
}

func readRequest(path string) (*request.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, status.Errorf(status.InvalidURL, "read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return request.ParseYAML(data)
	default:
		return request.ParseJSON(data)
	}
}
