package request

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"osrm_api/pkg/status"
)

type textEnum interface {
	comparable
	String() string
	MarshalText() ([]byte, error)
}

// roundTrip checks that every value survives JSON and YAML encoding and
// that its wire token is the expected one.
func roundTrip[T textEnum](t *testing.T, values []T, tokens []string) {
	t.Helper()
	if len(values) != len(tokens) {
		t.Fatalf("got %d values, want %d", len(values), len(tokens))
	}
	for i, v := range values {
		if got := v.String(); got != tokens[i] {
			t.Errorf("%T(%d).String() = %q, want %q", v, i, got, tokens[i])
		}

		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal(%v): %v", v, err)
		}
		if want := `"` + tokens[i] + `"`; string(data) != want {
			t.Errorf("json.Marshal(%v) = %s, want %s", v, data, want)
		}
		var back T
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("json.Unmarshal(%s): %v", data, err)
		}
		if back != v {
			t.Errorf("JSON round trip of %v = %v", v, back)
		}

		ydata, err := yaml.Marshal(v)
		if err != nil {
			t.Fatalf("yaml.Marshal(%v): %v", v, err)
		}
		var yback T
		if err := yaml.Unmarshal(ydata, &yback); err != nil {
			t.Fatalf("yaml.Unmarshal(%s): %v", ydata, err)
		}
		if yback != v {
			t.Errorf("YAML round trip of %v = %v", v, yback)
		}
	}
}

func TestEnumRoundTrip(t *testing.T) {
	t.Run("ServiceKind", func(t *testing.T) {
		roundTrip(t, ServiceKinds(), []string{"route", "nearest", "table", "match", "trip", "tile"})
	})
	t.Run("GeometryType", func(t *testing.T) {
		roundTrip(t, GeometryTypes(), []string{"polyline", "polyline6", "geojson"})
	})
	t.Run("Annotation", func(t *testing.T) {
		roundTrip(t, AllAnnotations(), []string{"duration", "distance", "nodes", "datasources", "weight", "speed"})
	})
	t.Run("Overview", func(t *testing.T) {
		roundTrip(t, Overviews(), []string{"simplified", "full", "false"})
	})
	t.Run("Gaps", func(t *testing.T) {
		roundTrip(t, AllGaps(), []string{"split", "ignore"})
	})
	t.Run("Source", func(t *testing.T) {
		roundTrip(t, Sources(), []string{"any", "first"})
	})
	t.Run("Profile", func(t *testing.T) {
		roundTrip(t, Profiles(), []string{"driving", "bike", "foot"})
	})
	t.Run("Format", func(t *testing.T) {
		roundTrip(t, Formats(), []string{"json", "flatbuffers"})
	})
}

func TestEnumDefaults(t *testing.T) {
	var (
		o Overview
		g Gaps
		s Source
		f Format
	)
	if o != OverviewSimplified {
		t.Errorf("zero Overview = %v, want simplified", o)
	}
	if g != GapsSplit {
		t.Errorf("zero Gaps = %v, want split", g)
	}
	if s != SourceAny {
		t.Errorf("zero Source = %v, want any", s)
	}
	if f != FormatJSON {
		t.Errorf("zero Format = %v, want json", f)
	}
}

func TestEnumUnknownToken(t *testing.T) {
	tests := []struct {
		name  string
		parse func() error
		want  error
	}{
		{"service", func() error { _, err := ParseServiceKind("tableX"); return err }, status.ErrInvalidService},
		{"geometries", func() error { _, err := ParseGeometryType("wkt"); return err }, status.ErrInvalidOptions},
		{"annotation", func() error { _, err := ParseAnnotation("true"); return err }, status.ErrInvalidOptions},
		{"overview", func() error { _, err := ParseOverview("Full"); return err }, status.ErrInvalidOptions},
		{"gaps", func() error { _, err := ParseGaps("bridge"); return err }, status.ErrInvalidOptions},
		{"source", func() error { _, err := ParseSource("last"); return err }, status.ErrInvalidOptions},
		{"profile", func() error { _, err := ParseProfile("car"); return err }, status.ErrInvalidOptions},
		{"format", func() error { _, err := ParseFormat("protobuf"); return err }, status.ErrInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEnumOutOfRange(t *testing.T) {
	bad := Overview(42)
	if got := bad.String(); got != "overview(42)" {
		t.Errorf("String() = %q", got)
	}
	if _, err := json.Marshal(bad); err == nil {
		t.Error("expected marshal error for out-of-range value")
	}
}

func TestAnnotationsRejectDuplicates(t *testing.T) {
	var as Annotations
	err := json.Unmarshal([]byte(`["speed","nodes","speed"]`), &as)
	if !errors.Is(err, status.ErrInvalidOptions) {
		t.Fatalf("err = %v, want InvalidOptions", err)
	}

	if err := json.Unmarshal([]byte(`["speed","nodes"]`), &as); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !as.Has(AnnotationNodes) || as.Has(AnnotationWeight) {
		t.Errorf("Has mismatch for %v", as)
	}
}
