package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestStatusRoundTrip(t *testing.T) {
	want := []string{
		"Ok", "InvalidUrl", "InvalidService", "InvalidVersion", "InvalidOptions",
		"InvalidQuery", "InvalidValue", "NoSegment", "TooBig",
	}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(all), len(want))
	}
	for i, s := range all {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", s, err)
		}
		if string(data) != `"`+want[i]+`"` {
			t.Errorf("Marshal(%v) = %s, want %q", s, data, want[i])
		}
		var back Status
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != s {
			t.Errorf("round trip of %v = %v", s, back)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("ok"); err == nil {
		t.Error("Parse is case sensitive, expected error for \"ok\"")
	}
	if _, err := json.Marshal(Status(200)); err == nil {
		t.Error("expected error marshaling out-of-range status")
	}
}

func TestErrorIs(t *testing.T) {
	err := Errorf(InvalidOptions, "unknown overview %q", "none")
	if !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("errors.Is(%v, ErrInvalidOptions) = false", err)
	}
	if errors.Is(err, ErrInvalidValue) {
		t.Errorf("errors.Is(%v, ErrInvalidValue) = true", err)
	}
	if got := err.Error(); got != `InvalidOptions: unknown overview "none"` {
		t.Errorf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("decode: %w", err)
	if CodeOf(wrapped) != InvalidOptions {
		t.Errorf("CodeOf(wrapped) = %v", CodeOf(wrapped))
	}
}

func TestErrorfKeepsCause(t *testing.T) {
	err := Errorf(InvalidQuery, "malformed request: %w", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("cause lost: %v", err)
	}
	if MessageOf(err) != "malformed request: unexpected EOF" {
		t.Errorf("MessageOf = %q", MessageOf(err))
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, Ok},
		{"sentinel", ErrTooBig, TooBig},
		{"plain", errors.New("boom"), InvalidQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
