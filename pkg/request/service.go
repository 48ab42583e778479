package request

import (
	"encoding/json"
	"slices"

	"gopkg.in/yaml.v3"

	"osrm_api/pkg/status"
)

// Service is one routing service invocation together with its options.
// The set of implementations is closed: *Route, *Nearest, *Table, *Match,
// *Trip and *Tile.
type Service interface {
	Kind() ServiceKind

	// options lists the wire options of the variant in emission order.
	options() []option
}

// option binds a wire key to the field holding its value.
type option struct {
	key     string
	dst     any  // pointer to the field
	present bool // false for omitted optional values
}

func required[T any](key string, p *T) option {
	return option{key: key, dst: p, present: true}
}

func optional[T any](key string, p **T) option {
	return option{key: key, dst: p, present: *p != nil}
}

func list[S ~[]E, E any](key string, p *S) option {
	return option{key: key, dst: p, present: *p != nil}
}

// Route finds the fastest route through the coordinates in the supplied order.
type Route struct {
	Alternatives     *uint32
	Steps            bool
	Annotations      Annotations
	Geometries       *GeometryType
	Overview         *Overview
	ContinueStraight bool
	// Waypoints are indices of the coordinates treated as via points.
	Waypoints []uint32
}

func (*Route) Kind() ServiceKind { return ServiceRoute }

func (s *Route) options() []option {
	return []option{
		optional("alternatives", &s.Alternatives),
		required("steps", &s.Steps),
		list("annotations", &s.Annotations),
		optional("geometries", &s.Geometries),
		optional("overview", &s.Overview),
		required("continue_straight", &s.ContinueStraight),
		list("waypoints", &s.Waypoints),
	}
}

func (s *Route) OverviewOrDefault() Overview { return valueOr(s.Overview, OverviewSimplified) }
func (s *Route) GeometriesOrDefault() GeometryType { return valueOr(s.Geometries, GeometryPolyline) }

// Nearest snaps a coordinate to the street network and returns the nearest
// Number matches.
type Nearest struct {
	Number *uint32
}

func (*Nearest) Kind() ServiceKind { return ServiceNearest }

func (s *Nearest) options() []option {
	return []option{
		optional("number", &s.Number),
	}
}

// NumberOrDefault returns Number, or 1 when it was omitted.
func (s *Nearest) NumberOrDefault() uint32 { return valueOr(s.Number, 1) }

// Table computes durations of the fastest routes between all pairs of
// sources and destinations. Distances are those of the fastest routes, not
// the shortest.
type Table struct {
	Sources      []uint32
	Destinations []uint32
	// FallbackSpeed is used for crow-fly estimates of unroutable pairs.
	FallbackSpeed *float64
}

func (*Table) Kind() ServiceKind { return ServiceTable }

func (s *Table) options() []option {
	return []option{
		list("sources", &s.Sources),
		list("destinations", &s.Destinations),
		optional("fallback_speed", &s.FallbackSpeed),
	}
}

// Match snaps a GPS trace to the road network in the most plausible way.
// The result may be split into several sub-traces, and points that cannot
// be matched are dropped as outliers.
type Match struct {
	Steps       bool
	Geometries  *GeometryType
	Annotations Annotations
	Overview    *Overview
	// Timestamps are UNIX seconds, one per coordinate.
	Timestamps []uint32
	// Radiuses are GPS precision standard deviations in meters, one per coordinate.
	Radiuses []float32
	Gaps     *Gaps
	Tidy     bool
	// Waypoints are indices of the coordinates treated as waypoints.
	Waypoints []uint32
}

func (*Match) Kind() ServiceKind { return ServiceMatch }

func (s *Match) options() []option {
	return []option{
		required("steps", &s.Steps),
		optional("geometries", &s.Geometries),
		list("annotations", &s.Annotations),
		optional("overview", &s.Overview),
		list("timestamps", &s.Timestamps),
		list("radiuses", &s.Radiuses),
		optional("gaps", &s.Gaps),
		required("tidy", &s.Tidy),
		list("waypoints", &s.Waypoints),
	}
}

func (s *Match) OverviewOrDefault() Overview { return valueOr(s.Overview, OverviewSimplified) }
func (s *Match) GeometriesOrDefault() GeometryType { return valueOr(s.Geometries, GeometryPolyline) }
func (s *Match) GapsOrDefault() Gaps { return valueOr(s.Gaps, GapsSplit) }

// Trip approximates a travelling salesman tour over the coordinates. All
// coordinates have to be connected for a tour to exist.
type Trip struct {
	Roundtrip   bool
	Source      Source
	Annotations Annotations
	Geometries  *GeometryType
	Overview    *Overview
}

func (*Trip) Kind() ServiceKind { return ServiceTrip }

func (s *Trip) options() []option {
	return []option{
		required("roundtrip", &s.Roundtrip),
		required("source", &s.Source),
		list("annotations", &s.Annotations),
		optional("geometries", &s.Geometries),
		optional("overview", &s.Overview),
	}
}

func (s *Trip) OverviewOrDefault() Overview { return valueOr(s.Overview, OverviewSimplified) }
func (s *Trip) GeometriesOrDefault() GeometryType { return valueOr(s.Geometries, GeometryPolyline) }

// Tile is reserved for vector tile generation. It takes no options and
// Dispatch rejects it.
type Tile struct{}

func (*Tile) Kind() ServiceKind { return ServiceTile }
func (*Tile) options() []option { return nil }

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Annotations is a set of requested annotations kept in request order.
type Annotations []Annotation

// Has reports whether a is requested.
func (as Annotations) Has(a Annotation) bool {
	return slices.Contains(as, a)
}

func (as Annotations) checkUnique() error {
	for i, a := range as {
		if slices.Contains(as[:i], a) {
			return status.Errorf(status.InvalidOptions, "annotation %q requested twice", a)
		}
	}
	return nil
}

func (as *Annotations) UnmarshalJSON(data []byte) error {
	var v []Annotation
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := Annotations(v).checkUnique(); err != nil {
		return err
	}
	*as = v
	return nil
}

func (as *Annotations) UnmarshalYAML(node *yaml.Node) error {
	var v []Annotation
	if err := node.Decode(&v); err != nil {
		return err
	}
	if err := Annotations(v).checkUnique(); err != nil {
		return err
	}
	*as = v
	return nil
}
