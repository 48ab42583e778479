package request

import (
	"fmt"

	"osrm_api/pkg/status"
)

// tokenSet maps enum values to their wire tokens. The index is the value, so
// every enum has exactly one table that both String and the text codecs use.
type tokenSet[T ~uint8] struct {
	name   string
	code   status.Status // reported for unknown tokens
	tokens []string
}

func (ts tokenSet[T]) format(v T) string {
	if int(v) < len(ts.tokens) {
		return ts.tokens[v]
	}
	return fmt.Sprintf("%s(%d)", ts.name, uint8(v))
}

func (ts tokenSet[T]) parse(token string) (T, error) {
	for i, tok := range ts.tokens {
		if tok == token {
			return T(i), nil
		}
	}
	return 0, status.Errorf(ts.code, "unknown %s %q", ts.name, token)
}

func (ts tokenSet[T]) marshal(v T) ([]byte, error) {
	if int(v) >= len(ts.tokens) {
		return nil, status.Errorf(ts.code, "invalid %s %d", ts.name, uint8(v))
	}
	return []byte(ts.tokens[v]), nil
}

func (ts tokenSet[T]) unmarshal(text []byte, dst *T) error {
	v, err := ts.parse(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (ts tokenSet[T]) values() []T {
	all := make([]T, len(ts.tokens))
	for i := range ts.tokens {
		all[i] = T(i)
	}
	return all
}

//*******************************************
// service kind
//*******************************************

// ServiceKind is the discriminant of a Service.
type ServiceKind uint8

const (
	ServiceRoute ServiceKind = iota
	ServiceNearest
	ServiceTable
	ServiceMatch
	ServiceTrip
	ServiceTile
)

var serviceKinds = tokenSet[ServiceKind]{
	name:   "service",
	code:   status.InvalidService,
	tokens: []string{"route", "nearest", "table", "match", "trip", "tile"},
}

func ServiceKinds() []ServiceKind { return serviceKinds.values() }
func ParseServiceKind(s string) (ServiceKind, error) { return serviceKinds.parse(s) }
func (k ServiceKind) String() string { return serviceKinds.format(k) }
func (k ServiceKind) MarshalText() ([]byte, error) { return serviceKinds.marshal(k) }
func (k *ServiceKind) UnmarshalText(b []byte) error { return serviceKinds.unmarshal(b, k) }

// newService returns an empty variant for k.
func (k ServiceKind) newService() (Service, error) {
	switch k {
	case ServiceRoute:
		return &Route{}, nil
	case ServiceNearest:
		return &Nearest{}, nil
	case ServiceTable:
		return &Table{}, nil
	case ServiceMatch:
		return &Match{}, nil
	case ServiceTrip:
		return &Trip{}, nil
	case ServiceTile:
		return &Tile{}, nil
	}
	return nil, status.Errorf(status.InvalidService, "invalid service %d", uint8(k))
}

//*******************************************
// geometries
//*******************************************

// GeometryType is the encoding of returned route geometry.
type GeometryType uint8

const (
	GeometryPolyline GeometryType = iota
	GeometryPolyline6
	GeometryGeoJSON
)

var geometryTypes = tokenSet[GeometryType]{
	name:   "geometries",
	code:   status.InvalidOptions,
	tokens: []string{"polyline", "polyline6", "geojson"},
}

func GeometryTypes() []GeometryType { return geometryTypes.values() }
func ParseGeometryType(s string) (GeometryType, error) { return geometryTypes.parse(s) }
func (g GeometryType) String() string { return geometryTypes.format(g) }
func (g GeometryType) MarshalText() ([]byte, error) { return geometryTypes.marshal(g) }
func (g *GeometryType) UnmarshalText(b []byte) error { return geometryTypes.unmarshal(b, g) }

//*******************************************
// annotations
//*******************************************

// Annotation is an additional per-edge metric attached to route legs.
type Annotation uint8

const (
	AnnotationDuration Annotation = iota
	AnnotationDistance
	AnnotationNodes
	AnnotationDataSources
	AnnotationWeight
	AnnotationSpeed
)

var annotations = tokenSet[Annotation]{
	name:   "annotation",
	code:   status.InvalidOptions,
	tokens: []string{"duration", "distance", "nodes", "datasources", "weight", "speed"},
}

func AllAnnotations() []Annotation { return annotations.values() }
func ParseAnnotation(s string) (Annotation, error) { return annotations.parse(s) }
func (a Annotation) String() string { return annotations.format(a) }
func (a Annotation) MarshalText() ([]byte, error) { return annotations.marshal(a) }
func (a *Annotation) UnmarshalText(b []byte) error { return annotations.unmarshal(b, a) }

//*******************************************
// overview
//*******************************************

// Overview is the level of detail of the returned geometry.
type Overview uint8

const (
	OverviewSimplified Overview = iota
	OverviewFull
	OverviewFalse
)

var overviews = tokenSet[Overview]{
	name:   "overview",
	code:   status.InvalidOptions,
	tokens: []string{"simplified", "full", "false"},
}

func Overviews() []Overview { return overviews.values() }
func ParseOverview(s string) (Overview, error) { return overviews.parse(s) }
func (o Overview) String() string { return overviews.format(o) }
func (o Overview) MarshalText() ([]byte, error) { return overviews.marshal(o) }
func (o *Overview) UnmarshalText(b []byte) error { return overviews.unmarshal(b, o) }

//*******************************************
// gaps
//*******************************************

// Gaps controls how map matching treats gaps in the input trace.
type Gaps uint8

const (
	GapsSplit Gaps = iota
	GapsIgnore
)

var gapsTokens = tokenSet[Gaps]{
	name:   "gaps",
	code:   status.InvalidOptions,
	tokens: []string{"split", "ignore"},
}

func AllGaps() []Gaps { return gapsTokens.values() }
func ParseGaps(s string) (Gaps, error) { return gapsTokens.parse(s) }
func (g Gaps) String() string { return gapsTokens.format(g) }
func (g Gaps) MarshalText() ([]byte, error) { return gapsTokens.marshal(g) }
func (g *Gaps) UnmarshalText(b []byte) error { return gapsTokens.unmarshal(b, g) }

//*******************************************
// source
//*******************************************

// Source selects which coordinate a trip starts from.
type Source uint8

const (
	SourceAny Source = iota
	SourceFirst
)

var sources = tokenSet[Source]{
	name:   "source",
	code:   status.InvalidOptions,
	tokens: []string{"any", "first"},
}

func Sources() []Source { return sources.values() }
func ParseSource(s string) (Source, error) { return sources.parse(s) }
func (s Source) String() string { return sources.format(s) }
func (s Source) MarshalText() ([]byte, error) { return sources.marshal(s) }
func (s *Source) UnmarshalText(b []byte) error { return sources.unmarshal(b, s) }

//*******************************************
// profile
//*******************************************

// Profile is the travel mode used for routing.
type Profile uint8

const (
	ProfileCar Profile = iota
	ProfileBike
	ProfileFoot
)

var profiles = tokenSet[Profile]{
	name:   "profile",
	code:   status.InvalidOptions,
	tokens: []string{"driving", "bike", "foot"},
}

func Profiles() []Profile { return profiles.values() }
func ParseProfile(s string) (Profile, error) { return profiles.parse(s) }
func (p Profile) String() string { return profiles.format(p) }
func (p Profile) MarshalText() ([]byte, error) { return profiles.marshal(p) }
func (p *Profile) UnmarshalText(b []byte) error { return profiles.unmarshal(b, p) }

//*******************************************
// format
//*******************************************

// Format is the output encoding of the response.
type Format uint8

const (
	FormatJSON Format = iota
	FormatFlatBuffers
)

var formats = tokenSet[Format]{
	name:   "format",
	code:   status.InvalidOptions,
	tokens: []string{"json", "flatbuffers"},
}

func Formats() []Format { return formats.values() }
func ParseFormat(s string) (Format, error) { return formats.parse(s) }
func (f Format) String() string { return formats.format(f) }
func (f Format) MarshalText() ([]byte, error) { return formats.marshal(f) }
func (f *Format) UnmarshalText(b []byte) error { return formats.unmarshal(b, f) }
