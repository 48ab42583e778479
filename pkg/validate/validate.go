// Package validate enforces the business rules a routing engine applies to a
// well-formed request: coordinate ranges, index bounds, per-coordinate array
// lengths and request size limits. Violations are reported as InvalidValue
// or TooBig errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"

	"osrm_api/pkg/geo"
	"osrm_api/pkg/request"
	"osrm_api/pkg/status"
)

// Limits caps request sizes per service. Non-positive values disable a limit.
type Limits struct {
	MaxLocationsViaRoute    int `yaml:"max-locations-viaroute"`
	MaxLocationsTrip        int `yaml:"max-locations-trip"`
	MaxLocationsTable       int `yaml:"max-locations-distance-table"`
	MaxLocationsMapMatching int `yaml:"max-locations-map-matching"`
	MaxResultsNearest       int `yaml:"max-results-nearest"`
	MaxAlternatives         int `yaml:"max-alternatives"`
}

// DefaultLimits returns the limits osrm-routed starts with.
func DefaultLimits() Limits {
	return Limits{
		MaxLocationsViaRoute:    500,
		MaxLocationsTrip:        100,
		MaxLocationsTable:       100,
		MaxLocationsMapMatching: 100,
		MaxResultsNearest:       100,
		MaxAlternatives:         3,
	}
}

// DefaultVersions returns the API versions accepted when none are configured.
func DefaultVersions() []string {
	return []string{"v1"}
}

// Validator checks requests against the rules and limits. It is safe for
// concurrent use.
type Validator struct {
	limits   Limits
	versions []string
	validate *validator.Validate
}

// New creates a validator enforcing limits. Requests naming a version must
// name one of versions, or one of DefaultVersions when versions is empty.
// Requests without a version are accepted. New panics if the custom rules
// cannot be registered.
func New(limits Limits, versions ...string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("lonlat", isLonLat); err != nil {
		panic(fmt.Sprintf("validate: register lonlat: %v", err))
	}
	v.RegisterStructValidation(checkCrossField, routeRules{}, tableRules{}, matchRules{})
	if len(versions) == 0 {
		versions = DefaultVersions()
	}
	return &Validator{limits: limits, versions: slices.Clone(versions), validate: v}
}

// Request returns nil if req passes every rule for its service.
func (v *Validator) Request(req *request.Request) error {
	if req != nil && req.Version != nil && !slices.Contains(v.versions, *req.Version) {
		return status.Errorf(status.InvalidVersion, "version %q is not supported, want one of %s",
			*req.Version, strings.Join(v.versions, ", "))
	}
	_, err := request.Dispatch[struct{}](req, checker{v})
	return err
}

type routeRules struct {
	Coordinates []orb.Point `json:"coordinates" validate:"min=2,dive,lonlat"`
	Waypoints   []uint32    `json:"waypoints" validate:"omitempty,min=2"`
}

type nearestRules struct {
	Coordinates []orb.Point `json:"coordinates" validate:"len=1,dive,lonlat"`
	Number      *uint32     `json:"number" validate:"omitempty,min=1"`
}

type tableRules struct {
	Coordinates   []orb.Point `json:"coordinates" validate:"min=1,dive,lonlat"`
	Sources       []uint32    `json:"sources"`
	Destinations  []uint32    `json:"destinations"`
	FallbackSpeed *float64    `json:"fallback_speed" validate:"omitempty,gt=0"`
}

type matchRules struct {
	Coordinates []orb.Point `json:"coordinates" validate:"min=2,dive,lonlat"`
	Timestamps  []uint32    `json:"timestamps" validate:"omitempty,eqfield=Coordinates"`
	Radiuses    []float32   `json:"radiuses" validate:"omitempty,eqfield=Coordinates,dive,gte=0"`
	Waypoints   []uint32    `json:"waypoints" validate:"omitempty,min=2"`
	Tidy        bool        `json:"tidy"`
}

type tripRules struct {
	Coordinates []orb.Point `json:"coordinates" validate:"min=2,dive,lonlat"`
}

// checker runs the rules of each service.
type checker struct {
	v *Validator
}

func (c checker) Route(req *request.Request, svc *request.Route) (struct{}, error) {
	if err := c.v.check(&routeRules{Coordinates: req.Coordinates, Waypoints: svc.Waypoints}); err != nil {
		return struct{}{}, err
	}
	if err := limit("route coordinates", len(req.Coordinates), c.v.limits.MaxLocationsViaRoute); err != nil {
		return struct{}{}, err
	}
	if svc.Alternatives != nil {
		return struct{}{}, limit("alternatives", int(*svc.Alternatives), c.v.limits.MaxAlternatives)
	}
	return struct{}{}, nil
}

func (c checker) Nearest(req *request.Request, svc *request.Nearest) (struct{}, error) {
	if err := c.v.check(&nearestRules{Coordinates: req.Coordinates, Number: svc.Number}); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, limit("nearest results", int(svc.NumberOrDefault()), c.v.limits.MaxResultsNearest)
}

func (c checker) Table(req *request.Request, svc *request.Table) (struct{}, error) {
	rules := tableRules{
		Coordinates:   req.Coordinates,
		Sources:       svc.Sources,
		Destinations:  svc.Destinations,
		FallbackSpeed: svc.FallbackSpeed,
	}
	if err := c.v.check(&rules); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, limit("table coordinates", len(req.Coordinates), c.v.limits.MaxLocationsTable)
}

func (c checker) Match(req *request.Request, svc *request.Match) (struct{}, error) {
	rules := matchRules{
		Coordinates: req.Coordinates,
		Timestamps:  svc.Timestamps,
		Radiuses:    svc.Radiuses,
		Waypoints:   svc.Waypoints,
		Tidy:        svc.Tidy,
	}
	if err := c.v.check(&rules); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, limit("match coordinates", len(req.Coordinates), c.v.limits.MaxLocationsMapMatching)
}

func (c checker) Trip(req *request.Request, svc *request.Trip) (struct{}, error) {
	if err := c.v.check(&tripRules{Coordinates: req.Coordinates}); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, limit("trip coordinates", len(req.Coordinates), c.v.limits.MaxLocationsTrip)
}

func limit(what string, n, ceiling int) error {
	if ceiling > 0 && n > ceiling {
		return status.Errorf(status.TooBig, "%d %s exceed the limit of %d", n, what, ceiling)
	}
	return nil
}

func (v *Validator) check(rules any) error {
	err := v.validate.Struct(rules)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return status.Errorf(status.InvalidValue, "%v", err)
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = formatFieldError(fe)
	}
	return status.Errorf(status.InvalidValue, "%s", strings.Join(msgs, "; "))
}

func isLonLat(fl validator.FieldLevel) bool {
	p, ok := fl.Field().Interface().(orb.Point)
	return ok && geo.Validate(p) == nil
}

// checkCrossField reports rules that depend on more than one field.
func checkCrossField(sl validator.StructLevel) {
	switch r := sl.Current().Interface().(type) {
	case routeRules:
		checkWaypoints(sl, r.Waypoints, len(r.Coordinates))
	case tableRules:
		checkIndices(sl, r.Sources, "sources", "Sources", len(r.Coordinates))
		checkIndices(sl, r.Destinations, "destinations", "Destinations", len(r.Coordinates))
	case matchRules:
		checkWaypoints(sl, r.Waypoints, len(r.Coordinates))
		if r.Tidy && r.Waypoints != nil {
			sl.ReportError(r.Waypoints, "waypoints", "Waypoints", "notidy", "")
		}
		if !slices.IsSorted(r.Timestamps) {
			sl.ReportError(r.Timestamps, "timestamps", "Timestamps", "ascending", "")
		}
	}
}

func checkIndices(sl validator.StructLevel, indices []uint32, name, field string, n int) {
	for _, idx := range indices {
		if int(idx) >= n {
			sl.ReportError(indices, name, field, "index", fmt.Sprint(n))
			return
		}
	}
}

func checkWaypoints(sl validator.StructLevel, waypoints []uint32, n int) {
	if len(waypoints) == 0 {
		return
	}
	checkIndices(sl, waypoints, "waypoints", "Waypoints", n)
	if n > 0 && (!slices.Contains(waypoints, 0) || !slices.Contains(waypoints, uint32(n-1))) {
		sl.ReportError(waypoints, "waypoints", "Waypoints", "endpoints", "")
	}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.Slice {
			return fe.Field() + " needs at least " + fe.Param() + " entries"
		}
		return fe.Field() + " must be at least " + fe.Param()
	case "len":
		return fe.Field() + " needs exactly " + fe.Param() + " entries"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "lonlat":
		return fe.Field() + " is not a valid [longitude, latitude] pair"
	case "eqfield":
		return fe.Field() + " needs one entry per coordinate"
	case "index":
		return fe.Field() + " refers to a coordinate beyond the " + fe.Param() + " given"
	case "endpoints":
		return fe.Field() + " must include the first and last coordinate"
	case "notidy":
		return fe.Field() + " cannot be combined with tidy"
	case "ascending":
		return fe.Field() + " must not decrease"
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}
