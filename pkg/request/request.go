// Package request models a routing query: which service is invoked, with
// which options, for which profile and coordinates.
//
// A Request is built either with New or by decoding a flat JSON or YAML
// object such as
//
//	{"service": "route", "profile": "driving",
//	 "coordinates": [[13.388, 52.517], [13.397, 52.529]],
//	 "steps": false, "continue_straight": false}
//
// Decoding checks shape only: every enum token must belong to its closed set
// and every option must belong to the selected service. Business rules such
// as index ranges are left to the consumer of the request.
package request

import (
	"github.com/paulmach/orb"
)

// Request is a single service invocation.
type Request struct {
	Service Service
	// Version is the requested API version, nil when omitted.
	Version *string
	Profile Profile
	// Coordinates are [longitude, latitude] pairs. Their order defines
	// waypoint order and the indices used by service options.
	Coordinates []orb.Point
	Format      Format
}

// New assembles a request without further validation.
func New(service Service, version *string, profile Profile, coordinates []orb.Point, format Format) *Request {
	return &Request{
		Service:     service,
		Version:     version,
		Profile:     profile,
		Coordinates: coordinates,
		Format:      format,
	}
}

// Kind returns the kind of the request's service. It reports false when the
// request is nil or has no service.
func (r *Request) Kind() (ServiceKind, bool) {
	if r == nil || r.Service == nil {
		return 0, false
	}
	return r.Service.Kind(), true
}
