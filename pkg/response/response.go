// Package response holds the payloads returned for routing requests.
package response

import (
	"encoding/json"

	"osrm_api/pkg/status"
)

// Response is implemented by every payload.
type Response interface {
	Status() status.Status
}

// ErrorResponse is returned for any request that did not succeed.
type ErrorResponse struct {
	Code    status.Status `json:"code"`
	Message string        `json:"message,omitempty"`
}

// NewErrorResponse classifies err. A nil error yields an Ok response.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Code:    status.CodeOf(err),
		Message: status.MessageOf(err),
	}
}

func (r ErrorResponse) Status() status.Status { return r.Code }

// RouteResponse is the result of a route request. Waypoints only carry
// meaning when Code is Ok and are dropped from the wire otherwise.
type RouteResponse struct {
	Code    status.Status
	Message string
	// Waypoints parallels the request coordinates. Each entry lists the
	// network elements matched to that coordinate; an empty entry means
	// the coordinate was not matched.
	Waypoints [][]uint32
}

// NewRouteResponse returns an Ok response carrying waypoints.
func NewRouteResponse(waypoints [][]uint32) RouteResponse {
	return RouteResponse{Code: status.Ok, Waypoints: waypoints}
}

func (r RouteResponse) Status() status.Status { return r.Code }

type routeResponseJSON struct {
	Code      status.Status `json:"code"`
	Message   string        `json:"message,omitempty"`
	Waypoints *[][]uint32   `json:"waypoints,omitempty"`
}

func (r RouteResponse) MarshalJSON() ([]byte, error) {
	out := routeResponseJSON{Code: r.Code, Message: r.Message}
	if r.Code == status.Ok {
		wps := make([][]uint32, len(r.Waypoints))
		for i, wp := range r.Waypoints {
			if wp == nil {
				wp = []uint32{}
			}
			wps[i] = wp
		}
		out.Waypoints = &wps
	}
	return json.Marshal(out)
}

func (r *RouteResponse) UnmarshalJSON(data []byte) error {
	var in routeResponseJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = RouteResponse{Code: in.Code, Message: in.Message}
	if in.Code == status.Ok && in.Waypoints != nil {
		r.Waypoints = *in.Waypoints
	}
	return nil
}
