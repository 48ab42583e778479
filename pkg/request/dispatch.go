package request

import (
	"osrm_api/pkg/status"
)

// Handler consumes requests, one method per implemented service. Adding a
// service adds a method here, so every consumer has to handle it before it
// compiles again.
type Handler[T any] interface {
	Route(req *Request, svc *Route) (T, error)
	Nearest(req *Request, svc *Nearest) (T, error)
	Table(req *Request, svc *Table) (T, error)
	Match(req *Request, svc *Match) (T, error)
	Trip(req *Request, svc *Trip) (T, error)
}

// Dispatch calls the method of h matching the request's service. Tile
// requests and requests without a service fail with InvalidService.
func Dispatch[T any](req *Request, h Handler[T]) (T, error) {
	var zero T
	if req == nil {
		return zero, status.Errorf(status.InvalidService, "request has no service")
	}
	switch svc := req.Service.(type) {
	case *Route:
		return h.Route(req, svc)
	case *Nearest:
		return h.Nearest(req, svc)
	case *Table:
		return h.Table(req, svc)
	case *Match:
		return h.Match(req, svc)
	case *Trip:
		return h.Trip(req, svc)
	case *Tile:
		return zero, status.Errorf(status.InvalidService, "the tile service is not implemented")
	case nil:
		return zero, status.Errorf(status.InvalidService, "request has no service")
	}
	return zero, status.Errorf(status.InvalidService, "unsupported service %T", req.Service)
}
