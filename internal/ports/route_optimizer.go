package ports

import (
	"context"

	"route-planner-service/internal/domain"
)

// An optimized visiting order for one origin and a set of stops.
// StopOrder holds indices into the stops slice passed to OptimizeRoute and is
// always a permutation of [0, len(stops)). Legs cover the full round trip,
// origin through every stop and back.
type OptimizedRoute struct {
	StopOrder            []int
	Legs                 []domain.RouteLeg
	TotalDistanceMeters  int
	TotalDurationSeconds int
	Polyline             string
}

// Contract for requesting an optimized visiting order from an external
// routing service.
type RouteOptimizer interface {
	// Compute an efficient visiting order for stops starting (and ending)
	// at origin. stops must be non-empty; duplicates are kept as distinct
	// stops. Failures are reported as *domain.AddressResolutionError or
	// *domain.ServiceUnavailableError.
	OptimizeRoute(ctx context.Context, origin string, stops []string) (*OptimizedRoute, error)
}
