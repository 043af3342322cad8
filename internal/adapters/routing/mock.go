package routing

import (
	"context"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// MockOptimizer returns a synthetic round-trip route and counts calls.
// The visit order comes from OrderFn when set, otherwise the submitted
// order is kept.
type MockOptimizer struct {
	Err     error
	OrderFn func(stops []string) []int

	LegMeters  int
	LegSeconds int

	Calls      int
	LastOrigin string
	LastStops  []string
}

func (m *MockOptimizer) OptimizeRoute(ctx context.Context, origin string, stops []string) (*ports.OptimizedRoute, error) {
	m.Calls++
	m.LastOrigin = origin
	m.LastStops = append([]string(nil), stops...)

	if m.Err != nil {
		return nil, m.Err
	}

	order := make([]int, len(stops))
	for i := range order {
		order[i] = i
	}
	if m.OrderFn != nil {
		order = m.OrderFn(stops)
	}

	meters := m.LegMeters
	if meters == 0 {
		meters = 1000
	}
	secs := m.LegSeconds
	if secs == 0 {
		secs = 60
	}

	points := make([]string, 0, len(stops)+2)
	points = append(points, origin)
	for _, idx := range order {
		points = append(points, stops[idx])
	}
	points = append(points, origin)

	legs := make([]domain.RouteLeg, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		legs = append(legs, domain.RouteLeg{
			StartAddress:    points[i],
			EndAddress:      points[i+1],
			DistanceMeters:  meters,
			DurationSeconds: secs,
		})
	}

	return &ports.OptimizedRoute{
		StopOrder:            order,
		Legs:                 legs,
		TotalDistanceMeters:  meters * len(legs),
		TotalDurationSeconds: secs * len(legs),
		Polyline:             "mock_polyline",
	}, nil
}
