package routing

import (
	"fmt"
	"time"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

const routesFieldMask = "routes.duration,routes.distanceMeters," +
	"routes.polyline.encodedPolyline,routes.legs," +
	"routes.optimizedIntermediateWaypointIndex"

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

func locationWaypoint(c domain.Coordinates) waypoint {
	var w waypoint
	w.Location.LatLng = latLng{Latitude: c.Lat, Longitude: c.Lng}
	return w
}

type routeModifiers struct {
	AvoidTolls    bool `json:"avoidTolls"`
	AvoidHighways bool `json:"avoidHighways"`
	AvoidFerries  bool `json:"avoidFerries"`
}

type computeRoutesRequest struct {
	Origin                   waypoint       `json:"origin"`
	Destination              waypoint       `json:"destination"`
	Intermediates            []waypoint     `json:"intermediates"`
	TravelMode               string         `json:"travelMode"`
	RoutingPreference        string         `json:"routingPreference"`
	OptimizeWaypointOrder    bool           `json:"optimizeWaypointOrder"`
	ComputeAlternativeRoutes bool           `json:"computeAlternativeRoutes"`
	RouteModifiers           routeModifiers `json:"routeModifiers"`
	LanguageCode             string         `json:"languageCode"`
	Units                    string         `json:"units"`
}

type routeLegJSON struct {
	DistanceMeters int    `json:"distanceMeters"`
	Duration       string `json:"duration"`
}

type routeJSON struct {
	Duration       string `json:"duration"`
	DistanceMeters int    `json:"distanceMeters"`
	Polyline       struct {
		EncodedPolyline string `json:"encodedPolyline"`
	} `json:"polyline"`
	Legs                               []routeLegJSON `json:"legs"`
	OptimizedIntermediateWaypointIndex []int          `json:"optimizedIntermediateWaypointIndex"`
}

type computeRoutesResponse struct {
	Routes []routeJSON `json:"routes"`
}

// parseAPIDuration parses the Routes API duration form, e.g. "1234s".
func parseAPIDuration(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return int(d.Seconds()), nil
}

// stopOrder returns the optimized visiting order as indices into the
// submitted stops. A response without the order field means the service
// kept the submitted order.
func stopOrder(route routeJSON, n int) ([]int, error) {
	order := route.OptimizedIntermediateWaypointIndex
	if len(order) == 0 {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order, nil
	}

	if len(order) != n {
		return nil, fmt.Errorf("waypoint order has %d entries for %d stops", len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("waypoint index %d out of range", idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("waypoint index %d repeated", idx)
		}
		seen[idx] = true
	}

	return append([]int(nil), order...), nil
}

// buildOptimizedRoute maps an API route onto the port result. Legs run
// origin, first stop, ..., last stop, back to origin.
func buildOptimizedRoute(route routeJSON, origin string, stops []string) (*ports.OptimizedRoute, error) {
	order, err := stopOrder(route, len(stops))
	if err != nil {
		return nil, err
	}

	points := make([]string, 0, len(stops)+2)
	points = append(points, origin)
	for _, idx := range order {
		points = append(points, stops[idx])
	}
	points = append(points, origin)

	legs := make([]domain.RouteLeg, 0, len(route.Legs))
	for i, l := range route.Legs {
		if i+1 >= len(points) {
			return nil, fmt.Errorf("route has %d legs for %d stops", len(route.Legs), len(stops))
		}
		secs, err := parseAPIDuration(l.Duration)
		if err != nil {
			return nil, err
		}
		legs = append(legs, domain.RouteLeg{
			StartAddress:    points[i],
			EndAddress:      points[i+1],
			DistanceMeters:  l.DistanceMeters,
			DurationSeconds: secs,
		})
	}

	totalSecs, err := parseAPIDuration(route.Duration)
	if err != nil {
		return nil, err
	}

	return &ports.OptimizedRoute{
		StopOrder:            order,
		Legs:                 legs,
		TotalDistanceMeters:  route.DistanceMeters,
		TotalDurationSeconds: totalSecs,
		Polyline:             route.Polyline.EncodedPolyline,
	}, nil
}
