package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
)

const (
	defaultRoutesBaseURL  = "https://routes.googleapis.com"
	defaultGeocodeBaseURL = "https://maps.googleapis.com"
)

// GoogleRoutesProvider implements RouteOptimizer using the Google
// Routes API, with the Geocoding API resolving addresses first.
//
// It coordinates:
//   - Address normalization
//   - In-memory geocode caching for the life of the process
//   - Single-attempt external API calls
//
// The provider is safe for concurrent use.
type GoogleRoutesProvider struct {
	client         *http.Client
	apiKey         string
	routesBaseURL  string
	geocodeBaseURL string
	cache          *cache.MemoryCache
}

func NewGoogleRoutesProvider(apiKey string, geocodeCache *cache.MemoryCache) (*GoogleRoutesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("routes api key is empty")
	}

	return &GoogleRoutesProvider{
		client:         &http.Client{Timeout: 15 * time.Second},
		apiKey:         apiKey,
		routesBaseURL:  defaultRoutesBaseURL,
		geocodeBaseURL: defaultGeocodeBaseURL,
		cache:          geocodeCache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// OptimizeRoute geocodes the origin and every stop, asks the Routes API
// for an optimized round trip and maps the response onto the port
// result. StopOrder always indexes the stops argument by position.
func (g *GoogleRoutesProvider) OptimizeRoute(
	ctx context.Context,
	origin string,
	stops []string,
) (_ *ports.OptimizedRoute, err error) {
	defer obs.Time(ctx, "routes.optimize")(&err)

	normOrigin := normalize(origin)
	if normOrigin == "" {
		return nil, errors.New("origin must be non-empty")
	}
	if len(stops) == 0 {
		return nil, errors.New("at least one stop is required")
	}

	normStops := make([]string, len(stops))
	for i, s := range stops {
		ns := normalize(s)
		if ns == "" {
			return nil, fmt.Errorf("stop %d is empty", i+1)
		}
		normStops[i] = ns
	}

	all := make([]string, 0, 1+len(normStops))
	all = append(all, normOrigin)
	all = append(all, normStops...)

	coords, err := g.geocodeMany(ctx, all)
	if err != nil {
		return nil, err
	}

	route, err := g.computeRoutes(ctx, coords[normOrigin], normStops, coords)
	if err != nil {
		return nil, err
	}

	out, err := buildOptimizedRoute(route, normOrigin, normStops)
	if err != nil {
		return nil, &domain.ServiceUnavailableError{Service: "routes", Err: err}
	}

	return out, nil
}

func (g *GoogleRoutesProvider) computeRoutes(
	ctx context.Context,
	origin domain.Coordinates,
	stops []string,
	coords map[string]domain.Coordinates,
) (routeJSON, error) {
	reqBody := computeRoutesRequest{
		Origin: locationWaypoint(origin),
		// Round trip: the route ends where it started.
		Destination:              locationWaypoint(origin),
		TravelMode:               "DRIVE",
		RoutingPreference:        "TRAFFIC_AWARE",
		OptimizeWaypointOrder:    true,
		ComputeAlternativeRoutes: false,
		LanguageCode:             "en-US",
		Units:                    "METRIC",
	}
	for _, s := range stops {
		reqBody.Intermediates = append(reqBody.Intermediates, locationWaypoint(coords[s]))
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return routeJSON{}, fmt.Errorf("encode request: %w", err)
	}

	endpoint := g.routesBaseURL + "/directions/v2:computeRoutes"
	req, err := g.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return routeJSON{}, err
	}
	req.Header.Set("X-Goog-Api-Key", g.apiKey)
	req.Header.Set("X-Goog-FieldMask", routesFieldMask)

	resp, err := g.do(req)
	if err != nil {
		return routeJSON{}, serviceError("routes", err)
	}
	defer resp.Body.Close()

	var decoded computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return routeJSON{}, serviceError("routes", fmt.Errorf("decode response: %w", err))
	}

	if len(decoded.Routes) == 0 {
		return routeJSON{}, &domain.ServiceUnavailableError{
			Service: "routes",
			Err:     errors.New("response contained no routes"),
		}
	}

	return decoded.Routes[0], nil
}
