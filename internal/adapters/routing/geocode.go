package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// geocodeMany resolves addresses to coordinates via the Geocoding API.
// Duplicates are collapsed and the in-memory cache is consulted first;
// fresh results are written back so later optimizations in the same run
// skip the lookup. Any unresolvable address fails the whole batch.
func (g *GoogleRoutesProvider) geocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.many")(&err)

	unique := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		unique = append(unique, a)
	}

	out := make(map[string]domain.Coordinates, len(unique))
	if g.cache != nil {
		for a, c := range g.cache.GetMany(unique) {
			out[a] = c
		}
	}

	fresh := make(map[string]domain.Coordinates)
	for _, a := range unique {
		if _, ok := out[a]; ok {
			continue
		}
		coord, err := g.geocodeOne(ctx, a)
		if err != nil {
			return nil, err
		}
		fresh[a] = coord
		out[a] = coord
	}

	if g.cache != nil && len(fresh) > 0 {
		g.cache.PutMany(fresh)
	}

	return out, nil
}

func (g *GoogleRoutesProvider) geocodeOne(ctx context.Context, address string) (domain.Coordinates, error) {
	req, err := g.newRequest(ctx, http.MethodGet, g.geocodeBaseURL+"/maps/api/geocode/json", nil)
	if err != nil {
		return domain.Coordinates{}, err
	}

	q := req.URL.Query()
	q.Set("address", address)
	q.Set("key", g.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := g.do(req)
	if err != nil {
		return domain.Coordinates{}, serviceError("geocoding", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, serviceError("geocoding", fmt.Errorf("decode response: %w", err))
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS", "INVALID_REQUEST":
		return domain.Coordinates{}, &domain.AddressResolutionError{
			Address: address,
			Err:     fmt.Errorf("geocoding returned %s", decoded.Status),
		}
	default:
		msg := decoded.Status
		if decoded.ErrorMessage != "" {
			msg += ": " + decoded.ErrorMessage
		}
		return domain.Coordinates{}, &domain.ServiceUnavailableError{
			Service: "geocoding",
			Err:     errors.New(msg),
		}
	}

	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, &domain.AddressResolutionError{
			Address: address,
			Err:     errors.New("geocoding returned no results"),
		}
	}

	loc := decoded.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
