// Package maplink builds Google Maps directions URLs for an ordered
// list of stops. Building a link is pure string work; it never touches
// the network and never reorders the addresses it is given.
package maplink

import (
	"fmt"
	"net/url"
	"strings"
)

const directionsBase = "https://www.google.com/maps/dir/"

// DirectionsURL returns a Google Maps directions link that starts at
// origin, visits every stop in the given order and returns to origin.
// Addresses are percent-encoded; the stop order in the URL is exactly
// the order of stops.
func DirectionsURL(origin string, stops []string) (string, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return "", fmt.Errorf("build directions url: origin is empty")
	}
	if len(stops) == 0 {
		return "", fmt.Errorf("build directions url: no stops")
	}

	cleaned := make([]string, 0, len(stops))
	for i, s := range stops {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", fmt.Errorf("build directions url: stop %d is empty", i+1)
		}
		cleaned = append(cleaned, s)
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin)
	// Round trip: the route ends where it started.
	q.Set("destination", origin)
	q.Set("waypoints", strings.Join(cleaned, "|"))
	q.Set("travelmode", "driving")

	return directionsBase + "?" + q.Encode(), nil
}
