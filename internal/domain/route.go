package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// One drive segment of a computed route, including the return leg to the
// origin. Metrics are kept in base units; presentation layers format them.
type RouteLeg struct {
	StartAddress    string
	EndAddress      string
	DistanceMeters  int
	DurationSeconds int
}

// The outcome of a single optimization request. Stops is a permutation of
// the records that were selected when the request was made; the optimizer
// never adds, drops, or duplicates a stop. A new request supersedes the
// previous result entirely.
type RouteResult struct {
	Origin               string
	Stops                []CustomerRecord
	Legs                 []RouteLeg
	TotalDistanceMeters  int
	TotalDurationSeconds int
	Polyline             string
}

// OptimizeOutcome pairs a computed route with the navigation link built
// for it. The link reflects the route's stop order exactly.
type OptimizeOutcome struct {
	Route         *RouteResult
	NavigationURL string
}
