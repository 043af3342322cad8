package dto

type RouteStopResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type RouteLegResponse struct {
	From            string `json:"from"`
	To              string `json:"to"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

type OptimizeResponse struct {
	Origin               string              `json:"origin"`
	Stops                []RouteStopResponse `json:"stops"`
	Legs                 []RouteLegResponse  `json:"legs"`
	TotalDistanceMeters  int                 `json:"total_distance_meters"`
	TotalDurationSeconds int                 `json:"total_duration_seconds"`
	Polyline             string              `json:"polyline,omitempty"`
	NavigationURL        string              `json:"navigation_url"`
}
