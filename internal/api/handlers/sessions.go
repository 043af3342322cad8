package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/services"
)

// SessionHandler exposes the interactive planning flow over HTTP. Each
// endpoint maps onto one user action: create a session, load a sheet,
// adjust the selection, set the start, optimize.
type SessionHandler struct {
	Manager *services.SessionManager
}

// Collection handles the session collection: POST creates a session.
func (h *SessionHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s := h.Manager.Create()
	writeJSON(w, r, http.StatusCreated, stateResponse(s))
}

// ByID handles a single session: GET returns its state, DELETE ends it.
func (h *SessionHandler) ByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s, ok := h.session(w, r)
		if !ok {
			return
		}
		writeJSON(w, r, http.StatusOK, stateResponse(s))
	case http.MethodDelete:
		if err := h.Manager.Delete(r.PathValue("id")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// LoadSheet replaces the session's customer list with the rows of the
// requested sheet. Loading clears any previous selection.
func (h *SessionHandler) LoadSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.LoadSheetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	key := strings.TrimSpace(req.SheetKey)
	if key == "" {
		writeError(w, r, http.StatusBadRequest, "sheet_key is required")
		return
	}

	if _, err := s.LoadSheet(r.Context(), key); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stateResponse(s))
}

// SetStart stores the route origin for the session.
func (h *SessionHandler) SetStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.SetStartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	addr := strings.TrimSpace(req.StartingAddress)
	if addr == "" {
		writeError(w, r, http.StatusBadRequest, "starting_address is required")
		return
	}

	s.SetStartingAddress(addr)
	writeJSON(w, r, http.StatusOK, stateResponse(s))
}

// SetSelection replaces the session's selection with the given record
// positions (1-based, matching the rendered list).
func (h *SessionHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.SetSelectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	indices := make([]int, len(req.Positions))
	for i, p := range req.Positions {
		indices[i] = p - 1
	}

	if err := s.SetSelected(indices); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stateResponse(s))
}

// Optimize runs the routing call for the current selection and returns
// the ordered route plus its navigation link.
func (h *SessionHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	outcome, err := s.Optimize(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, optimizeResponse(outcome))
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	s, err := h.Manager.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return s, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func stateResponse(s *services.Session) dto.SessionStateResponse {
	records, selected := s.Records()

	res := dto.SessionStateResponse{
		SessionID:       s.ID(),
		SheetKey:        s.SheetKey(),
		StartingAddress: s.StartingAddress(),
		Records:         make([]dto.RecordResponse, 0, len(records)),
		CanOptimize:     s.CanOptimize(),
	}
	for i, rec := range records {
		res.Records = append(res.Records, dto.RecordResponse{
			Position: i + 1,
			Name:     rec.Name,
			Address:  rec.Address,
			Selected: selected[i],
		})
	}
	return res
}

func optimizeResponse(outcome *domain.OptimizeOutcome) dto.OptimizeResponse {
	route := outcome.Route

	res := dto.OptimizeResponse{
		Origin:               route.Origin,
		Stops:                make([]dto.RouteStopResponse, 0, len(route.Stops)),
		Legs:                 make([]dto.RouteLegResponse, 0, len(route.Legs)),
		TotalDistanceMeters:  route.TotalDistanceMeters,
		TotalDurationSeconds: route.TotalDurationSeconds,
		Polyline:             route.Polyline,
		NavigationURL:        outcome.NavigationURL,
	}
	for _, stop := range route.Stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{
			Name:    stop.Name,
			Address: stop.Address,
		})
	}
	for _, leg := range route.Legs {
		res.Legs = append(res.Legs, dto.RouteLegResponse{
			From:            leg.StartAddress,
			To:              leg.EndAddress,
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
		})
	}
	return res
}
