package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"route-planner-service/internal/adapters/routing"
	"route-planner-service/internal/adapters/sheetsource"
	"route-planner-service/internal/domain"
)

var sampleRecords = []domain.CustomerRecord{
	{Name: "Alice", Address: "1 Main St"},
	{Name: "Bob", Address: "2 Oak Ave"},
	{Name: "Carol", Address: "3 Elm Rd"},
}

func loadedSession(t *testing.T, optimizer *routing.MockOptimizer) *Session {
	t.Helper()

	src := &sheetsource.MockSource{Records: sampleRecords}
	s := NewSession(src, optimizer)
	if _, err := s.LoadSheet(context.Background(), "sheet-1"); err != nil {
		t.Fatalf("load sheet: %v", err)
	}
	return s
}

func reverseOrder(stops []string) []int {
	order := make([]int, len(stops))
	for i := range order {
		order[i] = len(stops) - 1 - i
	}
	return order
}

func TestSessionOptimize(t *testing.T) {
	optimizer := &routing.MockOptimizer{OrderFn: reverseOrder}
	s := loadedSession(t, optimizer)

	// Select Alice and Carol, leave Bob out.
	if err := s.SetSelected([]int{0, 2}); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	s.SetStartingAddress("100 Start Blvd")

	outcome, err := s.Optimize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	route := outcome.Route
	if route.Origin != "100 Start Blvd" {
		t.Errorf("origin = %q", route.Origin)
	}
	if len(route.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(route.Stops))
	}
	if route.Stops[0].Name != "Carol" || route.Stops[1].Name != "Alice" {
		t.Errorf("stops = [%s, %s], want optimizer order [Carol, Alice]",
			route.Stops[0].Name, route.Stops[1].Name)
	}
	for _, stop := range route.Stops {
		if stop.Name == "Bob" {
			t.Errorf("unselected record reached the route")
		}
	}

	if optimizer.Calls != 1 {
		t.Errorf("optimizer calls = %d, want 1", optimizer.Calls)
	}
	if optimizer.LastOrigin != "100 Start Blvd" {
		t.Errorf("optimizer origin = %q", optimizer.LastOrigin)
	}
	if len(optimizer.LastStops) != 2 || optimizer.LastStops[0] != "1 Main St" || optimizer.LastStops[1] != "3 Elm Rd" {
		t.Errorf("optimizer stops = %v, want selection in sheet order", optimizer.LastStops)
	}

	u, err := url.Parse(outcome.NavigationURL)
	if err != nil {
		t.Fatalf("navigation url does not parse: %v", err)
	}
	if got := u.Query().Get("origin"); got != "100 Start Blvd" {
		t.Errorf("link origin = %q", got)
	}
	if got := u.Query().Get("waypoints"); got != "3 Elm Rd|1 Main St" {
		t.Errorf("link waypoints = %q, want route order", got)
	}
	if !strings.Contains(outcome.NavigationURL, "100+Start+Blvd") {
		t.Errorf("link %q misses encoded origin", outcome.NavigationURL)
	}

	if len(route.Legs) != 3 {
		t.Errorf("legs = %d, want 3 for a 2-stop round trip", len(route.Legs))
	}
	if route.TotalDistanceMeters != 3000 || route.TotalDurationSeconds != 180 {
		t.Errorf("totals = %dm %ds", route.TotalDistanceMeters, route.TotalDurationSeconds)
	}
}

func TestSessionOptimizeRequiresSelection(t *testing.T) {
	optimizer := &routing.MockOptimizer{}
	s := loadedSession(t, optimizer)
	s.SetStartingAddress("100 Start Blvd")

	_, err := s.Optimize(context.Background())
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %T is not a ValidationError", err)
	}
	if optimizer.Calls != 0 {
		t.Errorf("optimizer called %d times before validation, want 0", optimizer.Calls)
	}
}

func TestSessionOptimizeRequiresStartingAddress(t *testing.T) {
	optimizer := &routing.MockOptimizer{}
	s := loadedSession(t, optimizer)
	if err := s.SetSelected([]int{0}); err != nil {
		t.Fatalf("set selected: %v", err)
	}

	_, err := s.Optimize(context.Background())
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %T is not a ValidationError", err)
	}
	if optimizer.Calls != 0 {
		t.Errorf("optimizer called %d times before validation, want 0", optimizer.Calls)
	}
}

func TestSessionOptimizeRejectsBlankAddress(t *testing.T) {
	optimizer := &routing.MockOptimizer{}
	src := &sheetsource.MockSource{Records: []domain.CustomerRecord{
		{Name: "Dana", Address: ""},
	}}
	s := NewSession(src, optimizer)
	if _, err := s.LoadSheet(context.Background(), "sheet-1"); err != nil {
		t.Fatalf("load sheet: %v", err)
	}
	if err := s.SetSelected([]int{0}); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	s.SetStartingAddress("100 Start Blvd")

	_, err := s.Optimize(context.Background())
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %T is not a ValidationError", err)
	}
	if !strings.Contains(err.Error(), "Dana") {
		t.Errorf("error %q does not identify the record", err)
	}
	if optimizer.Calls != 0 {
		t.Errorf("optimizer called %d times, want 0", optimizer.Calls)
	}
}

func TestSessionOptimizePassesThroughTypedErrors(t *testing.T) {
	wantErr := &domain.AddressResolutionError{
		Address: "1 Main St",
		Err:     errors.New("geocoding returned ZERO_RESULTS"),
	}
	optimizer := &routing.MockOptimizer{Err: wantErr}
	s := loadedSession(t, optimizer)
	if err := s.SetSelected([]int{0}); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	s.SetStartingAddress("100 Start Blvd")

	_, err := s.Optimize(context.Background())
	var are *domain.AddressResolutionError
	if !errors.As(err, &are) {
		t.Fatalf("error %T is not an AddressResolutionError", err)
	}
	if are.Address != "1 Main St" {
		t.Errorf("Address = %q", are.Address)
	}
}

func TestSessionOptimizeRejectsDuplicateStopIndex(t *testing.T) {
	optimizer := &routing.MockOptimizer{OrderFn: func(stops []string) []int {
		return []int{0, 0}
	}}
	s := loadedSession(t, optimizer)
	if err := s.SetSelected([]int{0, 2}); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	s.SetStartingAddress("100 Start Blvd")

	_, err := s.Optimize(context.Background())
	if err == nil {
		t.Fatalf("expected error for duplicated stop index")
	}
	if !strings.Contains(err.Error(), "stop index 0 twice") {
		t.Errorf("error = %q", err)
	}
}

func TestSessionLoadSheetClearsSelection(t *testing.T) {
	optimizer := &routing.MockOptimizer{}
	src := &sheetsource.MockSource{Records: sampleRecords}
	s := NewSession(src, optimizer)

	if _, err := s.LoadSheet(context.Background(), "sheet-1"); err != nil {
		t.Fatalf("load sheet: %v", err)
	}
	if err := s.SetSelected([]int{0, 1}); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	s.SetStartingAddress("100 Start Blvd")

	src.Records = []domain.CustomerRecord{{Name: "Eve", Address: "5 Fir Ln"}}
	if _, err := s.LoadSheet(context.Background(), "sheet-2"); err != nil {
		t.Fatalf("reload sheet: %v", err)
	}

	if got := s.SelectedRecords(); len(got) != 0 {
		t.Errorf("selection after reload = %v, want empty", got)
	}
	if s.SheetKey() != "sheet-2" {
		t.Errorf("sheet key = %q", s.SheetKey())
	}
	if s.StartingAddress() != "100 Start Blvd" {
		t.Errorf("starting address lost on reload")
	}
	if s.CanOptimize() {
		t.Errorf("optimize available with a cleared selection")
	}
}

func TestSessionLoadSheetFailureKeepsState(t *testing.T) {
	optimizer := &routing.MockOptimizer{}
	src := &sheetsource.MockSource{Records: sampleRecords}
	s := NewSession(src, optimizer)

	if _, err := s.LoadSheet(context.Background(), "sheet-1"); err != nil {
		t.Fatalf("load sheet: %v", err)
	}
	if err := s.SetSelected([]int{1}); err != nil {
		t.Fatalf("set selected: %v", err)
	}

	src.Err = &domain.DataAccessError{SheetKey: "bad", Err: errors.New("permission denied")}
	_, err := s.LoadSheet(context.Background(), "bad")
	var dae *domain.DataAccessError
	if !errors.As(err, &dae) {
		t.Fatalf("error %T is not a DataAccessError", err)
	}

	records, _ := s.Records()
	if len(records) != 3 {
		t.Errorf("records after failed load = %d, want previous list kept", len(records))
	}
	if got := s.SelectedRecords(); len(got) != 1 || got[0].Name != "Bob" {
		t.Errorf("selection after failed load = %v", got)
	}
}

func TestSessionToggle(t *testing.T) {
	s := loadedSession(t, &routing.MockOptimizer{})

	on, err := s.Toggle(1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !on {
		t.Errorf("first toggle = off, want on")
	}

	on, err = s.Toggle(1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if on {
		t.Errorf("second toggle = on, want off")
	}

	if _, err := s.Toggle(3); err == nil {
		t.Errorf("expected error for out-of-range index")
	}
	var ve *domain.ValidationError
	_, err = s.Toggle(-1)
	if !errors.As(err, &ve) {
		t.Errorf("out-of-range error %T is not a ValidationError", err)
	}
}

func TestSessionSetSelectedOutOfRange(t *testing.T) {
	s := loadedSession(t, &routing.MockOptimizer{})

	err := s.SetSelected([]int{0, 7})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %T is not a ValidationError", err)
	}
	if got := s.SelectedRecords(); len(got) != 0 {
		t.Errorf("failed SetSelected changed the selection: %v", got)
	}
}

func TestSessionDuplicateRowsStayDistinct(t *testing.T) {
	optimizer := &routing.MockOptimizer{}
	src := &sheetsource.MockSource{Records: []domain.CustomerRecord{
		{Name: "Alice", Address: "1 Main St"},
		{Name: "Alice", Address: "1 Main St"},
	}}
	s := NewSession(src, optimizer)
	if _, err := s.LoadSheet(context.Background(), "sheet-1"); err != nil {
		t.Fatalf("load sheet: %v", err)
	}
	if err := s.SetSelected([]int{0, 1}); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	s.SetStartingAddress("100 Start Blvd")

	outcome, err := s.Optimize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Route.Stops) != 2 {
		t.Errorf("stops = %d, want duplicate rows kept as distinct stops", len(outcome.Route.Stops))
	}
	if len(optimizer.LastStops) != 2 {
		t.Errorf("optimizer received %d stops, want 2", len(optimizer.LastStops))
	}
}

func TestSessionCanOptimize(t *testing.T) {
	s := loadedSession(t, &routing.MockOptimizer{})

	if s.CanOptimize() {
		t.Errorf("optimize available with nothing selected")
	}

	if _, err := s.Toggle(0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.CanOptimize() {
		t.Errorf("optimize available without a starting address")
	}

	s.SetStartingAddress("100 Start Blvd")
	if !s.CanOptimize() {
		t.Errorf("optimize unavailable with a selection and starting address")
	}

	s.SetStartingAddress("")
	if s.CanOptimize() {
		t.Errorf("optimize available after the starting address was cleared")
	}
}
