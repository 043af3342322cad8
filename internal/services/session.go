package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/maplink"
	"route-planner-service/internal/ports"
)

// Session holds the planning state for one user: the loaded customer
// list, which rows are selected and the starting address. Selections
// always reference rows of the most recently loaded sheet. A session is
// safe for concurrent use.
type Session struct {
	id string

	source    ports.SheetSource
	optimizer ports.RouteOptimizer

	mu           sync.Mutex
	sheetKey     string
	records      []domain.CustomerRecord
	selected     []bool
	startAddress string
}

func NewSession(source ports.SheetSource, optimizer ports.RouteOptimizer) *Session {
	return &Session{
		id:        uuid.NewString(),
		source:    source,
		optimizer: optimizer,
	}
}

func (s *Session) ID() string { return s.id }

// LoadSheet replaces the customer list with the rows of the given
// sheet and clears the selection; a selection never carries over from
// an earlier sheet. The starting address survives a reload.
func (s *Session) LoadSheet(ctx context.Context, sheetKey string) ([]domain.CustomerRecord, error) {
	records, err := s.source.LoadRecords(ctx, sheetKey)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sheetKey = sheetKey
	s.records = records
	s.selected = make([]bool, len(records))

	out := make([]domain.CustomerRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *Session) SheetKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheetKey
}

// SetStartingAddress stores the route origin. An empty value clears it,
// which disables the optimize action until a new one is set.
func (s *Session) SetStartingAddress(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startAddress = strings.TrimSpace(addr)
}

func (s *Session) StartingAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startAddress
}

// Records returns the loaded customer list and, per row, whether the
// row is currently selected.
func (s *Session) Records() ([]domain.CustomerRecord, []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.CustomerRecord, len(s.records))
	copy(records, s.records)
	selected := make([]bool, len(s.selected))
	copy(selected, s.selected)
	return records, selected
}

// SelectedRecords returns the selected rows in sheet order.
func (s *Session) SelectedRecords() []domain.CustomerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Session) selectedLocked() []domain.CustomerRecord {
	picked := make([]domain.CustomerRecord, 0, len(s.records))
	for i, on := range s.selected {
		if on {
			picked = append(picked, s.records[i])
		}
	}
	return picked
}

// Toggle flips the selection of the row at idx and reports the new
// state. idx is zero-based into the loaded record list.
func (s *Session) Toggle(idx int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.records) {
		return false, &domain.ValidationError{
			Reason: fmt.Sprintf("no customer at position %d", idx+1),
		}
	}

	s.selected[idx] = !s.selected[idx]
	return s.selected[idx], nil
}

// SetSelected replaces the whole selection with the rows at the given
// zero-based positions.
func (s *Session) SetSelected(indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]bool, len(s.records))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.records) {
			return &domain.ValidationError{
				Reason: fmt.Sprintf("no customer at position %d", idx+1),
			}
		}
		next[idx] = true
	}

	s.selected = next
	return nil
}

// CanOptimize reports whether the optimize action is available: at
// least one selected row and a starting address.
func (s *Session) CanOptimize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.startAddress == "" {
		return false
	}
	for _, on := range s.selected {
		if on {
			return true
		}
	}
	return false
}

// Optimize asks the routing service for the best visiting order over
// the current selection and builds the matching navigation link.
// Preconditions are checked first; a validation failure never reaches
// the network. The result's stop order is always a permutation of the
// selection at the time of the call.
func (s *Session) Optimize(ctx context.Context) (*domain.OptimizeOutcome, error) {
	s.mu.Lock()
	start := s.startAddress
	picked := s.selectedLocked()
	s.mu.Unlock()

	if len(picked) == 0 {
		return nil, &domain.ValidationError{Reason: "no customers selected"}
	}
	if start == "" {
		return nil, &domain.ValidationError{Reason: "starting address is not set"}
	}
	for _, r := range picked {
		if strings.TrimSpace(r.Address) == "" {
			return nil, &domain.ValidationError{
				Reason: fmt.Sprintf("%s has no address", r.Name),
			}
		}
	}

	stops := make([]string, len(picked))
	for i, r := range picked {
		stops[i] = r.Address
	}

	optimized, err := s.optimizer.OptimizeRoute(ctx, start, stops)
	if err != nil {
		return nil, err
	}

	if len(optimized.StopOrder) != len(picked) {
		return nil, fmt.Errorf("optimizer returned %d stops for %d selected",
			len(optimized.StopOrder), len(picked))
	}

	ordered := make([]domain.CustomerRecord, 0, len(picked))
	orderedAddrs := make([]string, 0, len(picked))
	seen := make([]bool, len(picked))
	for _, idx := range optimized.StopOrder {
		if idx < 0 || idx >= len(picked) {
			return nil, fmt.Errorf("optimizer returned stop index %d out of range", idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("optimizer returned stop index %d twice", idx)
		}
		seen[idx] = true
		ordered = append(ordered, picked[idx])
		orderedAddrs = append(orderedAddrs, picked[idx].Address)
	}

	link, err := maplink.DirectionsURL(start, orderedAddrs)
	if err != nil {
		return nil, fmt.Errorf("build navigation link: %w", err)
	}

	route := &domain.RouteResult{
		Origin:               start,
		Stops:                ordered,
		Legs:                 optimized.Legs,
		TotalDistanceMeters:  optimized.TotalDistanceMeters,
		TotalDurationSeconds: optimized.TotalDurationSeconds,
		Polyline:             optimized.Polyline,
	}

	return &domain.OptimizeOutcome{Route: route, NavigationURL: link}, nil
}
