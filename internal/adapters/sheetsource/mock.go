package sheetsource

import (
	"context"

	"route-planner-service/internal/domain"
)

// MockSource returns a fixed record set, or a fixed error, and counts
// calls. Used by service and handler tests.
type MockSource struct {
	Records []domain.CustomerRecord
	Err     error

	Calls   int
	LastKey string
}

func (m *MockSource) LoadRecords(ctx context.Context, sheetKey string) ([]domain.CustomerRecord, error) {
	m.Calls++
	m.LastKey = sheetKey
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]domain.CustomerRecord, len(m.Records))
	copy(out, m.Records)
	return out, nil
}
