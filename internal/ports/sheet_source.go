package ports

import (
	"context"

	"route-planner-service/internal/domain"
)

// Port: a boundary for loading customer rows from a tabular data source.
type SheetSource interface {
	// Load every data row of the sheet identified by sheetKey. The sheet
	// must carry Name and Address columns; rows come back in sheet order.
	// Failures are reported as *domain.DataAccessError.
	LoadRecords(ctx context.Context, sheetKey string) ([]domain.CustomerRecord, error)
}
