package sheetsource

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

// WorkbookSource reads customer records from .xlsx workbooks in a local
// directory. The sheet key is the workbook file name; the .xlsx
// extension may be omitted. Useful for development and for teams that
// keep the customer list as a file rather than an online sheet.
type WorkbookSource struct {
	dir string
}

func NewWorkbookSource(dir string) *WorkbookSource {
	return &WorkbookSource{dir: dir}
}

// LoadRecords opens the named workbook and reads the rows of its first
// worksheet. As with the Google adapter, every failure is reported as a
// *domain.DataAccessError carrying the sheet key.
func (w *WorkbookSource) LoadRecords(ctx context.Context, sheetKey string) (_ []domain.CustomerRecord, err error) {
	defer obs.Time(ctx, "workbook.load")(&err)

	sheetKey = strings.TrimSpace(sheetKey)
	if sheetKey == "" {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: fmt.Errorf("sheet key is empty")}
	}

	name := sheetKey
	if filepath.Ext(name) == "" {
		name += ".xlsx"
	}
	if filepath.Base(name) != name {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: fmt.Errorf("sheet key must be a bare file name")}
	}

	f, err := excelize.OpenFile(filepath.Join(w.dir, name))
	if err != nil {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	first := f.GetSheetName(0)
	if first == "" {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: fmt.Errorf("workbook has no worksheets")}
	}

	rows, err := f.GetRows(first)
	if err != nil {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: fmt.Errorf("read rows: %w", err)}
	}

	records, err := recordsFromTable(rows)
	if err != nil {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: err}
	}

	return records, nil
}
