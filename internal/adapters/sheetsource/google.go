package sheetsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com"

// GoogleSheetSource reads customer records from a Google spreadsheet
// through the Sheets REST API. The HTTP client is expected to carry
// service-account credentials (an oauth2 client); the adapter itself
// holds no secrets.
type GoogleSheetSource struct {
	client  *http.Client
	baseURL string
}

func NewGoogleSheetSource(client *http.Client) *GoogleSheetSource {
	return &GoogleSheetSource{
		client:  client,
		baseURL: defaultSheetsBaseURL,
	}
}

type spreadsheetMeta struct {
	Sheets []struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

type valueRange struct {
	Values [][]string `json:"values"`
}

// LoadRecords fetches the first worksheet of the spreadsheet identified
// by sheetKey and converts its rows into customer records. Every
// failure, from transport errors to a malformed header, is reported as
// a *domain.DataAccessError carrying the sheet key.
func (g *GoogleSheetSource) LoadRecords(ctx context.Context, sheetKey string) (_ []domain.CustomerRecord, err error) {
	defer obs.Time(ctx, "sheets.load")(&err)

	sheetKey = strings.TrimSpace(sheetKey)
	if sheetKey == "" {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: fmt.Errorf("sheet key is empty")}
	}

	title, err := g.firstSheetTitle(ctx, sheetKey)
	if err != nil {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: err}
	}

	rows, err := g.sheetValues(ctx, sheetKey, title)
	if err != nil {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: err}
	}

	records, err := recordsFromTable(rows)
	if err != nil {
		return nil, &domain.DataAccessError{SheetKey: sheetKey, Err: err}
	}

	return records, nil
}

func (g *GoogleSheetSource) firstSheetTitle(ctx context.Context, sheetKey string) (string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=sheets.properties.title",
		g.baseURL, url.PathEscape(sheetKey))

	var meta spreadsheetMeta
	if err := g.getJSON(ctx, endpoint, &meta); err != nil {
		return "", fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}
	if len(meta.Sheets) == 0 {
		return "", fmt.Errorf("spreadsheet has no worksheets")
	}

	return meta.Sheets[0].Properties.Title, nil
}

func (g *GoogleSheetSource) sheetValues(ctx context.Context, sheetKey, title string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		g.baseURL, url.PathEscape(sheetKey), url.PathEscape(title))

	var vr valueRange
	if err := g.getJSON(ctx, endpoint, &vr); err != nil {
		return nil, fmt.Errorf("fetch sheet values: %w", err)
	}

	return vr.Values, nil
}

func (g *GoogleSheetSource) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets api status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
