package routing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"route-planner-service/internal/domain"
)

// apiStatusError carries a non-success response from a Google endpoint.
type apiStatusError struct {
	Code int
	Body string
}

func (e *apiStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

func (g *GoogleRoutesProvider) newRequest(
	ctx context.Context,
	method string,
	endpoint string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes a single attempt. Failures surface immediately and are
// never retried; every call corresponds to one explicit user action.
// The request URL may carry the API key, so a transport failure keeps
// only its underlying cause; the URL never enters the error text.
func (g *GoogleRoutesProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			return nil, ue.Err
		}
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &apiStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// serviceError maps a transport or status failure onto the availability
// error shown to the user.
func serviceError(service string, err error) error {
	var se *apiStatusError
	if errors.As(err, &se) {
		msg := se.Body
		if msg == "" {
			msg = http.StatusText(se.Code)
		}
		return &domain.ServiceUnavailableError{
			Service:    service,
			StatusCode: se.Code,
			Err:        errors.New(msg),
		}
	}
	return &domain.ServiceUnavailableError{Service: service, Err: err}
}
