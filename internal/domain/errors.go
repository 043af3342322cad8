package domain

import "fmt"

// DataAccessError reports a failed sheet load: unreachable or inaccessible
// sheet, an empty sheet, or missing required columns. The user may retry
// with a corrected sheet key.
type DataAccessError struct {
	SheetKey string
	Err      error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("load sheet %q: %v", e.SheetKey, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// ValidationError reports an optimize trigger fired before its preconditions
// held (no stops selected, no starting address). Raised before any network
// call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AddressResolutionError reports that the external service could not geocode
// one of the requested addresses. The whole request fails; no partial route
// is returned.
type AddressResolutionError struct {
	Address string
	Err     error
}

func (e *AddressResolutionError) Error() string {
	return fmt.Sprintf("address %q could not be resolved: %v", e.Address, e.Err)
}

func (e *AddressResolutionError) Unwrap() error { return e.Err }

// ServiceUnavailableError reports a transport failure, quota exhaustion, or a
// non-success response from an external service. Surfaced as-is; calls are
// user-triggered and never retried automatically.
type ServiceUnavailableError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *ServiceUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s unavailable (status %d): %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }
