package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	inner := errors.New("connection refused")

	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "data access",
			err:  &DataAccessError{SheetKey: "crm-2024", Err: inner},
			want: `load sheet "crm-2024": connection refused`,
		},
		{
			name: "validation",
			err:  &ValidationError{Reason: "no customers selected"},
			want: "no customers selected",
		},
		{
			name: "address resolution",
			err:  &AddressResolutionError{Address: "1 Nowhere Rd", Err: inner},
			want: `address "1 Nowhere Rd" could not be resolved: connection refused`,
		},
		{
			name: "service unavailable with status",
			err:  &ServiceUnavailableError{Service: "routes", StatusCode: 503, Err: inner},
			want: "routes unavailable (status 503): connection refused",
		},
		{
			name: "service unavailable without status",
			err:  &ServiceUnavailableError{Service: "geocoding", Err: inner},
			want: "geocoding unavailable: connection refused",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	inner := errors.New("boom")
	wrapped := fmt.Errorf("optimize: %w", &AddressResolutionError{Address: "12 Oak St", Err: inner})

	var are *AddressResolutionError
	if !errors.As(wrapped, &are) {
		t.Fatalf("errors.As did not find AddressResolutionError in %v", wrapped)
	}
	if are.Address != "12 Oak St" {
		t.Errorf("Address = %q, want %q", are.Address, "12 Oak St")
	}
	if !errors.Is(wrapped, inner) {
		t.Errorf("errors.Is did not reach the inner error")
	}
}
