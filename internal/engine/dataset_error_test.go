package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gougewatch/internal/supabase"
)

func TestPresentDatasetError_MissingTableSkips(t *testing.T) {
	got := presentDatasetError(&supabase.APIError{Table: "gouges", StatusCode: 404}, false)
	if got.disposition != depErrDispositionSkip {
		t.Errorf("disposition = %v, want skip", got.disposition)
	}
	if got.message != `table "gouges" not found` {
		t.Errorf("message = %q", got.message)
	}

	// PostgREST reports a missing relation as 42P01 even on non-404 statuses.
	got = presentDatasetError(&supabase.APIError{Table: "gouges", StatusCode: 400, Code: postgrestUndefinedTable, Message: "relation \"public.gouges\" does not exist"}, false)
	if got.disposition != depErrDispositionSkip {
		t.Errorf("disposition = %v, want skip", got.disposition)
	}
	if got.message != `relation "public.gouges" does not exist` {
		t.Errorf("message = %q", got.message)
	}
}

func TestPresentDatasetError_APIError(t *testing.T) {
	got := presentDatasetError(&supabase.APIError{Table: "gouges", StatusCode: 503, Message: "upstream down"}, false)
	if got.disposition != depErrDispositionError {
		t.Errorf("disposition = %v, want error", got.disposition)
	}
	if got.message != "Supabase API request failed (503 Service Unavailable): upstream down" {
		t.Errorf("message = %q", got.message)
	}
}

func TestPresentDatasetError_WrappedAPIError(t *testing.T) {
	err := fmt.Errorf("fetch gouged listings: %w", &supabase.APIError{Table: "gouges", StatusCode: 404})
	got := presentDatasetError(err, false)
	if got.disposition != depErrDispositionSkip {
		t.Errorf("wrapped APIError not recognized: %+v", got)
	}
}

func TestPresentDatasetError_Verbose(t *testing.T) {
	ae := &supabase.APIError{Table: "gouges", StatusCode: 503, Message: "upstream down"}
	got := presentDatasetError(ae, true)
	if got.message != ae.Error() {
		t.Errorf("verbose message = %q, want full error", got.message)
	}
}

func TestPresentDatasetError_ScrubsTransportErrors(t *testing.T) {
	err := errors.New(`Get "https://bntkbculofzofhwzjsps.supabase.co/rest/v1/gouges?select=%2A": dial tcp 1.2.3.4:443: connect: connection refused`)
	got := presentDatasetError(err, false)
	if got.message != "dial tcp 1.2.3.4:443: connect: connection refused" {
		t.Errorf("message = %q", got.message)
	}
	if strings.Contains(got.message, "supabase.co") {
		t.Errorf("project URL leaked into %q", got.message)
	}
}

func TestPresentDatasetError_GenericFallback(t *testing.T) {
	got := presentDatasetError(errors.New("boom"), false)
	if got.message != "Supabase API request failed" {
		t.Errorf("message = %q", got.message)
	}

	got = presentDatasetError(nil, false)
	if got.message != "unknown error" {
		t.Errorf("nil error message = %q", got.message)
	}
}
