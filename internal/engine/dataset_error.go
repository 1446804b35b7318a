package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gougewatch/internal/supabase"
)

type depErrorDisposition int

const (
	depErrDispositionError depErrorDisposition = iota
	depErrDispositionSkip
)

type depErrorPresentation struct {
	disposition depErrorDisposition
	message     string
}

// postgrestUndefinedTable is the PostgreSQL error code PostgREST returns when
// the requested relation does not exist.
const postgrestUndefinedTable = "42P01"

func isMissingTable(e *supabase.APIError) bool {
	if e.Code == postgrestUndefinedTable {
		return true
	}
	return e.StatusCode == http.StatusNotFound
}

func presentDatasetError(err error, verbose bool) depErrorPresentation {
	if err == nil {
		return depErrorPresentation{disposition: depErrDispositionError, message: "unknown error"}
	}

	full := err.Error()

	// Prefer the structured PostgREST error type to avoid leaking request details.
	var ae *supabase.APIError
	if errors.As(err, &ae) {
		msg := strings.TrimSpace(ae.Message)
		if !verbose && isMissingTable(ae) {
			if msg == "" {
				msg = fmt.Sprintf("table %q not found", ae.Table)
			}
			return depErrorPresentation{disposition: depErrDispositionSkip, message: msg}
		}

		if verbose {
			return depErrorPresentation{disposition: depErrDispositionError, message: full}
		}

		status := fmt.Sprintf("%d %s", ae.StatusCode, http.StatusText(ae.StatusCode))
		if msg == "" {
			msg = "Supabase API request failed"
		}
		return depErrorPresentation{disposition: depErrDispositionError, message: fmt.Sprintf("Supabase API request failed (%s): %s", status, msg)}
	}

	s := strings.TrimSpace(full)
	if verbose {
		return depErrorPresentation{disposition: depErrDispositionError, message: full}
	}
	if scrubbed := scrubRequestFromErrorString(s); scrubbed != "" {
		return depErrorPresentation{disposition: depErrDispositionError, message: scrubbed}
	}
	return depErrorPresentation{disposition: depErrDispositionError, message: "Supabase API request failed"}
}

func scrubRequestFromErrorString(s string) string {
	// Typical transport error format:
	//   Get "https://xyz.supabase.co/rest/v1/...": dial tcp ...
	// We want to drop the leading method + URL part so the project ref and query
	// string never reach the console.
	methods := []string{"Get ", "Post ", "GET ", "POST "}
	for _, m := range methods {
		if !strings.HasPrefix(s, m) {
			continue
		}
		if i := strings.Index(s, "https://"); i >= 0 {
			if j := strings.Index(s[i:], ": "); j >= 0 {
				return strings.TrimSpace(s[i+j+2:])
			}
		}
		if j := strings.Index(s, ": "); j >= 0 {
			return strings.TrimSpace(s[j+2:])
		}
		break
	}
	return ""
}
