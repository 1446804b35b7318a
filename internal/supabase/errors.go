package supabase

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// APIError is a non-2xx response from PostgREST.
type APIError struct {
	Table      string
	StatusCode int
	// Message and Code come from the PostgREST error body when present.
	Message string
	Code    string
}

func (e *APIError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		return fmt.Sprintf("supabase: select %s: %s: %s", e.Table, status, e.Message)
	}
	return fmt.Sprintf("supabase: select %s: %s", e.Table, status)
}

func newAPIError(table string, status int, body []byte) *APIError {
	e := &APIError{Table: table, StatusCode: status}
	if gjson.ValidBytes(body) {
		e.Message = strings.TrimSpace(gjson.GetBytes(body, "message").String())
		e.Code = gjson.GetBytes(body, "code").String()
	}
	return e
}
