package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query describes a PostgREST read against a single table.
type Query struct {
	// Columns is the select list. Empty means all columns ("*").
	Columns []string
	// Order is a PostgREST order expression, e.g. "first_gouged_price_date.asc".
	Order string
	// Limit caps the number of rows returned. 0 means no limit.
	Limit int
}

func (q Query) values() url.Values {
	v := url.Values{}
	sel := "*"
	if len(q.Columns) > 0 {
		sel = strings.Join(q.Columns, ",")
	}
	v.Set("select", sel)
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Select issues a GET against /rest/v1/{table} and returns the raw JSON array
// of rows. The *http.Response is returned (with a closed body) so callers can
// feed rate-limit headers into their request budget.
func (c *Client) Select(ctx context.Context, table string, q Query) ([]byte, *http.Response, error) {
	if ctx == nil {
		return nil, nil, fmt.Errorf("select: ctx is nil")
	}
	if c == nil || c.HTTP == nil || c.BaseURL == nil {
		return nil, nil, fmt.Errorf("select: client is not initialized (use NewClient)")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, nil, fmt.Errorf("select: table is required")
	}

	u := *c.BaseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/rest/v1/" + url.PathEscape(table)
	u.RawQuery = q.values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("select %s: build request: %w", table, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("select %s: read response: %w", table, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp, newAPIError(table, resp.StatusCode, body)
	}

	return body, resp, nil
}
