package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"gougewatch/internal/logging"
)

// Client talks to a Supabase project's PostgREST endpoint.
type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client

	projectRef string
}

type options struct {
	verbose bool
	// log receives one line per request and response when verbose logging is
	// enabled. Logs go to stderr so structured output on stdout (e.g. NDJSON)
	// stays clean and tests can capture them.
	log logging.Logger
}

type Option func(*options)

func WithVerbose(enabled bool, log logging.Logger) Option {
	return func(o *options) {
		o.verbose = enabled
		o.log = log
	}
}

// apikeyTransport injects the Supabase apikey header on every request.
// PostgREST behind Supabase wants both this header and the oauth2 bearer token.
type apikeyTransport struct {
	base http.RoundTripper
	key  string
}

func (t *apikeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("apikey", t.key)
	return t.base.RoundTrip(clone)
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	log  logging.Logger
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.log != nil {
		t.log.Infow("supabase api request", "method", req.Method, "url", req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.log != nil {
		if err != nil {
			t.log.Errorw("supabase api error", "after", dur.Truncate(time.Millisecond).String(), "err", err)
		} else {
			t.log.Infow("supabase api response", "status", resp.StatusCode, "took", dur.Truncate(time.Millisecond).String())
		}
	}
	return resp, err
}

func NewClient(ctx context.Context, projectURL, serviceKey string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("supabase client: ctx is nil")
	}
	if strings.TrimSpace(projectURL) == "" {
		return nil, fmt.Errorf("supabase client: project URL is required")
	}
	if strings.TrimSpace(serviceKey) == "" {
		return nil, fmt.Errorf("supabase client: service key is required")
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.log == nil {
		o.log = logging.Nop()
	}

	base, err := url.Parse(strings.TrimSuffix(projectURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("supabase client: invalid project URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("supabase client: project URL must be http(s), got %q", projectURL)
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, log: o.log}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: serviceKey})
	transport = &oauth2.Transport{Source: ts, Base: transport}
	transport = &apikeyTransport{base: transport, key: serviceKey}

	return &Client{
		BaseURL:    base,
		HTTP:       &http.Client{Transport: transport},
		projectRef: projectRef(base),
	}, nil
}

// ProjectRef returns the Supabase project reference (the hostname's first
// label, e.g. "bntkbculofzofhwzjsps"). Used to namespace cache keys.
func (c *Client) ProjectRef() string {
	if c == nil {
		return ""
	}
	return c.projectRef
}

func projectRef(base *url.URL) string {
	host := base.Hostname()
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}
