// Package integration contains the HTTP clients for the three upstream data
// APIs (Everclear balance history, Tronscan resources, Mayan bridge quotes),
// their response flatteners, and the per-target batch orchestration with
// error isolation.
package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/models"
)

// statusMessageLimit caps how much of an error body is carried into messages.
const statusMessageLimit = 200

// StatusError is returned for non-2xx upstream responses. It carries the
// status code and a body-derived message so batch callers can tag the failure
// as an http_error.
type StatusError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// newHTTPClient returns the client used by all integrations: default
// transport, fixed per-request timeout, nothing else.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: config.APITimeout}
}

// fetchJSON performs one GET round trip and returns the response body.
// Non-2xx statuses become a *StatusError; transport failures are wrapped
// plain errors.
func fetchJSON(ctx context.Context, client *http.Client, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Message:    statusMessage(resp.StatusCode, body),
		}
	}

	return body, nil
}

// statusMessage derives a short human-readable message from an error body,
// falling back to the standard status text.
func statusMessage(status int, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return http.StatusText(status)
	}
	if len(msg) > statusMessageLimit {
		msg = msg[:statusMessageLimit]
	}
	return msg
}

// errorRecord converts one failed query target into a flat error row. The
// identity map supplies the target's identifying columns (query_address for
// balance sources, the chain/token tuple for quotes); the error kind tag
// distinguishes HTTP status failures from everything else.
func errorRecord(identity models.Record, err error) models.Record {
	rec := identity.Clone()
	rec["timestamp"] = time.Now().UTC()

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		rec["error"] = statusErr.Error()
		rec["error_type"] = models.ErrorTypeHTTP
	} else {
		rec["error"] = err.Error()
		rec["error_type"] = models.ErrorTypeGeneral
	}

	return rec
}
