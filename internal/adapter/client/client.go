package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

const maxResponseBody = 1 << 20

// baseClient is the JSON-over-HTTP plumbing shared by every collaborator.
// Transport failures, timeouts and 5xx answers become
// domain.ErrCollaboratorUnavailable.
type baseClient struct {
	service string
	baseURL string
	http    *http.Client
}

func newBaseClient(service, baseURL string, timeout time.Duration) *baseClient {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &baseClient{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// send performs the call and returns the response payload, unwrapped from a
// {"data": ...} envelope when the upstream uses one. A 404 yields notFound.
func (c *baseClient) send(ctx context.Context, method, path string, payload any, notFound error) (gjson.Result, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("failed to encode %s request: %w", c.service, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to build %s request: %w", c.service, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, domain.Unavailable(c.service, err)
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return gjson.Result{}, domain.Unavailable(c.service, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return gjson.Result{}, notFound
	case resp.StatusCode >= 500:
		return gjson.Result{}, domain.Unavailable(c.service, fmt.Errorf("status %d: %s", resp.StatusCode, errorMessage(raw)))
	case resp.StatusCode == http.StatusConflict:
		return gjson.Result{}, domain.Conflictf("%s: %s", c.service, errorMessage(raw))
	case resp.StatusCode >= 400:
		return gjson.Result{}, fmt.Errorf("%s returned status %d: %s", c.service, resp.StatusCode, errorMessage(raw))
	}

	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return gjson.Result{}, nil
	}

	return unwrap(gjson.ParseBytes(raw)), nil
}

func unwrap(r gjson.Result) gjson.Result {
	if r.IsObject() {
		if data := r.Get("data"); data.Exists() {
			return data
		}
	}
	return r
}

func errorMessage(raw []byte) string {
	if gjson.ValidBytes(raw) {
		for _, key := range []string{"error", "message"} {
			if msg := gjson.GetBytes(raw, key); msg.Exists() {
				return msg.String()
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
