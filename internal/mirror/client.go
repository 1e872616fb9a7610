// Package mirror is the one-way sync gateway against the remote document
// store. Push is fire-and-forget; pull wholesale-replaces local collections.
// There is no merge, no retry and no conflict resolution.
package mirror

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rafaelq/fieldlog/internal/models"
)

// ErrNoEndpoint is returned when no remote endpoint URL is configured.
var ErrNoEndpoint = errors.New("remote endpoint not configured")

// Snapshot is a partial snapshot pushed to the remote document store.
// Nil collections are omitted from the body.
type Snapshot struct {
	Logs     []models.WorkLog `json:"logs,omitempty"`
	Tractors []models.Tractor `json:"tractors,omitempty"`
	Users    []models.User    `json:"users,omitempty"`
}

// PullResult carries the decoded remote collections plus which keys the
// response actually contained. Collections absent from the response must
// leave the matching local collection untouched.
type PullResult struct {
	Logs     []models.WorkLog
	Tractors []models.Tractor
	Users    []models.User

	HasLogs     bool
	HasTractors bool
	HasUsers    bool
}

// Client is the HTTP client for the remote document endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a mirror client for the given endpoint URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Push POSTs the snapshot to the endpoint. The response status and body are
// not inspected: a push counts as successful once the request is dispatched
// without a transport error, regardless of what the endpoint did with it.
func (c *Client) Push(snap Snapshot) error {
	if c.BaseURL == "" {
		return ErrNoEndpoint
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// pullResponse keeps the collections raw so an absent key can be told apart
// from a present-but-empty one.
type pullResponse struct {
	Logs     json.RawMessage `json:"logs"`
	Tractors json.RawMessage `json:"tractors"`
	Users    json.RawMessage `json:"users"`
	Error    string          `json:"error"`
}

// Pull GETs the remote document, with a cache-defeat query parameter, and
// decodes whichever collections it contains. Numeric fields are coerced with
// a zero fallback; no further validation is applied to pulled data. A single
// attempt, no retry.
func (c *Client) Pull() (*PullResult, error) {
	if c.BaseURL == "" {
		return nil, ErrNoEndpoint
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint URL: %w", err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	resp, err := c.HTTP.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("pull: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote returned HTTP %d", resp.StatusCode)
	}

	var pr pullResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if pr.Error != "" {
		return nil, fmt.Errorf("remote error: %s", pr.Error)
	}

	res := &PullResult{}

	if present(pr.Logs) {
		var raw []remoteLog
		if err := json.Unmarshal(pr.Logs, &raw); err != nil {
			return nil, fmt.Errorf("decode logs: %w", err)
		}
		res.HasLogs = true
		res.Logs = make([]models.WorkLog, len(raw))
		for i, r := range raw {
			res.Logs[i] = r.workLog()
		}
	}

	if present(pr.Tractors) {
		var raw []remoteTractor
		if err := json.Unmarshal(pr.Tractors, &raw); err != nil {
			return nil, fmt.Errorf("decode tractors: %w", err)
		}
		res.HasTractors = true
		res.Tractors = make([]models.Tractor, len(raw))
		for i, r := range raw {
			res.Tractors[i] = r.tractor()
		}
	}

	if present(pr.Users) {
		var users []models.User
		if err := json.Unmarshal(pr.Users, &users); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
		res.HasUsers = true
		res.Users = users
	}

	return res, nil
}

// present reports whether a raw JSON key was in the response with a non-null
// value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
