package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const timezoneHeader = "X-Timezone"

// Error is a non-2xx gateway response outside the action endpoint.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %d %s", e.Status, e.Message)
}

func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL  string
	timezone string
	client   *http.Client
}

// New returns a gateway client that sends token as a bearer credential.
// timezone is forwarded so the gateway evaluates dates in the caller's zone.
func New(ctx context.Context, baseURL, token, timezone string) *Client {
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	hc.Timeout = 30 * time.Second
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		timezone: timezone,
		client:   hc,
	}
}

func (c *Client) BorrowEvent(ctx context.Context, id int) (View, error) {
	var v View
	err := c.get(ctx, fmt.Sprintf("/api/v1/borrow-events/%d", id), nil, &v)
	return v, err
}

func (c *Client) History(ctx context.Context, page int) (History, error) {
	var h History
	err := c.get(ctx, "/api/v1/borrow-events", pageQuery(url.Values{}, page), &h)
	return h, err
}

func (c *Client) SearchBooks(ctx context.Context, query string, page int) (SearchResult, error) {
	var res SearchResult
	err := c.get(ctx, "/api/v1/books/search", pageQuery(url.Values{"q": []string{query}}, page), &res)
	return res, err
}

func (c *Client) RecentActivity(ctx context.Context) ([]Activity, error) {
	var activities []Activity
	err := c.get(ctx, "/api/v1/activities/recent", nil, &activities)
	return activities, err
}

// Act runs one borrow event action. Rejections come back as an unsuccessful
// Result, not as an error.
func (c *Client) Act(ctx context.Context, eventID int, action string, in Input) (Result, error) {
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(in); err != nil {
		return Result{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/borrow-events/%d/actions/%s", eventID, url.PathEscape(action)), nil, b)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, errors.Wrapf(err, "decode action result (status %d)", resp.StatusCode)
	}
	if res.Message == "" && resp.StatusCode >= http.StatusBadRequest {
		res.Message = http.StatusText(resp.StatusCode)
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, q, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode gateway response")
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.timezone != "" {
		req.Header.Set(timezoneHeader, c.timezone)
	}
	return req, nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(resp.Body) //nolint:errcheck
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(string(data))
	}
	return &Error{Status: resp.StatusCode, Message: body.Message}
}

func pageQuery(q url.Values, page int) url.Values {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}
