package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/logging"
)

const (
	DefaultEndpoint = "https://full-stack-expenses-with-type-default-rtdb.firebaseio.com/users"
	DefaultTimeout  = 15 * time.Second

	maxResponseBytes = 1 << 20
)

// Auth identifies whose documents a call touches.
type Auth struct {
	UserID string
	Token  string
}

func (a Auth) valid() bool { return a.UserID != "" && a.Token != "" }

type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// never mutate a caller-supplied client
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func (c *Client) collectionURL(a Auth) string {
	return fmt.Sprintf("%s/%s/expenses.json?auth=%s", c.endpoint, url.PathEscape(a.UserID), url.QueryEscape(a.Token))
}

func (c *Client) itemURL(a Auth, id string) string {
	return fmt.Sprintf("%s/%s/expenses/%s.json?auth=%s", c.endpoint, url.PathEscape(a.UserID), url.PathEscape(id), url.QueryEscape(a.Token))
}

// List returns the user's expenses ordered by id. The store answers null
// for a user without documents.
func (c *Client) List(ctx context.Context, a Auth) ([]models.Expense, error) {
	if !a.valid() {
		return nil, ErrNotAuthenticated
	}

	var docs map[string]models.Expense
	if err := c.do(ctx, http.MethodGet, c.collectionURL(a), nil, &docs); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	out := make([]models.Expense, 0, len(docs))
	for id, e := range docs {
		e.ID = id
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Add stores e and returns it with the id the store generated.
func (c *Client) Add(ctx context.Context, a Auth, e models.Expense) (models.Expense, error) {
	if !a.valid() {
		return models.Expense{}, ErrNotAuthenticated
	}

	var resp struct {
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodPost, c.collectionURL(a), e, &resp); err != nil {
		return models.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	e.ID = resp.Name
	return e, nil
}

func (c *Client) Update(ctx context.Context, a Auth, e models.Expense) error {
	if !a.valid() {
		return ErrNotAuthenticated
	}
	if e.ID == "" {
		return ErrMissingID
	}
	if err := c.do(ctx, http.MethodPut, c.itemURL(a, e.ID), e, nil); err != nil {
		return fmt.Errorf("update expense %s: %w", e.ID, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, a Auth, id string) error {
	if !a.valid() {
		return ErrNotAuthenticated
	}
	if id == "" {
		return ErrMissingID
	}
	if err := c.do(ctx, http.MethodDelete, c.itemURL(a, id), nil, nil); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			// the URL carries the token
			return ue.Err
		}
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug(ctx, "datastore call", "method", method, "status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		return parseAPIError(resp.StatusCode, respBody)
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
