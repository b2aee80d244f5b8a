// Package api talks to the persons REST collaborator.
//
// Reads normalize heterogeneous bodies (array, object, empty) into a list.
// Writes are judged by status code alone; their bodies are optional
// metadata and never required for control flow.
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

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/persons/internal/model"
)

// Endpoint suffixes relative to the base URL.
const (
	PathHealth = "/persons/health"
	PathAll    = "/persons/all"
	PathAdd    = "/persons/add"
	PathUpdate = "/persons/update"
	PathDelete = "/persons/delete"
	PathByID   = "/persons"
	PathSearch = "/persons/search"
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result carries what a write endpoint answered. Only Status is meaningful
// for control flow.
type Result struct {
	Status int
	Body   []byte
}

// Client is the gateway to the persons API. It holds no mutable state and
// is safe for concurrent use.
type Client struct {
	http    Doer
	baseURL string
	timeout time.Duration
	log     logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient replaces the transport (tests, proxies).
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithTimeout bounds every request. Zero leaves it to the transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client for the API rooted at baseURL,
// e.g. "http://localhost:8080/tp333/api".
func New(baseURL string, opts ...Option) *Client {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		http:    http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     discard,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Health performs the health check and returns why it failed, if it did.
func (c *Client) Health(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodGet, PathHealth, nil)
	return err
}


// FetchAll loads every record.
func (c *Client) FetchAll(ctx context.Context) ([]model.Person, error) {
	_, body, err := c.do(ctx, http.MethodGet, PathAll, nil)
	if err != nil {
		return nil, err
	}
	persons, err := normalizeList("fetch all", body)
	if err != nil {
		return nil, err
	}
	c.log.WithField("count", len(persons)).Debug("persons loaded")
	return persons, nil
}

// FetchOne loads a record by id. A missing record yields ErrNotFound.
func (c *Client) FetchOne(ctx context.Context, id int) (model.Person, error) {
	_, body, err := c.do(ctx, http.MethodGet, PathByID+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return model.Person{}, err
	}
	return decodePerson("fetch one", body)
}

// Search looks records up by name. An empty pattern is a full reload.
func (c *Client) Search(ctx context.Context, pattern string) ([]model.Person, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return c.FetchAll(ctx)
	}
	_, body, err := c.do(ctx, http.MethodGet, PathSearch+"/"+url.PathEscape(pattern), nil)
	if err != nil {
		return nil, err
	}
	return normalizeList("search", body)
}

// Create posts a new record; the server assigns the id.
func (c *Client) Create(ctx context.Context, p model.Person) (Result, error) {
	p.ID = 0
	return c.write(ctx, http.MethodPost, PathAdd, p)
}

// Update replaces the record identified by p.ID.
func (c *Client) Update(ctx context.Context, p model.Person) (Result, error) {
	if p.ID <= 0 {
		return Result{}, &model.ValidationError{Field: "id", Message: "update requires a record id"}
	}
	return c.write(ctx, http.MethodPut, PathUpdate, p)
}

// Remove deletes a record by id.
func (c *Client) Remove(ctx context.Context, id int) (Result, error) {
	status, body, err := c.do(ctx, http.MethodDelete, PathDelete+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Status: status, Body: body}, nil
}

func (c *Client) write(ctx context.Context, method, path string, p model.Person) (Result, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return Result{}, fmt.Errorf("encode person: %w", err)
	}
	status, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return Result{}, err
	}
	return Result{Status: status, Body: body}, nil
}

// do sends one request and returns the status and body of a 2xx response.
// Non-2xx responses become *HTTPError, transport failures *TransportError.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	op := method + " " + path
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.WithFields(logrus.Fields{"method": method, "endpoint": path})
	log.Debug("request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("transport failure")
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}
	log.WithField("status", resp.StatusCode).Debug("response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}
	return resp.StatusCode, body, nil
}
