// Package submit drives one calculation request from the form to the
// calculation service and keeps the resulting display state.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Simplici0/laborcalc/internal/api"
	"github.com/Simplici0/laborcalc/internal/form"
)

// Endpoint is the calculation service the form submits to.
const Endpoint = "http://localhost:5000" + api.CalculatePath

// FallbackMessage is shown when a failed response carries no error text.
const FallbackMessage = "Calculation failed"

// Status is the controller's position in the submission lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// NetworkError means the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "calculation request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError means the service answered with a non-success status.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// State is what the form displays. Result and Err are independent: a failed
// submission leaves the previous result in place.
type State struct {
	Status  Status
	Loading bool
	Result  *api.Result
	Err     string
}

// Outcome is the result of one network round-trip.
type Outcome struct {
	Result *api.Result
	Err    error
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClient replaces the HTTP client.
func WithClient(client Doer) Option {
	return func(c *Controller) {
		if client != nil {
			c.client = client
		}
	}
}

// WithEndpoint points the controller at another calculation URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Controller) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the submission state. It does not guard against a second
// submission while one is in flight; outcomes are applied in arrival order.
type Controller struct {
	client   Doer
	endpoint string
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// New returns an idle Controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		client:   http.DefaultClient,
		endpoint: Endpoint,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Controller) Endpoint() string {
	return c.endpoint
}

// State returns a snapshot of the display state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs a whole submission: it enters the loading state, coerces the
// aggregate, sends it and applies the outcome.
func (c *Controller) Submit(ctx context.Context, agg form.Aggregate) State {
	c.Begin()
	req, err := agg.Payload()
	if err != nil {
		return c.Finish(Outcome{Err: err})
	}
	return c.Finish(c.Send(ctx, req))
}

// Begin enters the loading state and clears the previous error.
func (c *Controller) Begin() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Status = StatusLoading
	c.state.Loading = true
	c.state.Err = ""
	return c.state
}

// Send performs the request. It does not touch the controller state, so it
// can run off the UI loop.
func (c *Controller) Send(ctx context.Context, payload api.CalculateRequest) Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Err: fmt.Errorf("encode calculation request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{Err: fmt.Errorf("build calculation request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("calculation request failed", "endpoint", c.endpoint, "error", err)
		return Outcome{Err: &NetworkError{Err: err}}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Err: &NetworkError{Err: err}}
	}
	c.logger.Debug("calculation response", "status", resp.StatusCode, "bytes", len(data), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{Err: serviceError(resp.StatusCode, data)}
	}

	var result api.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Outcome{Err: fmt.Errorf("decode calculation result: %w", err)}
	}
	return Outcome{Result: &result}
}

func serviceError(status int, body []byte) *ServiceError {
	var payload api.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
		return &ServiceError{StatusCode: status, Message: FallbackMessage}
	}
	return &ServiceError{StatusCode: status, Message: payload.Error}
}

// Finish applies an outcome and leaves the loading state.
func (c *Controller) Finish(o Outcome) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Loading = false
	if o.Err != nil {
		c.state.Status = StatusError
		c.state.Err = Message(o.Err)
		return c.state
	}
	c.state.Status = StatusSuccess
	c.state.Result = o.Result
	return c.state
}

// Message reduces an error to the banner text.
func Message(err error) string {
	var serr *ServiceError
	if errors.As(err, &serr) {
		return serr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
