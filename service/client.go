package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"eventify-cli/logging"
	"eventify-cli/model"
)

const (
	defaultTimeout   = 12 * time.Second
	maxErrorBodySize = 8 << 10
)

// UserAgent is sent with every request; cmd sets the version suffix.
var UserAgent = "eventify-cli/dev"

// TokenSource supplies the bearer credential of the current session, or ""
// when signed out.
type TokenSource interface {
	Token() string
}

// Client wraps HTTP access to the Eventify API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	tokens     TokenSource
	log        logging.Logger
	newID      func() string
}

// APIError is returned when the API responds with a non-2xx status. Message
// is what the user gets to see.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "eventify api error"
	}
	return e.Message
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// Message returns the display text for any error returned by the client.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// NewClient creates a new API client rooted at baseURL. If httpClient is nil,
// a default client is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  UserAgent,
		log:        logging.Discard(),
		newID:      func() string { return uuid.NewString() },
	}
}

// SetTokenSource attaches the session whose token authorizes requests.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func (c *Client) SetLogger(log logging.Logger) {
	if log == nil {
		log = logging.Discard()
	}
	c.log = log
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return model.AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return model.AuthResponse{}, err
	}
	return out, nil
}

// ListEvents returns the full event catalog.
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var out model.EventList
	if err := c.doJSON(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return model.Event{}, errors.New("event id is required")
	}
	var event model.Event
	if err := c.doJSON(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID), nil, &event); err != nil {
		return model.Event{}, err
	}
	return event, nil
}

func (c *Client) CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodPost, "/events", req, &event); err != nil {
		return model.Event{}, err
	}
	return event, nil
}

// BookEvent reserves one seat of the event for the current session.
func (c *Client) BookEvent(ctx context.Context, eventID string) (model.BookingResponse, error) {
	if strings.TrimSpace(eventID) == "" {
		return model.BookingResponse{}, errors.New("event id is required")
	}
	var out model.BookingResponse
	endpoint := fmt.Sprintf("/events/%s/register", url.PathEscape(eventID))
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, &out); err != nil {
		return model.BookingResponse{}, err
	}
	return out, nil
}

// MyRegistrations returns the tickets of the current session.
func (c *Client) MyRegistrations(ctx context.Context) ([]model.Registration, error) {
	var out model.RegistrationList
	if err := c.doJSON(ctx, http.MethodGet, "/me/registrations", nil, &out); err != nil {
		return nil, err
	}
	return out.Registrations, nil
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	log := c.log.WithFields(map[string]interface{}{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.WithField("error", err.Error()).Warn("api request failed")
		return errors.Wrap(err, "request failed")
	}
	defer res.Body.Close()

	log = log.WithFields(map[string]interface{}{
		"status":      res.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
		apiErr := &APIError{
			StatusCode: res.StatusCode,
			Endpoint:   endpoint,
			Message:    errorMessage(res.StatusCode, snippet),
		}
		log.WithField("error", apiErr.Message).Info("api request rejected")
		return apiErr
	}
	log.Debug("api request")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrapf(err, "decode response from %s", path)
	}
	return nil
}

// errorMessage prefers the body's "error" field and falls back to a generic
// text carrying the status code.
func errorMessage(statusCode int, body []byte) string {
	var payload model.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Request failed (%d)", statusCode)
}
