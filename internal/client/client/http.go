package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/common"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
	"github.com/dmitrijs2005/idkeeper/internal/netx"
	"github.com/google/uuid"
)

// DefaultTimeout bounds every request when no other timeout is configured.
const DefaultTimeout = 15 * time.Second

// SessionSource is the part of the session store the transport needs: read
// the current token, and drop it when the server rejects it.
type SessionSource interface {
	Get() models.Session
	Invalidate(ctx context.Context, token string) (bool, error)
}

type requestOptions struct {
	anonymous       bool
	bearer          string
	explicitBearer  bool
	credentialCheck bool
	// rejections, when set, are the only 401 messages that mean a wrong
	// password; any other 401 is about the session token.
	rejections []string
}

// invalidCredentials reports whether a 401 carrying msg rejects the checked
// secret rather than the session.
func (o requestOptions) invalidCredentials(msg string) bool {
	if o.explicitBearer {
		return true
	}
	if !o.credentialCheck {
		return false
	}
	if len(o.rejections) == 0 {
		return true
	}
	for _, r := range o.rejections {
		if strings.EqualFold(strings.TrimSpace(msg), r) {
			return true
		}
	}
	return false
}

// RequestOption adjusts how a single request is authenticated and classified.
type RequestOption func(*requestOptions)

// Anonymous sends the request without the session token.
func Anonymous() RequestOption {
	return func(o *requestOptions) { o.anonymous = true }
}

// WithBearer sends token instead of the session token. A 401 then rejects
// that token: it is reported as ErrInvalidCredentials and the session is
// left alone.
func WithBearer(token string) RequestOption {
	return func(o *requestOptions) {
		o.bearer = token
		o.explicitBearer = true
	}
}

// CredentialCheck marks an endpoint that validates a password: 401 becomes
// ErrInvalidCredentials and the session is kept. For endpoints that also
// require a session, pass the messages the service uses for a wrong
// password; a 401 with any other message still ends the session.
func CredentialCheck(rejections ...string) RequestOption {
	return func(o *requestOptions) {
		o.credentialCheck = true
		o.rejections = rejections
	}
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	sessions SessionSource
	log      logging.Logger
	newID    func() string
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the uniform per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewHTTPClient creates a client for the service rooted at baseURL
// (e.g. "http://127.0.0.1:5000/api").
func NewHTTPClient(baseURL string, sessions SessionSource, log logging.Logger, opts ...Option) (*HTTPClient, error) {
	if err := netx.ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}
	c := &HTTPClient{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: DefaultTimeout},
		sessions: sessions,
		log:      log.With("component", "transport"),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Send performs one request. body, when non-nil, is encoded as JSON; a 2xx
// response body is decoded into out when out is non-nil. Failures are
// returned as *RequestError. Send never retries.
func (c *HTTPClient) Send(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Kind: ErrValidation, Message: "cannot encode request body", Err: err}
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, netx.JoinURL(c.baseURL, path), payload)
	if err != nil {
		return &RequestError{Kind: ErrValidation, Message: "cannot build request", Err: err}
	}

	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := c.tokenFor(ro)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	log := c.log.With("request_id", reqID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "timeout", netx.IsTimeout(err))
		return &RequestError{Kind: ErrNetwork, Err: err}
	}

	data, err := netx.ReadBody(resp)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return &RequestError{Kind: ErrNetwork, Status: resp.StatusCode, Err: err}
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			log.Error(ctx, "malformed response body", "status", resp.StatusCode, "error", err)
			return &RequestError{Kind: ErrServer, Status: resp.StatusCode, Message: "malformed response", Err: err}
		}
		return nil
	}

	msg := serverMessage(data)
	rerr := &RequestError{
		Kind:    classify(resp.StatusCode, ro.invalidCredentials(msg)),
		Status:  resp.StatusCode,
		Message: msg,
	}

	if errors.Is(rerr.Kind, ErrUnauthenticated) && !ro.explicitBearer && token != "" {
		c.invalidate(ctx, log, token)
	}

	log.Info(ctx, "request rejected", "status", resp.StatusCode, "kind", rerr.Kind.Error())
	return rerr
}

func (c *HTTPClient) tokenFor(ro requestOptions) string {
	switch {
	case ro.explicitBearer:
		return ro.bearer
	case ro.anonymous || c.sessions == nil:
		return ""
	default:
		return c.sessions.Get().Token
	}
}

// invalidate drops the rejected token. It runs even if the caller has since
// given up on ctx, so a dead token never lingers.
func (c *HTTPClient) invalidate(ctx context.Context, log logging.Logger, token string) {
	cleared, err := c.sessions.Invalidate(context.WithoutCancel(ctx), token)
	if err != nil {
		log.Error(ctx, "clearing rejected session failed", "error", err)
		return
	}
	if cleared {
		log.Warn(ctx, "session token rejected, session cleared")
	}
}

// serverMessage extracts the human-readable text of an error body.
func serverMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	text := strings.TrimSpace(string(data))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}

// decodeFailure wraps a response that parsed as JSON but not into the
// expected shape.
func decodeFailure(what string, err error) error {
	return &RequestError{Kind: ErrServer, Message: fmt.Sprintf("malformed %s response", what), Err: err}
}
