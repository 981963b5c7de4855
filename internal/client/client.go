// Package client talks to the showcase REST API: whole-collection reads,
// multipart writes and login.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/utils"
)

// APIError is the non-2xx answer of the server. It is always wrapped in a
// *utils.AppError carrying the same code.
type APIError struct {
	Status  int
	Code    utils.Code
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// FetchObserver is told about the outcome of every collection read.
type FetchObserver interface {
	ObserveFetch(kind string, err error)
}

type Client struct {
	baseURL string
	hc      *http.Client
	token   string
	log     *logrus.Logger
	obs     FetchObserver
}

type Option func(*Client)

// WithTimeout bounds every request. Without it requests have no deadline
// beyond their context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithObserver(o FetchObserver) Option {
	return func(c *Client) { c.obs = o }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		log:     logrus.New(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Token() string { return c.token }

func (c *Client) SetToken(token string) { c.token = token }

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and keeps it for writes.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "Client.Login"

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid credentials payload", err)
	}

	var res LoginResult
	if err := c.do(ctx, op, http.MethodPost, "/auth/login", bytes.NewReader(body), "application/json", false, &res); err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

// Delete removes one record. It does not ask for confirmation.
func (c *Client) Delete(ctx context.Context, kind models.Kind, id string) error {
	const op = "Client.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	return c.do(ctx, op, http.MethodDelete, recordPath(kind, id), nil, "", true, nil)
}

// recordPath is the path of one record; id is escaped as a single segment.
func recordPath(kind models.Kind, id string) string {
	return kind.Path() + "/" + url.PathEscape(id)
}

// UploadLog lists the server's upload audit rows, optionally for one record.
func (c *Client) UploadLog(ctx context.Context, recordID string) ([]models.UploadRecord, error) {
	const op = "Client.UploadLog"

	path := "/admin/uploads"
	if recordID != "" {
		path += "?" + url.Values{"record_id": {recordID}}.Encode()
	}
	var res struct {
		Uploads []models.UploadRecord `json:"uploads"`
	}
	if err := c.do(ctx, op, http.MethodGet, path, nil, "", true, &res); err != nil {
		return nil, err
	}
	return res.Uploads, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, auth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "invalid request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		if c.token == "" {
			return utils.E(utils.CodeUnauthorized, op, "not logged in", nil)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return utils.E(utils.CodeTimeout, op, "request timed out", err)
		}
		return utils.E(utils.CodeUnavailable, op, "server unreachable", err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		return utils.E(apiErr.Code, op, apiErr.Message, apiErr)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return utils.E(utils.CodeInternal, op, "invalid response body", err)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	e := &APIError{Status: resp.StatusCode, Code: utils.CodeForStatus(resp.StatusCode)}

	var body struct {
		Code    utils.Code `json:"code"`
		Message string     `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil {
		if body.Code != "" {
			e.Code = body.Code
		}
		e.Message = body.Message
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}
