package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chemviz/internal/logger"
	"chemviz/internal/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4 << 10  // 4 KB kept from error replies
	maxJSONBody     = 16 << 20 // 16 MB
	maxReportBody   = 64 << 20 // 64 MB
	uploadFieldName = "file"
)

// Options configures a Client.
type Options struct {
	BaseURL    string        // e.g. http://127.0.0.1:8000/api
	AuthScheme string        // Authorization scheme; "Token" for DRF, "Bearer" otherwise
	Timeout    time.Duration // per request
	Transport  http.RoundTripper
}

// Client talks to the analysis backend. It holds no credential; every
// authenticated call takes the token explicitly.
type Client struct {
	base      *url.URL
	scheme    string
	timeout   time.Duration
	transport http.RoundTripper
	log       *logger.Logger
}

func New(opts Options, log *logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}
	scheme := opts.AuthScheme
	if scheme == "" {
		scheme = "Bearer"
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		base:      base,
		scheme:    scheme,
		timeout:   opts.Timeout,
		transport: transport,
		log:       logger.OrNop(log),
	}, nil
}

// endpoint joins path elements onto the base URL with the trailing slash
// the backend routes require.
func (c *Client) endpoint(parts ...string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(parts, "/") + "/"
	return u.String()
}

func (c *Client) anonymous() *http.Client {
	return &http.Client{Timeout: c.timeout, Transport: c.transport}
}

// authed returns an http.Client that stamps "<scheme> <token>" on every request.
func (c *Client) authed(token string) *http.Client {
	return &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: c.scheme}),
			Base:   c.transport,
		},
	}
}

// do sends req and turns non-2xx replies into *StatusError.
func (c *Client) do(hc *http.Client, op string, req *http.Request) (*http.Response, error) {
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.log.Debugw("backend_request_failed", "op", op, "request_id", reqID, "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.log.Debugw("backend_request", "op", op, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, token, op, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.do(c.authed(token), op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONBody)).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// Login exchanges username and password for a token. Any 4xx reply is
// reported as ErrAuthentication.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	const op = "login"
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("%s: encode body: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("login"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(c.anonymous(), op, req)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 {
			return "", fmt.Errorf("%w: %s", ErrAuthentication, se.Error())
		}
		return "", err
	}
	defer resp.Body.Close()

	var out loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONBody)).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", fmt.Errorf("%w: response carried no token", ErrAuthentication)
	}
	return out.Token, nil
}

// ListFiles returns the upload history, most recent first.
func (c *Client) ListFiles(ctx context.Context, token string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := c.getJSON(ctx, token, "list files", c.endpoint("files"), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UploadFile posts content as the multipart "file" field.
func (c *Client) UploadFile(ctx context.Context, token, name string, content io.Reader) (models.HistoryEntry, error) {
	const op = "upload file"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(uploadFieldName, name)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("%s: create form file: %w", op, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("%s: read %q: %w", op, name, err)
	}
	if err := mw.Close(); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("%s: close multipart: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("files"), &buf)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(c.authed(token), op, req)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	defer resp.Body.Close()

	var entry models.HistoryEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONBody)).Decode(&entry); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return entry, nil
}

// Analytics fetches and decodes the analytics of one history entry.
func (c *Client) Analytics(ctx context.Context, token string, id int64) (models.AnalyticsResult, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, token, "get analytics", c.endpoint("analytics", strconv.FormatInt(id, 10)), &raw); err != nil {
		return models.AnalyticsResult{}, err
	}
	res, err := DecodeAnalytics(raw)
	if err != nil {
		return models.AnalyticsResult{}, fmt.Errorf("get analytics %d: %w", id, err)
	}
	return res, nil
}

// Report downloads the PDF report of one history entry as opaque bytes.
func (c *Client) Report(ctx context.Context, token string, id int64) ([]byte, error) {
	const op = "get report"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("pdf", strconv.FormatInt(id, 10)), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.do(c.authed(token), op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReportBody+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	if len(data) > maxReportBody {
		return nil, fmt.Errorf("%s: report exceeds %d bytes", op, maxReportBody)
	}
	return data, nil
}
