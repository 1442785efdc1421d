package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"movieticket/pkg/logger"
)

// envelope is the uniform response wrapper the movie ticket API uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// File is an uploaded file forwarded to the upstream API as a multipart part.
type File struct {
	Field       string
	Name        string
	ContentType string
	Content     io.Reader
}

// Client is the transport boundary to the movie ticket REST API.
// It decodes the response envelope, logs every failure, and re-raises
// the original error unchanged to the caller. No retries, no caching.
type Client struct {
	baseURL string
	prefix  string
	http    *http.Client
	log     *logger.Logger
}

func New(baseURL, prefix string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  prefix,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body, dest interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, dest)
}

func (c *Client) Put(ctx context.Context, path string, query url.Values, body, dest interface{}) error {
	return c.do(ctx, http.MethodPut, path, query, body, dest)
}

func (c *Client) Delete(ctx context.Context, path string, dest interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, path, dest)
}

// DoMultipart sends form fields plus an optional file as multipart form data.
// Used by movie create/update when an image is attached.
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields map[string]string, file *File, dest interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %s: %w", key, err)
		}
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Name))
		header.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("copy file content: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(req, path, dest)
}

func (c *Client) send(req *http.Request, path string, dest interface{}) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.LogUpstreamError(req.Context(), req.Method, path, 0, err.Error())
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.LogUpstreamError(req.Context(), req.Method, path, resp.StatusCode, err.Error())
		return fmt.Errorf("read upstream response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body (e.g. a proxy error page) falls through to the
		// generic message below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		message := env.Message
		if message == "" {
			message = GenericErrorMessage
		}
		c.log.LogUpstreamError(req.Context(), req.Method, path, resp.StatusCode, message)
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	c.log.LogUpstreamRequest(req.Context(), req.Method, path, resp.StatusCode, time.Since(start))

	if dest != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("decode upstream payload: %w", err)
		}
	}

	return nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + c.prefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
