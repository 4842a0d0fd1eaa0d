package networking

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rafabd1/LiteFinder/output"
	"github.com/rafabd1/LiteFinder/utils"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (compatible; LiteFinder)"

	// maxBodySize caps how much of a response is read into memory.
	maxBodySize = 50 << 20
)

// Client fetches script content with a fixed number of attempts.
type Client struct {
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	userAgent  string
	headers    map[string]string
	logger     *output.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client that gives each attempt timeout seconds and
// tries at most maxRetries times, waiting retryDelay in between.
func NewClient(timeout int, maxRetries int, retryDelay time.Duration) *Client {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if retryDelay < 0 {
		retryDelay = 0
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{},
			},
		},
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		userAgent:  DefaultUserAgent,
		headers:    make(map[string]string),
		sleep:      sleepContext,
	}
}

func (c *Client) SetLogger(logger *output.Logger) {
	c.logger = logger
}

func (c *Client) SetInsecureSkipVerify(skip bool) {
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.TLSClientConfig.InsecureSkipVerify = skip //nolint:gosec // opt-in via --insecure
	}
}

func (c *Client) SetRequestHeader(name, value string) {
	c.headers[name] = value
}

func (c *Client) SetUserAgent(userAgent string) {
	if userAgent != "" {
		c.userAgent = userAgent
	}
}

/*
   Fetches url and returns its body as text. Network errors, timeouts, error
   statuses and binary bodies are retried up to the configured limit; an
   empty body ends the attempts at once.
*/
func (c *Client) GetJSContent(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		content, err := c.fetchOnce(ctx, url)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !utils.IsTemporaryError(err) || attempt == c.maxRetries {
			break
		}

		if c.logger != nil {
			c.logger.Warning("Attempt %d/%d for %s failed: %v", attempt, c.maxRetries, url, err)
		}
		if err := c.sleep(ctx, c.retryDelay); err != nil {
			lastErr = err
			break
		}
	}

	return "", utils.NewError(utils.NetworkError,
		fmt.Sprintf("failed to fetch %s after %d attempt(s)", url, c.maxRetries), lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", utils.NewError(utils.ConfigError, "invalid request", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		appErr := utils.NewError(utils.NetworkError, fmt.Sprintf("unexpected status %s", resp.Status), nil)
		appErr.StatusCode = resp.StatusCode
		return "", appErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	if len(body) == 0 {
		return "", utils.ErrEmptyContent
	}
	if !isText(body) {
		return "", utils.ErrNotText
	}

	return string(body), nil
}

// isText accepts bodies that sniff as text or are valid UTF-8 without NULs.
func isText(body []byte) bool {
	if strings.HasPrefix(http.DetectContentType(body), "text/") {
		return true
	}
	return utf8.Valid(body) && !strings.ContainsRune(string(body), 0)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
