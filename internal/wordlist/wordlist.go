package wordlist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"gopkg.in/yaml.v3"
)

// defaultMaxBytes caps the size of a fetched list.
const defaultMaxBytes = 4 << 20

type options struct {
	client   *http.Client
	retries  uint64
	backoff  time.Duration
	maxBytes int64
}

// Option configures Fetch.
type Option func(*options)

// WithHTTPClient sets the client used for the request.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithRetries sets how many times a transient failure is retried.
func WithRetries(n uint64) Option {
	return func(o *options) { o.retries = n }
}

// WithBackoff sets the base delay of the exponential backoff.
func WithBackoff(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.backoff = d
		}
	}
}

// WithMaxBytes sets the largest list Fetch accepts.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// Fetch downloads a newline separated list of words.
// Network failures and 5xx answers are retried; the final error wraps
// ErrFetch or ErrStatus.
func Fetch(ctx context.Context, url string, opts ...Option) ([]string, error) {
	o := options{
		client:   &http.Client{Timeout: 10 * time.Second},
		retries:  2,
		backoff:  200 * time.Millisecond,
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var words []string
	backoff := retry.WithMaxRetries(o.retries, retry.NewExponential(o.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFetch, err)
		}

		resp, err := o.client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %w", ErrFetch, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			err := fmt.Errorf("%w: %s", ErrStatus, resp.Status)
			if resp.StatusCode >= http.StatusInternalServerError {
				return retry.RetryableError(err)
			}
			return err
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, o.maxBytes+1))
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: reading body: %w", ErrFetch, err))
		}
		if int64(len(body)) > o.maxBytes {
			return fmt.Errorf("%w: list too large (over %d bytes)", ErrFetch, o.maxBytes)
		}

		words = Split(string(body))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Load reads a word list from disk. Files ending in .yaml or .yml hold a
// YAML sequence of strings, anything else one word per line.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var words []string
		if err := yaml.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		return words, nil
	default:
		return Split(string(data)), nil
	}
}

// Split breaks text into lines, dropping carriage returns and blank lines.
func Split(text string) []string {
	lines := strings.Split(text, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		words = append(words, line)
	}
	return words
}
