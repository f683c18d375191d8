// Package tts synthesizes speech through the Google Translate text-to-speech
// endpoint and returns it as base64-encoded MP3.
package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/mandi-advisor/internal/resilience"
)

const (
	defaultBaseURL = "https://translate.google.com"
	defaultLang    = "mr"

	// MaxChunkRunes is the longest text the endpoint accepts per request.
	MaxChunkRunes = 100
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the default endpoint host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithLang sets the spoken language code.
func WithLang(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.lang = lang
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps chunk requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// WithRetry overrides the retry policy.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// Client fetches speech audio chunk by chunk.
type Client struct {
	baseURL string
	lang    string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewClient creates a speech client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		lang:    defaultLang,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(5, 5),
		retry:   resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.retry.OnRetry == nil {
		c.retry.OnRetry = resilience.RetryLogger("tts", "chunk")
	}
	return c
}

// Synthesize returns base64 MP3 audio for text. Empty text yields "".
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	chunks := Chunks(text, MaxChunkRunes)
	if len(chunks) == 0 {
		return "", nil
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "tts: rate limit wait")
			}
			return c.fetchChunk(ctx, chunk, i, len(chunks))
		})
		if err != nil {
			return "", eris.Wrapf(err, "tts: chunk %d of %d", i+1, len(chunks))
		}
		audio.Write(data)
	}
	return base64.StdEncoding.EncodeToString(audio.Bytes()), nil
}

func (c *Client) fetchChunk(ctx context.Context, text string, idx, total int) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", c.lang)
	params.Set("q", text)
	params.Set("total", strconv.Itoa(total))
	params.Set("idx", strconv.Itoa(idx))
	params.Set("textlen", strconv.Itoa(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_tts?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "tts: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "tts: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "tts: read response")
	}
	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("tts: unexpected status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}
	if len(body) == 0 {
		return nil, eris.New("tts: empty audio")
	}
	return body, nil
}
