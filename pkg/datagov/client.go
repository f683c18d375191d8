// Package datagov is a client for the data.gov.in Open Government Data
// resource API that publishes daily mandi arrival prices.
package datagov

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/sells-group/mandi-advisor/internal/resilience"
)

const (
	defaultBaseURL = "https://api.data.gov.in/resource"
	// DefaultResourceID is the "current daily price of various commodities
	// from various markets" resource.
	DefaultResourceID = "9ef84268-d588-465a-a308-a864a43d0070"
	defaultLimit      = 100
)

// ArrivalDateLayout is the dd/mm/yyyy format of the arrival_date field.
const ArrivalDateLayout = "02/01/2006"

// Query selects records. Filters map field names (state, district, market,
// commodity) to exact values.
type Query struct {
	Filters map[string]string
	Limit   int
	Offset  int
}

// Record is one published price row. Prices are kept as the API's strings.
type Record struct {
	State       string
	District    string
	Market      string
	Commodity   string
	Variety     string
	Grade       string
	ArrivalDate string
	MinPrice    string
	MaxPrice    string
	ModalPrice  string
}

// Date parses ArrivalDate, tolerating JSON-escaped slashes.
func (r Record) Date() (time.Time, error) {
	s := strings.ReplaceAll(strings.TrimSpace(r.ArrivalDate), `\/`, "/")
	t, err := time.Parse(ArrivalDateLayout, s)
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "datagov: parse arrival date %q", r.ArrivalDate)
	}
	return t, nil
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
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

// WithRateLimit caps requests per second.
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

// Client queries a single data.gov.in resource.
type Client struct {
	apiKey     string
	resourceID string
	baseURL    string
	http       *http.Client
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
}

// NewClient creates a client for the given resource. An empty resourceID
// selects DefaultResourceID.
func NewClient(apiKey, resourceID string, opts ...Option) *Client {
	if resourceID == "" {
		resourceID = DefaultResourceID
	}
	c := &Client{
		apiKey:     apiKey,
		resourceID: resourceID,
		baseURL:    defaultBaseURL,
		http:       &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(5, 5),
		retry:      resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.retry.OnRetry == nil {
		c.retry.OnRetry = resilience.RetryLogger("datagov", "records")
	}
	return c
}

// Records fetches one page of records matching q.
func (c *Client) Records(ctx context.Context, q Query) ([]Record, error) {
	u := c.buildURL(q)
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]Record, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "datagov: rate limit wait")
		}
		return c.fetch(ctx, u)
	})
}

func (c *Client) buildURL(q Query) string {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(max(q.Offset, 0)))

	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := q.Filters[k]; v != "" {
			params.Set("filters["+k+"]", v)
		}
	}

	return c.baseURL + "/" + url.PathEscape(c.resourceID) + "?" + params.Encode()
}

func (c *Client) fetch(ctx context.Context, u string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "datagov: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "datagov: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "datagov: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("datagov: unexpected status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, eris.New("datagov: response is not JSON")
	}
	return parseRecords(gjson.GetBytes(body, "records")), nil
}

func parseRecords(arr gjson.Result) []Record {
	var out []Record
	arr.ForEach(func(_, v gjson.Result) bool {
		out = append(out, Record{
			State:       v.Get("state").String(),
			District:    v.Get("district").String(),
			Market:      v.Get("market").String(),
			Commodity:   v.Get("commodity").String(),
			Variety:     v.Get("variety").String(),
			Grade:       v.Get("grade").String(),
			ArrivalDate: v.Get("arrival_date").String(),
			MinPrice:    v.Get("min_price").String(),
			MaxPrice:    v.Get("max_price").String(),
			ModalPrice:  v.Get("modal_price").String(),
		})
		return true
	})
	return out
}
