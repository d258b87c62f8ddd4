// Package bref is a client for the basketball-reference player pages:
// the alphabetical player index, per-player profiles and per-season
// game logs. Page structure is pinned by the fixtures in testdata/.
package bref

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"brefstats/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lib/bref")

// ErrUnexpectedLayout reports that a page fetched fine but no longer
// has the structure the parsers were written against.
var ErrUnexpectedLayout = fmt.Errorf("unexpected page layout")

const defaultBaseUrl = "https://www.basketball-reference.com"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	delay    time.Duration
	lastPage time.Time
}

type ClientOptions struct {
	// defaults to the real reference site
	BaseUrl string
	// gap enforced between consecutive page fetches. Zero means
	// politeDelay whenever BaseUrl points at the real site (the site
	// bans aggressive scrapers) and no delay otherwise, so tests
	// against local fixture servers run unthrottled.
	RequestDelay time.Duration
}

const politeDelay = time.Second * 3

func NewClient(opts ClientOptions) (*Client, error) {
	rawUrl := opts.BaseUrl
	if rawUrl == "" {
		rawUrl = defaultBaseUrl
	}
	baseUrl, err := url.Parse(rawUrl)
	if err != nil {
		return nil, err
	}
	if opts.RequestDelay == 0 && strings.HasSuffix(baseUrl.Hostname(), "basketball-reference.com") {
		opts.RequestDelay = politeDelay
	}

	client := resty.New()
	client.SetBaseURL(rawUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "bref/http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		delay:   opts.RequestDelay,
	}, nil
}

// requests are issued strictly one at a time with a gap in between,
// the client is not safe for concurrent use
func (c *Client) getDocument(ctx context.Context, path string) (*goquery.Document, error) {
	if c.delay > 0 && !c.lastPage.IsZero() {
		if wait := c.delay - time.Since(c.lastPage); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	c.lastPage = time.Now()
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("GET %s: status %d", path, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func statValue(row *goquery.Selection, stat string) string {
	return strings.TrimSpace(row.Find(fmt.Sprintf("td[data-stat=%s]", stat)).First().Text())
}
