// Package photos lists popular photos from a 500px style photo API.
package photos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	stdnet "pixgrid/std/net"
)

// Photo is one entry of the photo list.
type Photo struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	Name     string `json:"name"`
	User     User   `json:"user"`
}

type User struct {
	Fullname string `json:"fullname"`
}

// Response is the body of GET /v1/photos.
type Response struct {
	Photos []Photo `json:"photos"`
}

// Service lists photos.
type Service interface {
	PopularPhotos(ctx context.Context) ([]Photo, error)
}

// Query selects the photo list.
type Query struct {
	Feature   string
	Sort      string
	ImageSize int
	PerPage   int
}

// DefaultQuery is the list the photo grid shows.
var DefaultQuery = Query{Feature: "popular", Sort: "rating", ImageSize: 4, PerPage: 99}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("feature", q.Feature)
	v.Set("sort", q.Sort)
	v.Set("image_size", strconv.Itoa(q.ImageSize))
	v.Set("rpp", strconv.Itoa(q.PerPage))
	return v
}

// Fetcher is the HTTP GET the client is built on.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (body []byte, contentType string, err error)
}

// Client talks to the photo API over HTTP.
type Client struct {
	Endpoint    string
	ConsumerKey string
	Query       Query
	Fetcher     Fetcher
}

// NewClient returns a client for endpoint using a fresh HTTP client with timeout.
func NewClient(endpoint, consumerKey string, timeout time.Duration) *Client {
	return &Client{
		Endpoint:    endpoint,
		ConsumerKey: consumerKey,
		Query:       DefaultQuery,
		Fetcher:     stdnet.NewClient(timeout),
	}
}

// ErrNoConsumerKey is returned when the API is called without a key.
var ErrNoConsumerKey = errors.New("photos: no consumer key configured")

// PopularPhotos implements Service.
func (c *Client) PopularPhotos(ctx context.Context) ([]Photo, error) {
	if c.ConsumerKey == "" {
		return nil, ErrNoConsumerKey
	}
	params := c.Query.values()
	params.Set("consumer_key", c.ConsumerKey)
	rawURL, err := stdnet.WithQuery(stdnet.ResolveURL(c.Endpoint, "/v1/photos"), params)
	if err != nil {
		return nil, err
	}
	body, _, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return Decode(body)
}

// Decode parses a photo list response body.
func Decode(body []byte) ([]Photo, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding photo list: %w", err)
	}
	return resp.Photos, nil
}

// File serves the photo list from a saved response body.
type File string

func (f File) PopularPhotos(ctx context.Context) ([]Photo, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("reading photo list: %w", err)
	}
	return Decode(data)
}

// Cached remembers the first successful list of the wrapped service for the
// life of the process. Failures are not remembered.
type Cached struct {
	Service Service

	mu     sync.Mutex
	photos []Photo
	ok     bool
}

func (c *Cached) PopularPhotos(ctx context.Context) ([]Photo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ok {
		return c.photos, nil
	}
	photos, err := c.Service.PopularPhotos(ctx)
	if err != nil {
		return nil, err
	}
	c.photos, c.ok = photos, true
	return photos, nil
}

// Reset forgets the remembered list.
func (c *Cached) Reset() {
	c.mu.Lock()
	c.photos, c.ok = nil, false
	c.mu.Unlock()
}
