package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"

	"github.com/juruen/digitpad/log"
	"github.com/juruen/digitpad/sample"
)

const tokenLifetime = time.Minute

type Client struct {
	url    string
	client *http.Client
	secret []byte
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

// WithTokenSecret makes the client send an HS256 bearer token signed with
// secret. An empty secret sends no Authorization header.
func WithTokenSecret(secret string) Option {
	return func(cl *Client) {
		cl.secret = []byte(secret)
	}
}

func NewClient(rawURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}

	c := &Client{url: u.String(), client: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify posts s as a JSON array and parses the predicted digit.
func (c *Client) Classify(ctx context.Context, s sample.Sample) (int, error) {
	if err := s.Validate(); err != nil {
		return -1, err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return -1, errors.Wrap(err, "encode sample")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return -1, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	if len(c.secret) > 0 {
		token, err := c.token()
		if err != nil {
			return -1, errors.Wrap(err, "sign token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Trace.Printf("classify: posting %d bytes to %s", len(data), c.url)

	res, err := c.client.Do(req)
	if err != nil {
		return -1, errors.Wrapf(ErrTransport, "send request: %v", err)
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return -1, errors.Wrapf(ErrTransport, "read response: %v", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return -1, errors.Wrapf(ErrTransport, "status %d, response: %s", res.StatusCode, string(body))
	}

	return ParseDigit(body)
}

func (c *Client) token() (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Issuer:    "digitpad",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}
