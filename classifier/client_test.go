package classifier

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juruen/digitpad/sample"
)

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/predict", opts...)
	require.NoError(t, err)
	return c
}

func TestClassifyRequestShape(t *testing.T) {
	var got []float64
	h := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		body, err := ioutil.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte("3"))
	}
	c := newTestClient(t, http.HandlerFunc(h))

	s := make(sample.Sample, sample.Len)
	s[0] = 1
	digit, err := c.Classify(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 3, digit)
	require.Len(t, got, sample.Len)
	assert.Equal(t, 1.0, got[0])
}

func TestClassifyResponseForms(t *testing.T) {
	tests := []struct {
		body  string
		digit int
	}{
		{"7", 7},
		{" 0\n", 0},
		{`"9"`, 9},
		{`{"digit": 4}`, 4},
		{`{"prediction": 2, "confidence": 0.9}`, 2},
	}

	for _, tt := range tests {
		c := newTestClient(t, respond(http.StatusOK, tt.body))
		digit, err := c.Classify(context.Background(), make(sample.Sample, sample.Len))
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.digit, digit, tt.body)
	}
}

func TestClassifyMalformed(t *testing.T) {
	for _, body := range []string{"", "seven", "10", "-1", "3.5", `{"class": "3"}`, `{"digit": "x"}`, "[1]"} {
		c := newTestClient(t, respond(http.StatusOK, body))
		_, err := c.Classify(context.Background(), make(sample.Sample, sample.Len))
		require.Error(t, err, body)
		assert.Equal(t, ErrMalformedResponse, errors.Cause(err), body)
	}
}

func TestClassifyNon2xx(t *testing.T) {
	c := newTestClient(t, respond(http.StatusInternalServerError, "boom"))
	_, err := c.Classify(context.Background(), make(sample.Sample, sample.Len))
	require.Error(t, err)
	assert.Equal(t, ErrTransport, errors.Cause(err))
	assert.True(t, strings.Contains(err.Error(), "500"))
}

func TestClassifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, "1"))
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)
	_, err = c.Classify(context.Background(), make(sample.Sample, sample.Len))
	require.Error(t, err)
	assert.Equal(t, ErrTransport, errors.Cause(err))
}

func TestClassifyRejectsInvalidSample(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.Classify(context.Background(), sample.Sample{0.1})
	assert.Equal(t, sample.ErrLength, errors.Cause(err))
	assert.False(t, called)
}

func TestClassifyToken(t *testing.T) {
	const secret = "s3cr3t"
	h := func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "Bearer "))

		token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), &jwt.StandardClaims{},
			func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
		if assert.NoError(t, err) {
			assert.True(t, token.Valid)
			assert.Equal(t, "digitpad", token.Claims.(*jwt.StandardClaims).Issuer)
		}
		w.Write([]byte("8"))
	}
	c := newTestClient(t, http.HandlerFunc(h), WithTokenSecret(secret))

	digit, err := c.Classify(context.Background(), make(sample.Sample, sample.Len))
	require.NoError(t, err)
	assert.Equal(t, 8, digit)
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	assert.Error(t, err)
	_, err = NewClient("://bad")
	assert.Error(t, err)
}
