package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// MaxErrorBodyLen bounds the upstream body embedded into a StatusError.
const MaxErrorBodyLen = 500

// ErrMalformedResponse marks a 2xx response whose body could not be decoded.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned for every non-2xx upstream response.
type StatusError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}

// Client is a thin JSON REST client bound to a base URL. Authentication,
// logging and metrics are layered in through the http.Client transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(
	baseURL string,
	httpClient *http.Client,
) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c Client) Get(
	ctx context.Context,
	endpoint string,
	query url.Values,
	dest any,
) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	return c.httpRequest(ctx, http.MethodGet, endpoint, http.NoBody, dest)
}

func (c Client) Post(
	ctx context.Context,
	endpoint string,
	request any,
	dest any,
) error {
	b, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return c.httpRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(b), dest)
}

func (c Client) httpRequest(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	payload io.Reader,
	dest any,
) error {
	req, err := http.NewRequestWithContext(ctx, httpMethod, c.baseURL+"/"+strings.TrimPrefix(endpoint, "/"), payload)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if httpMethod == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck

		return &StatusError{
			Method:     httpMethod,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncateRunes(string(body), MaxErrorBodyLen),
		}
	}

	if dest == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w: %w", ErrMalformedResponse, err)
	}

	return nil
}

func truncateRunes(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	return string(r[:maxLen])
}
