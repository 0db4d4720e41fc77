package httpx

import (
	"fmt"
	"net/http"
)

type tokenSource interface {
	Token() string
}

// StaticToken is a token that never changes during the process lifetime.
type StaticToken string

func (t StaticToken) Token() string {
	return string(t)
}

// AuthBearerRoundTripper sets the Authorization header on every outgoing
// request. Unauthorized responses are returned as is: the remote APIs we call
// issue long-lived keys, so there is nothing to refresh.
type AuthBearerRoundTripper struct {
	next   http.RoundTripper
	tokens tokenSource
}

func NewAuthBearerRoundTripper(
	next http.RoundTripper,
	tokens tokenSource,
) AuthBearerRoundTripper {
	return AuthBearerRoundTripper{
		next:   next,
		tokens: tokens,
	}
}

func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+rt.tokens.Token())

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}

// APITokenRoundTripper passes the token as a query parameter.
type APITokenRoundTripper struct {
	next      http.RoundTripper
	tokens    tokenSource
	parameter string
}

func NewAPITokenRoundTripper(
	next http.RoundTripper,
	parameter string,
	tokens tokenSource,
) APITokenRoundTripper {
	return APITokenRoundTripper{
		next:      next,
		tokens:    tokens,
		parameter: parameter,
	}
}

func (rt APITokenRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	query := req.URL.Query()
	query.Set(rt.parameter, rt.tokens.Token())
	req.URL.RawQuery = query.Encode()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
