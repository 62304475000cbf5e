package schoolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
)

// user-facing texts, matching what the backend's own clients show
const (
	loginFallback    = "Login failed. Please try again."
	badFormatMessage = "Invalid response format from server"
)

// Client talks to the school REST backend. Every call is a single attempt:
// no retry, no backoff and deliberately no timeout beyond the caller's
// context; a failure surfaces immediately as an *Error.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ session.Authenticator = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    new(http.Client),
	}
}

// Login exchanges credentials for a session; it is the only unauthenticated
// call. Responses missing the token or the user record are rejected.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp struct {
		Token string        `json:"token"`
		User  *session.User `json:"user"`
	}
	if err := c.request(ctx, "", http.MethodPost, "/api/auth/login", body, &resp, loginFallback); err != nil {
		return session.Session{}, err
	}
	if resp.Token == "" || resp.User == nil {
		return session.Session{}, &Error{Message: badFormatMessage, fallback: loginFallback}
	}
	return session.Session{Token: resp.Token, User: *resp.User}, nil
}

// Directory returns the school API surface bound to the given bearer token.
func (c *Client) Directory(token string) school.Directory {
	return &directory{c: c, token: token}
}

// request runs one API call: bearer header when a token is bound, JSON body
// when one is given, and the response body decoded as JSON regardless of
// status code (the backend reports errors as JSON too).
func (c *Client) request(ctx context.Context, token, method, path string, body, out interface{}, fallback string) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshalling request body")
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{fallback: fallback, cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, fallback: fallback, cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{StatusCode: resp.StatusCode, Message: serverMessage(data), fallback: fallback}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{StatusCode: resp.StatusCode, fallback: fallback, cause: err}
		}
	}
	return nil
}

// serverMessage extracts the backend's error text; it comes as either a
// "message" or an "error" field.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
