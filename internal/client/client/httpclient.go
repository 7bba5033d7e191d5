package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type signupRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Signup(ctx context.Context, email string, password []byte, firstName, lastName string) (*AuthResponse, error) {
	req := signupRequest{Email: email, Password: string(password)}
	if firstName != "" {
		req.FirstName = &firstName
	}
	if lastName != "" {
		req.LastName = &lastName
	}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp, false); err != nil {
		return nil, err
	}
	c.setToken(resp.AccessToken)
	return &resp, nil
}

func (c *HTTPClient) Signin(ctx context.Context, email string, password []byte) (*AuthResponse, error) {
	var resp AuthResponse
	req := signinRequest{Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", req, &resp, false); err != nil {
		return nil, err
	}
	c.setToken(resp.AccessToken)
	return &resp, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*Account, error) {
	var resp struct {
		Account Account `json:"account"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, false)
}

// Logout forgets the access token. Tokens are stateless, so nothing is sent
// to the server.
func (c *HTTPClient) Logout() {
	c.setToken("")
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	c.accessToken = t
	c.mu.Unlock()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, authorized bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		token := c.token()
		if token == "" {
			return ErrUnauthorized
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Message string       `json:"message"`
		Details []FieldError `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Details = payload.Details
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.Join(ErrUnauthorized, apiErr)
	}
	return apiErr
}
