package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/omkar-28/authd/internal/client/models"
)

const apiPrefix = "/api/auth"

type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	return c.userCall(ctx, http.MethodPost, "/signup", body)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, code string) (*models.User, error) {
	return c.userCall(ctx, http.MethodPost, "/verify-email", map[string]string{"code": code})
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	return c.userCall(ctx, http.MethodPost, "/login", body)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, "/logout", nil)
	return err
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.call(ctx, http.MethodPost, "/forgot-password", map[string]string{"email": email})
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, password string) error {
	path := "/reset-password/" + url.PathEscape(token)
	_, err := c.call(ctx, http.MethodPost, path, map[string]string{"password": password})
	return err
}

func (c *HTTPClient) CheckAuth(ctx context.Context) (*models.User, error) {
	return c.userCall(ctx, http.MethodGet, "/check-auth", nil)
}

func (c *HTTPClient) userCall(ctx context.Context, method, path string, body any) (*models.User, error) {
	env, err := c.call(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("response without user")
	}
	return env.User, nil
}

func (c *HTTPClient) call(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}
