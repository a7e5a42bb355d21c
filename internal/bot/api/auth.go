package api

import (
	"context"
	"encoding/json"
)

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Login exchanges credentials for a bearer token and stores it on the
// session. Search works without it; cart and chat persistence require it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	body, err := c.do(ctx, "POST", "/api/auth/login", nil, payload)
	if err != nil {
		return err
	}
	return c.storeToken(body)
}

// Register creates an account and stores the issued token on the session.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	payload := map[string]string{"name": name, "email": email, "password": password}
	body, err := c.do(ctx, "POST", "/api/auth/register", nil, payload)
	if err != nil {
		return err
	}
	return c.storeToken(body)
}

func (c *Client) storeToken(body []byte) error {
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &CallError{Kind: FailureUnknown, Message: MsgUnknown, Err: err}
	}
	if resp.Token == "" {
		return &CallError{Kind: FailureUnknown, Message: MsgUnknown}
	}
	c.session.SetToken(resp.Token)
	return nil
}
