// internal/platform/auth.go
package platform

import "context"

// Auth endpoints. Login, Register and RefreshToken are the only calls issued
// without a bearer token.

// Login exchanges admin credentials for a token pair and profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/admin/auth/login", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Register creates an admin account (gated by the shared secret key) and
// signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/admin/auth/register", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RefreshToken trades a refresh token for a fresh session.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{refreshToken}

	var s Session
	if err := c.post(ctx, "/admin/auth/refresh-token", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Profile fetches the signed-in admin's record.
func (c *Client) Profile(ctx context.Context) (*Admin, error) {
	var a Admin
	if _, err := c.get(ctx, "/admin/auth/profile", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
