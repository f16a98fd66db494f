package apiclient

import (
	"context"
	"net/http"

	"food-delivery-admin/models"
)

// Login posts credentials. It is the only public call.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	req, err := jsonRequest(http.MethodPost, "/api/admin/login", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	req.public = true
	var out models.LoginResponse
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
