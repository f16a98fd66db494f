package apiclient

import (
	"context"
	"net/http"

	"food-delivery-admin/models"
)

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/user", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/user/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, in models.CreateUserRequest) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/user", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, in models.UpdateUserRequest) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPut, "/api/admin/user/"+escape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes any account, customers included.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/user/"+escape(id), nil, nil)
}

func (c *Client) ListCustomers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/customer", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCustomer creates an account with the customer role.
func (c *Client) CreateCustomer(ctx context.Context, in models.CreateUserRequest) (*models.User, error) {
	in.Role = models.RoleCustomer
	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/customer", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
