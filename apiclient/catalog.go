package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"food-delivery-admin/models"
)

// ── Categories ──────────────────────────────────────────────────────────────

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/categorystore", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/categorystore/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in models.CategoryForm) (*models.Category, error) {
	var out models.Category
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/categorystore", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in models.CategoryForm) (*models.Category, error) {
	var out models.Category
	if err := c.doJSON(ctx, http.MethodPut, "/api/admin/categorystore/"+escape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/categorystore/"+escape(id), nil, nil)
}

// ── Restaurants ─────────────────────────────────────────────────────────────

func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/restaurant", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var out models.Restaurant
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/restaurant/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRestaurant uploads the store form; the backend files the photo under
// the "menus" folder.
func (c *Client) CreateRestaurant(ctx context.Context, in models.RestaurantForm, photo *Photo) (*models.Restaurant, error) {
	photo = withField(photo, "restaurant_photo")
	req, err := multipartRequest(http.MethodPost, "/api/admin/restaurant", url.Values{"folder": {"menus"}}, in.Values(), photo)
	if err != nil {
		return nil, err
	}
	var out models.Restaurant
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRestaurant(ctx context.Context, id string, in models.RestaurantForm, photo *Photo) (*models.Restaurant, error) {
	photo = withField(photo, "restaurant_photo")
	req, err := multipartRequest(http.MethodPut, "/api/admin/restaurant/"+escape(id), nil, in.Values(), photo)
	if err != nil {
		return nil, err
	}
	var out models.Restaurant
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/restaurant/"+escape(id), nil, nil)
}

// ── Drivers ─────────────────────────────────────────────────────────────────

func (c *Client) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var out []models.Driver
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/driver", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	var out models.Driver
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/driver/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDriver(ctx context.Context, in models.DriverForm, photo *Photo) (*models.Driver, error) {
	photo = withField(photo, "driver_photo")
	req, err := multipartRequest(http.MethodPost, "/api/admin/driver", nil, in.Values(), photo)
	if err != nil {
		return nil, err
	}
	var out models.Driver
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDriver(ctx context.Context, id string, in models.DriverForm, photo *Photo) (*models.Driver, error) {
	photo = withField(photo, "driver_photo")
	req, err := multipartRequest(http.MethodPut, "/api/admin/driver/"+escape(id), nil, in.Values(), photo)
	if err != nil {
		return nil, err
	}
	var out models.Driver
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDriver(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/driver/"+escape(id), nil, nil)
}

// ── Products ────────────────────────────────────────────────────────────────

// ListProducts returns the products of one restaurant.
func (c *Client) ListProducts(ctx context.Context, restaurantID string) ([]models.Product, error) {
	var out []models.Product
	req := request{
		method: http.MethodGet,
		path:   "/api/admin/products",
		query:  url.Values{"restaurant_id": {restaurantID}},
	}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductForm) (*models.Product, error) {
	var out models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductForm) (*models.Product, error) {
	var out models.Product
	if err := c.doJSON(ctx, http.MethodPut, "/api/admin/products/"+escape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/products/"+escape(id), nil, nil)
}

func withField(p *Photo, field string) *Photo {
	if p == nil {
		return nil
	}
	cp := *p
	if cp.Field == "" {
		cp.Field = field
	}
	return &cp
}
