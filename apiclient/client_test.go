package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-delivery-admin/models"

	"github.com/shopspring/decimal"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, staticToken(token))
}

func TestDo_SendsBearerToken(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}, "tok-123")

	if _, err := c.ListUsers(context.Background()); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", got)
	}
}

func TestLogin_IsPublic(t *testing.T) {
	var auth string
	var body models.LoginRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"token":"abc","user":{"id":"u1","firstname":"Ada","lastname":"Admin","email":"a@x.tn"}}`)
	}, "stale")

	res, err := c.Login(context.Background(), "a@x.tn", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth != "" {
		t.Fatalf("login sent Authorization %q", auth)
	}
	if body.Email != "a@x.tn" || body.Password != "secret" {
		t.Fatalf("body = %+v", body)
	}
	if res.Token != "abc" || res.User.FullName() != "Ada Admin" {
		t.Fatalf("response = %+v", res)
	}
}

func TestDo_ExtractsBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Token expired"}`)
	}, "expired")

	_, err := c.ListUsers(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Token expired" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if !IsUnauthorized(err) {
		t.Fatal("IsUnauthorized = false")
	}
	if MessageOr(err, "fallback") != "Token expired" {
		t.Fatalf("MessageOr = %q", MessageOr(err, "fallback"))
	}
}

func TestDo_ErrorWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>oops</html>`)
	}, "t")

	err := c.DeleteOrder(context.Background(), "o1")
	if err == nil || err.Error() != "Error 500" {
		t.Fatalf("err = %v", err)
	}
	if MessageOr(err, "Failed to delete order") != "Failed to delete order" {
		t.Fatal("expected fallback message")
	}
}

func TestDo_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil)
	_, err := c.ListOrders(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}

func TestListProducts_QueriesRestaurant(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/products" || r.URL.Query().Get("restaurant_id") != "r 1" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = io.WriteString(w, `[{"id":"p1","restaurant_id":"r 1","name":"Pizza","price":12.5,"available":true}]`)
	}, "t")

	got, err := c.ListProducts(context.Background(), "r 1")
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(got) != 1 || !got[0].Price.Equal(decimal.RequireFromString("12.5")) || got[0].Restaurant.ID != "r 1" {
		t.Fatalf("products = %+v", got)
	}
}

func TestUpdateOrderStatus_Patches(t *testing.T) {
	var method, path string
	var body models.StatusUpdate
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}, "t")

	if err := c.UpdateOrderStatus(context.Background(), "o1", models.StatusPreparing); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if method != http.MethodPatch || path != "/api/admin/orders/o1/status" || body.Status != models.StatusPreparing {
		t.Fatalf("got %s %s %+v", method, path, body)
	}
}

func TestCreateOrder_EncodesNullDriver(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = io.WriteString(w, `{"id":"o1","ref":"CMD-1","total_price":25,"status":"pending"}`)
	}, "t")

	order, err := c.CreateOrder(context.Background(), models.CreateOrderRequest{
		CustomerID:    "c1",
		RestaurantID:  "r1",
		PaymentMethod: models.PaymentCash,
		Items: []models.OrderLine{
			{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("10")},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if v, ok := raw["driver_id"]; !ok || v != nil {
		t.Fatalf("driver_id = %v (present=%v), want null", v, ok)
	}
	items := raw["items"].([]any)
	if items[0].(map[string]any)["price"] != float64(10) {
		t.Fatalf("price not sent as number: %v", items[0])
	}
	if !order.TotalPrice.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("total = %s", order.TotalPrice)
	}
}

func TestCreateRestaurant_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("folder") != "menus" {
			t.Errorf("folder = %q", r.URL.Query().Get("folder"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if r.FormValue("name") != "Chez Ali" || r.FormValue("category_id") != "c1" {
			t.Errorf("fields = %v", r.MultipartForm.Value)
		}
		if _, ok := r.MultipartForm.Value["phone"]; ok {
			t.Error("empty field was sent")
		}
		f, hdr, err := r.FormFile("restaurant_photo")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if hdr.Filename != "front.jpg" || string(b) != "JPEG" {
			t.Errorf("photo = %s %q", hdr.Filename, b)
		}
		_, _ = io.WriteString(w, `{"id":"r1","name":"Chez Ali","status":"active","category_id":{"id":"c1","name":"Pizza"}}`)
	}, "t")

	res, err := c.CreateRestaurant(context.Background(), models.RestaurantForm{
		Firstname: "Ali", Lastname: "B", Email: "ali@x.tn", Password: "secret1",
		Name: "Chez Ali", CategoryID: "c1",
	}, &Photo{Filename: "front.jpg", Content: strings.NewReader("JPEG")})
	if err != nil {
		t.Fatalf("CreateRestaurant: %v", err)
	}
	if res.Category.Value == nil || res.Category.Value.Name != "Pizza" {
		t.Fatalf("category not populated: %+v", res.Category)
	}
}

func TestDo_NoTokenSkipsRequest(t *testing.T) {
	hits := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = io.WriteString(w, `[]`)
	}, "")

	users, err := c.ListUsers(context.Background())
	if users != nil || !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("users=%v err=%v", users, err)
	}
	if hits != 0 {
		t.Fatalf("backend hit %d times", hits)
	}
}

func TestListEndpoints_ReturnDecodedRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/admin/orders":
			_, _ = io.WriteString(w, `[{"id":"o1","ref":"CMD-00001","status":"pending","total_price":25}]`)
		case "/api/admin/customer":
			_, _ = io.WriteString(w, `[{"id":"u1","firstname":"Mouna","role":"customer"},{"id":"u2","firstname":"Ali","role":"customer"}]`)
		default:
			_, _ = io.WriteString(w, `[{"id":"x1"}]`)
		}
	}, "t")
	ctx := context.Background()

	orders, err := c.ListOrders(ctx)
	if err != nil || len(orders) != 1 || orders[0].Ref != "CMD-00001" || !orders[0].TotalPrice.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("orders=%+v err=%v", orders, err)
	}
	customers, err := c.ListCustomers(ctx)
	if err != nil || len(customers) != 2 || customers[1].Firstname != "Ali" {
		t.Fatalf("customers=%+v err=%v", customers, err)
	}
	if cats, err := c.ListCategories(ctx); err != nil || len(cats) != 1 || cats[0].ID != "x1" {
		t.Fatalf("categories=%+v err=%v", cats, err)
	}
	if rs, err := c.ListRestaurants(ctx); err != nil || len(rs) != 1 {
		t.Fatalf("restaurants=%+v err=%v", rs, err)
	}
	if ds, err := c.ListDrivers(ctx); err != nil || len(ds) != 1 {
		t.Fatalf("drivers=%+v err=%v", ds, err)
	}
}
