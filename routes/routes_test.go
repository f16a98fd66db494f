package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/catalog"
	"food-delivery-admin/deliveries"
	"food-delivery-admin/fakeapi"
	"food-delivery-admin/handlers"
	"food-delivery-admin/models"
	"food-delivery-admin/orderform"
	"food-delivery-admin/session"

	"github.com/gin-gonic/gin"
)

type console struct {
	engine  *gin.Engine
	backend *fakeapi.Server
	demo    fakeapi.Demo
	store   *session.Store
}

type expiredAuth struct{ backend *fakeapi.Server }

func (e expiredAuth) Login(_ context.Context, email, _ string) (*models.LoginResponse, error) {
	tok, err := e.backend.IssueToken("ghost", email, -time.Minute)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: tok, User: models.User{ID: "ghost", Email: email}}, nil
}

func newConsole(t *testing.T, expired bool) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend, err := fakeapi.OpenMemory([]byte("test-secret"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	if _, err := backend.SeedAdmin("Sami", "Admin", "admin@x.tn", "admin123"); err != nil {
		t.Fatal(err)
	}
	demo, err := backend.SeedDemo()
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(backend.Router())
	t.Cleanup(srv.Close)

	api := apiclient.New(srv.URL, 5*time.Second, nil)
	var auth session.Authenticator = api
	if expired {
		auth = expiredAuth{backend}
	}
	store, err := session.NewStore(auth, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	api.Tokens = store

	form := orderform.NewForm(catalog.NewLoader(api, nil), api, nil)
	h := handlers.New(store, api, form, deliveries.NewBoard(api, nil), "TND", nil)
	r := gin.New()
	SetupRoutes(r, h)
	return &console{engine: r, backend: backend, demo: demo, store: store}
}

func (c *console) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (c *console) login(t *testing.T) {
	t.Helper()
	w, body := c.do(t, http.MethodPost, "/login", gin.H{"email": "admin@x.tn", "password": "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %v", w.Code, body)
	}
}

func TestGuard_RedirectsToLogin(t *testing.T) {
	c := newConsole(t, false)
	w, _ := c.do(t, http.MethodGet, "/users", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/?redirect=%2Fusers" {
		t.Fatalf("got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	c := newConsole(t, false)
	w, body := c.do(t, http.MethodPost, "/login", gin.H{"email": "admin@x.tn", "password": "bad"})
	if w.Code != http.StatusUnauthorized || body["error"] != "Invalid email or password" {
		t.Fatalf("got %d %v", w.Code, body)
	}
	if c.store.Authenticated() || c.store.User() != nil {
		t.Fatal("failed login changed the session")
	}

	w, body = c.do(t, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK || body["error"] != "Invalid email or password" {
		t.Fatalf("login page: %d %v", w.Code, body)
	}
	c.do(t, http.MethodDelete, "/login/error", nil)
	if c.store.Error() != "" {
		t.Fatal("error not cleared")
	}
}

func TestLogin_RedirectsAndGuardsLoginPage(t *testing.T) {
	c := newConsole(t, false)
	w, body := c.do(t, http.MethodPost, "/login?redirect=/deliveries", gin.H{"email": "admin@x.tn", "password": "admin123"})
	if w.Code != http.StatusOK || body["redirect"] != "/deliveries" {
		t.Fatalf("got %d %v", w.Code, body)
	}
	w, _ = c.do(t, http.MethodGet, "/", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("login page while authenticated: %d", w.Code)
	}
	w, body = c.do(t, http.MethodGet, "/session", nil)
	if w.Code != http.StatusOK || body["expires_at"] == nil {
		t.Fatalf("session: %d %v", w.Code, body)
	}

	c.do(t, http.MethodPost, "/logout", nil)
	w, _ = c.do(t, http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("after logout: %d", w.Code)
	}
}

func TestUsers_ExpiredTokenShowsErrorAndNoTable(t *testing.T) {
	c := newConsole(t, true)
	c.login(t)

	w, body := c.do(t, http.MethodGet, "/users", nil)
	if w.Code != http.StatusUnauthorized || body["error"] != "Token expired" {
		t.Fatalf("got %d %v", w.Code, body)
	}
	if _, ok := body["users"]; ok {
		t.Fatal("users table populated despite failure")
	}
}

func TestUsers_RoleFilterAndPaging(t *testing.T) {
	c := newConsole(t, false)
	c.login(t)

	w, body := c.do(t, http.MethodGet, "/users?role=driver", nil)
	if w.Code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("got %d %v", w.Code, body)
	}
	w, body = c.do(t, http.MethodGet, "/users?entries=5&page=3", nil)
	if w.Code != http.StatusOK || body["page"] != float64(1) || body["per_page"] != float64(5) || body["count"] != float64(3) {
		t.Fatalf("got %d %v", w.Code, body)
	}
}

func TestOrderWorkflow(t *testing.T) {
	c := newConsole(t, false)
	c.login(t)
	d := c.demo

	w, body := c.do(t, http.MethodPost, "/deliveries/new/catalog", nil)
	if w.Code != http.StatusOK || body["warning"] != nil || len(body["restaurants"].([]any)) != 1 {
		t.Fatalf("catalog: %d %v", w.Code, body)
	}
	w, body = c.do(t, http.MethodPost, "/deliveries/new/restaurant", gin.H{"restaurant_id": d.RestaurantID})
	if w.Code != http.StatusOK || len(body["products"].([]any)) != 2 {
		t.Fatalf("select restaurant: %d %v", w.Code, body)
	}

	w, body = c.do(t, http.MethodPost, "/deliveries/new/submit", nil)
	if w.Code != http.StatusBadRequest || body["field"] != "customer_id" {
		t.Fatalf("empty submit: %d %v", w.Code, body)
	}

	c.do(t, http.MethodPost, "/deliveries/new/fields", gin.H{
		"customer_id":      d.CustomerID,
		"payment_method":   "cash",
		"delivery_street":  "1 Rue de Rome",
		"delivery_city":    "Tunis",
		"delivery_zipcode": "1001",
	})
	c.do(t, http.MethodPut, "/deliveries/new/items/0", gin.H{"product_id": d.ProductIDs[0], "quantity": 2})
	c.do(t, http.MethodPost, "/deliveries/new/items", nil)
	w, body = c.do(t, http.MethodPut, "/deliveries/new/items/1", gin.H{"product_id": d.ProductIDs[1]})
	if w.Code != http.StatusOK || body["total_display"] != "25.00 TND" {
		t.Fatalf("preview: %d %v", w.Code, body)
	}

	w, body = c.do(t, http.MethodPut, "/deliveries/new/items/1", gin.H{"quantity": 0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("quantity 0: %d %v", w.Code, body)
	}
	w, _ = c.do(t, http.MethodDelete, "/deliveries/new/items/7", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("remove out of range: %d", w.Code)
	}

	w, body = c.do(t, http.MethodPost, "/deliveries/new/submit", nil)
	if w.Code != http.StatusCreated || body["total"] != "25.00 TND" {
		t.Fatalf("submit: %d %v", w.Code, body)
	}
	orderID := body["order"].(map[string]any)["id"].(string)

	_, body = c.do(t, http.MethodGet, "/deliveries/new", nil)
	items := body["form"].(map[string]any)["items"].([]any)
	if len(items) != 1 || body["total_display"] != "0.00 TND" {
		t.Fatalf("form not reset: %v", body)
	}

	w, body = c.do(t, http.MethodGet, "/deliveries?search=mouna", nil)
	if w.Code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("list: %d %v", w.Code, body)
	}

	w, _ = c.do(t, http.MethodPatch, "/deliveries/"+orderID+"/status", gin.H{"status": "delivered"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("skip transition: %d", w.Code)
	}
	for _, st := range []string{"preparing", "on_the_way", "delivered"} {
		if w, body := c.do(t, http.MethodPatch, "/deliveries/"+orderID+"/status", gin.H{"status": st}); w.Code != http.StatusOK {
			t.Fatalf("-> %s: %d %v", st, w.Code, body)
		}
	}
	w, _ = c.do(t, http.MethodPatch, "/deliveries/"+orderID+"/status", gin.H{"status": "canceled"})
	if w.Code != http.StatusConflict {
		t.Fatalf("terminal: %d", w.Code)
	}

	w, body = c.do(t, http.MethodGet, "/deliveries/"+orderID, nil)
	if w.Code != http.StatusOK || body["editable"] != false || len(body["items"].([]any)) != 2 {
		t.Fatalf("detail: %d %v", w.Code, body)
	}

	w, body = c.do(t, http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusOK || body["total_revenue"] != "25.00 TND" {
		t.Fatalf("dashboard: %d %v", w.Code, body)
	}
}

func TestOrderForm_RemoveOnlyRow(t *testing.T) {
	c := newConsole(t, false)
	c.login(t)

	w, body := c.do(t, http.MethodDelete, "/deliveries/new/items/0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d %v", w.Code, body)
	}
	items := body["form"].(map[string]any)["items"].([]any)
	row := items[0].(map[string]any)
	if len(items) != 1 || row["product_id"] != "" || row["quantity"] != float64(1) || row["price"] != float64(0) {
		t.Fatalf("items = %v", items)
	}
}

func TestStateMachineIsPublic(t *testing.T) {
	c := newConsole(t, false)
	w, body := c.do(t, http.MethodGet, "/state-machine", nil)
	if w.Code != http.StatusOK || len(body["state_machine"].([]any)) != 6 || len(body["terminal_states"].([]any)) != 2 {
		t.Fatalf("got %d %v", w.Code, body)
	}
}
