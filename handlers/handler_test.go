package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/catalog"
	"food-delivery-admin/orderform"
	"food-delivery-admin/statemachine"

	"github.com/gin-gonic/gin"
)

func TestRespondError_Statuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(nil, nil, nil, nil, "TND", nil)

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"no token", fmt.Errorf("list users: %w", apiclient.ErrNotAuthenticated), http.StatusUnauthorized, "Please log in again"},
		{"expired token", &apiclient.APIError{Status: http.StatusUnauthorized, Message: "Token expired"}, http.StatusUnauthorized, "Token expired"},
		{"forbidden", &apiclient.APIError{Status: http.StatusForbidden}, http.StatusUnauthorized, "Please log in again"},
		{"backend 404", &apiclient.APIError{Status: http.StatusNotFound, Message: "Order not found"}, http.StatusNotFound, "Order not found"},
		{"backend 500", &apiclient.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway, "fallback"},
		{"unreachable", apiclient.ErrUnreachable, http.StatusServiceUnavailable, "fallback"},
		{"validation", &orderform.ValidationError{Field: "customer_id", Message: "customer_id is required"}, http.StatusBadRequest, "customer_id is required"},
		{"terminal", fmt.Errorf("%w: delivered", statemachine.ErrTerminal), http.StatusConflict, "Order is delivered or canceled and can no longer change status"},
		{"stale", catalog.ErrStale, http.StatusConflict, catalog.ErrStale.Error()},
		{"other", errors.New("boom"), http.StatusInternalServerError, "fallback"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		h.respondError(c, tc.err, "fallback")

		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if w.Code != tc.status || body["error"] != tc.msg {
			t.Fatalf("%s: got %d %q, want %d %q", tc.name, w.Code, body["error"], tc.status, tc.msg)
		}
	}
}
