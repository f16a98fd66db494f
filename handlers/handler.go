// Package handlers implements the console's HTTP surface. Every handler
// reads or mutates backend state through the API client and never keeps
// authoritative copies.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/catalog"
	"food-delivery-admin/deliveries"
	"food-delivery-admin/listing"
	"food-delivery-admin/orderform"
	"food-delivery-admin/session"
	"food-delivery-admin/statemachine"

	"github.com/gin-gonic/gin"
)

// Handler carries the console's collaborators.
type Handler struct {
	Session  *session.Store
	API      *apiclient.Client
	Form     *orderform.Form
	Board    *deliveries.Board
	Currency string
	Logger   *slog.Logger
}

func New(store *session.Store, api *apiclient.Client, form *orderform.Form, board *deliveries.Board, currency string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Session: store, API: api, Form: form, Board: board, Currency: currency, Logger: logger}
}

// respondError maps an error onto a status and {"error": msg}. fallback is
// shown when the error carries no message meant for the operator.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status, msg := http.StatusInternalServerError, fallback

	var ve *orderform.ValidationError
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &ve):
		status, msg = http.StatusBadRequest, ve.Message
	case errors.Is(err, orderform.ErrInvalidQuantity), errors.Is(err, orderform.ErrIndexOutOfRange):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, statemachine.ErrTerminal):
		status, msg = http.StatusConflict, "Order is delivered or canceled and can no longer change status"
	case errors.Is(err, statemachine.ErrInvalidTransition):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, catalog.ErrStale):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, apiclient.ErrNotAuthenticated):
		status, msg = http.StatusUnauthorized, "Please log in again"
	case apiclient.IsUnauthorized(err):
		status, msg = http.StatusUnauthorized, apiclient.MessageOr(err, "Please log in again")
	case errors.As(err, &apiErr):
		status = apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		msg = apiclient.MessageOr(err, fallback)
	case errors.Is(err, apiclient.ErrUnreachable):
		status = http.StatusServiceUnavailable
	}

	h.Logger.Warn("request failed", "rid", c.GetString("rid"), "path", c.FullPath(), "status", status, "error", err)
	c.JSON(status, gin.H{"error": msg})
}

// listQuery is the shared table state: search box, filter, page size, page.
type listQuery struct {
	Search  string `form:"search"`
	Role    string `form:"role"`
	Status  string `form:"status"`
	Entries int    `form:"entries"`
	Page    int    `form:"page"`
}

func bindListQuery(c *gin.Context) (listQuery, bool) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	return q, true
}

func page[T any](p listing.Page[T], key string) gin.H {
	return gin.H{
		"count":       p.Total,
		"page":        p.Page,
		"per_page":    p.PerPage,
		"total_pages": p.TotalPages,
		key:           p.Entries,
	}
}

func paramIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line item index"})
		return 0, false
	}
	return i, true
}

// photo opens the uploaded file in field, if any. The caller closes it.
func photo(c *gin.Context, field string) (*apiclient.Photo, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &apiclient.Photo{Field: field, Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}
