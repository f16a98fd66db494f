// Package fakeapi is an in-process implementation of the marketplace
// backend's admin API. The console's tests run against it, and
// cmd/fakeapi serves it for local development.
package fakeapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"food-delivery-admin/config"
	"food-delivery-admin/middleware"
	"food-delivery-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Server struct {
	db     *gorm.DB
	secret []byte
	logger *slog.Logger
}

// Open migrates the backend tables in the sqlite database at dsn.
func Open(dsn string, secret []byte, logger *slog.Logger) (*Server, error) {
	db, err := config.OpenDB(dsn, tables()...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{db: db, secret: secret, logger: logger}, nil
}

// OpenMemory opens a private in-memory database.
func OpenMemory(secret []byte, logger *slog.Logger) (*Server, error) {
	s, err := Open("file:"+uuid.NewString()+"?mode=memory&cache=shared", secret, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return s, nil
}

func (s *Server) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedAdmin creates an administrator able to log in through
// /api/admin/login.
func (s *Server) SeedAdmin(firstname, lastname, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := userRecord{Firstname: firstname, Lastname: lastname, Email: email, PasswordHash: string(hash), IsAdmin: true}
	if err := s.db.Create(&u).Error; err != nil {
		return models.User{}, fmt.Errorf("seed admin: %w", err)
	}
	return u.model(), nil
}

// IssueToken signs a token for userID. A negative ttl gives an expired one.
func (s *Server) IssueToken(userID, email string, ttl time.Duration) (string, error) {
	return middleware.GenerateToken(s.secret, userID, email, ttl)
}

// Router builds the gin engine serving /api/admin.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(s.logger))

	r.POST("/api/admin/login", s.login)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(s.secret), s.adminOnly())
	{
		admin.GET("/user", s.listUsers)
		admin.GET("/user/:id", s.getUser)
		admin.POST("/user", s.createUser)
		admin.PUT("/user/:id", s.updateUser)
		admin.DELETE("/user/:id", s.deleteUser)

		admin.GET("/customer", s.listCustomers)
		admin.POST("/customer", s.createCustomer)

		admin.GET("/categorystore", s.listCategories)
		admin.GET("/categorystore/:id", s.getCategory)
		admin.POST("/categorystore", s.createCategory)
		admin.PUT("/categorystore/:id", s.updateCategory)
		admin.DELETE("/categorystore/:id", s.deleteCategory)

		admin.GET("/restaurant", s.listRestaurants)
		admin.GET("/restaurant/:id", s.getRestaurant)
		admin.POST("/restaurant", s.createRestaurant)
		admin.PUT("/restaurant/:id", s.updateRestaurant)
		admin.DELETE("/restaurant/:id", s.deleteRestaurant)

		admin.GET("/driver", s.listDrivers)
		admin.GET("/driver/:id", s.getDriver)
		admin.POST("/driver", s.createDriver)
		admin.PUT("/driver/:id", s.updateDriver)
		admin.DELETE("/driver/:id", s.deleteDriver)

		admin.GET("/products", s.listProducts)
		admin.POST("/products", s.createProduct)
		admin.PUT("/products/:id", s.updateProduct)
		admin.DELETE("/products/:id", s.deleteProduct)

		admin.POST("/orders", s.createOrder)
		admin.GET("/orders", s.listOrders)
		admin.GET("/orders/:id", s.getOrder)
		admin.DELETE("/orders/:id", s.deleteOrder)
		admin.PATCH("/orders/:id/status", s.updateOrderStatus)
	}
	return r
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// respondLookup answers a failed First() with 404 or 500.
func respondLookup(c *gin.Context, err error, what string) {
	if notFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + what})
}
