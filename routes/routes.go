package routes

import (
	"food-delivery-admin/handlers"
	"food-delivery-admin/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	r.GET("/", middleware.RedirectIfAuthenticated(h.Session, "/dashboard"), h.LoginPage)
	r.POST("/login", h.Login)
	r.DELETE("/login/error", h.ClearError)
	r.GET("/health", handlers.Health)
	r.GET("/state-machine", handlers.GetStateMachineInfo)

	// ── Operator routes ────────────────────────────────────────────
	auth := r.Group("/")
	auth.Use(middleware.SessionRequired(h.Session))
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.GetSession)
		auth.GET("/dashboard", h.Dashboard)

		// Accounts
		auth.GET("/users", h.ListUsers)
		auth.GET("/users/:id", h.GetUser)
		auth.POST("/users", h.CreateUser)
		auth.PUT("/users/:id", h.UpdateUser)
		auth.DELETE("/users/:id", h.DeleteUser)

		auth.GET("/customers", h.ListCustomers)
		auth.POST("/customers", h.CreateCustomer)

		auth.GET("/drivers", h.ListDrivers)
		auth.GET("/drivers/:id", h.GetDriver)
		auth.POST("/drivers", h.CreateDriver)
		auth.PUT("/drivers/:id", h.UpdateDriver)
		auth.DELETE("/drivers/:id", h.DeleteDriver)

		// Stores and menus
		auth.GET("/restaurants", h.ListRestaurants)
		auth.GET("/restaurants/:id", h.GetRestaurant)
		auth.POST("/restaurants", h.CreateRestaurant)
		auth.PUT("/restaurants/:id", h.UpdateRestaurant)
		auth.DELETE("/restaurants/:id", h.DeleteRestaurant)

		auth.GET("/categories", h.ListCategories)
		auth.POST("/categories", h.CreateCategory)
		auth.PUT("/categories/:id", h.UpdateCategory)
		auth.DELETE("/categories/:id", h.DeleteCategory)

		auth.GET("/products", h.ListProducts)
		auth.POST("/products", h.CreateProduct)
		auth.PUT("/products/:id", h.UpdateProduct)
		auth.DELETE("/products/:id", h.DeleteProduct)

		// Order creation
		auth.GET("/deliveries/new", h.GetOrderForm)
		auth.POST("/deliveries/new/catalog", h.LoadOrderCatalog)
		auth.POST("/deliveries/new/restaurant", h.SelectOrderRestaurant)
		auth.POST("/deliveries/new/fields", h.SetOrderFields)
		auth.POST("/deliveries/new/items", h.AddOrderItem)
		auth.PUT("/deliveries/new/items/:index", h.UpdateOrderItem)
		auth.DELETE("/deliveries/new/items/:index", h.RemoveOrderItem)
		auth.POST("/deliveries/new/submit", h.SubmitOrder)

		// Orders
		auth.GET("/deliveries", h.ListDeliveries)
		auth.GET("/deliveries/:id", h.GetDelivery)
		auth.DELETE("/deliveries/:id", h.DeleteDelivery)
		auth.PATCH("/deliveries/:id/status", h.ChangeDeliveryStatus)
	}
}
