package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/middleware"
)

// Deps is everything RegisterRoutes mounts.
type Deps struct {
	JWTSecret string
	// Firebase may be nil; the firebase sign-in route then answers 503.
	Firebase middleware.IDTokenVerifier

	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Reviews   *ReviewHandler
	Carts     *CartHandler
	Orders    *OrderHandler
	Customers *CustomerHandler
	Admins    *AdminHandler
	WS        *WSHandler
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(r *gin.Engine, d Deps) {
	authed := middleware.RequireAuth(d.JWTSecret)
	admin := middleware.RequireRoles(entity.RoleAdmin)

	v1 := r.Group("/api/v1")

	a := v1.Group("/auth")
	{
		a.POST("/register", d.Auth.Register())
		a.POST("/login", d.Auth.Login())
		a.POST("/refresh", d.Auth.Refresh())
		a.POST("/firebase", middleware.RequireFirebaseAuth(d.Firebase), d.Auth.FirebaseLogin())
		a.POST("/password-reset", d.Auth.RequestPasswordReset())
		a.POST("/password-reset/:uidb64/:token", d.Auth.ConfirmPasswordReset())
	}

	account := v1.Group("/account", authed)
	{
		account.GET("/profile", d.Auth.GetProfile())
		account.PUT("/profile", d.Auth.UpdateProfile())
		account.GET("/customer", d.Customers.GetProfile())
		account.PUT("/customer", d.Customers.UpdateProfile())
	}

	v1.GET("/users", authed, admin, d.Auth.ListUsers())

	store := v1.Group("/store")
	{
		store.GET("/products", d.Catalog.ListProducts())
		store.POST("/products", authed, admin, d.Catalog.CreateProduct())
		store.GET("/products/:id", d.Catalog.GetProduct())
		store.PATCH("/products/:id", authed, admin, d.Catalog.UpdateProduct())
		store.DELETE("/products/:id", authed, admin, d.Catalog.DeleteProduct())

		store.GET("/products/:id/images", d.Catalog.ListImages())
		store.POST("/products/:id/images", authed, admin, d.Catalog.UploadImage())
		store.GET("/products/:id/images/:image_id", d.Catalog.GetImage())
		store.PUT("/products/:id/images/:image_id", authed, admin, d.Catalog.ReplaceImage())
		store.DELETE("/products/:id/images/:image_id", authed, admin, d.Catalog.DeleteImage())

		store.GET("/products/:id/reviews", d.Reviews.List())
		store.POST("/products/:id/reviews", authed, d.Reviews.Create())
		store.GET("/products/:id/reviews/:review_id", d.Reviews.Get())
		store.PUT("/products/:id/reviews/:review_id", authed, d.Reviews.Update())
		store.PATCH("/products/:id/reviews/:review_id", authed, d.Reviews.Update())
		store.DELETE("/products/:id/reviews/:review_id", authed, d.Reviews.Delete())

		store.GET("/collections", d.Catalog.ListCollections())
		store.POST("/collections", authed, admin, d.Catalog.CreateCollection())
		store.GET("/collections/:id", d.Catalog.GetCollection())
		store.PUT("/collections/:id", authed, admin, d.Catalog.UpdateCollection())
		store.DELETE("/collections/:id", authed, admin, d.Catalog.DeleteCollection())

		store.POST("/carts", d.Carts.Create())
		store.GET("/carts/:id", d.Carts.Get())
		store.DELETE("/carts/:id", d.Carts.Delete())
		store.GET("/carts/:id/items", d.Carts.ListItems())
		store.POST("/carts/:id/items", d.Carts.AddItem())
		store.GET("/carts/:id/items/:item_id", d.Carts.GetItem())
		store.PATCH("/carts/:id/items/:item_id", d.Carts.UpdateItem())
		store.DELETE("/carts/:id/items/:item_id", d.Carts.DeleteItem())

		store.GET("/export/products", authed, admin, d.Catalog.ExportProducts())
	}

	orders := v1.Group("/orders", authed)
	{
		orders.POST("", d.Orders.Checkout())
		orders.GET("", d.Orders.ListOrders())
		orders.GET("/:id", d.Orders.GetOrder())
		orders.PATCH("/:id", admin, d.Orders.UpdatePaymentStatus())
		orders.DELETE("/:id", admin, d.Orders.DeleteOrder())
	}

	customers := v1.Group("/customers", authed, admin)
	{
		customers.GET("", d.Customers.ListCustomers())
		customers.GET("/:id", d.Customers.GetCustomer())
		customers.PUT("/:id", d.Customers.UpdateCustomer())
		customers.DELETE("/:id", d.Customers.DeleteCustomer())
	}

	v1.POST("/admins", authed, admin, d.Admins.RegisterAdmin())

	ws := v1.Group("/ws", authed)
	{
		ws.GET("/customer", d.WS.CustomerSocket())
		ws.GET("/admin", admin, d.WS.AdminSocket())
	}
}
