package api

import (
	"net/http"

	"favorites-api/internal/customer/delivery"
	"favorites-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Signup and login (rate limited per client)
		api.POST("/signup", h.authLimiter.Middleware(), h.customerHandler.SignUp)
		api.POST("/login", h.authLimiter.Middleware(), h.customerHandler.Login)

		// Catalog routes (public)
		products := api.Group("/products")
		{
			products.GET("", h.productHandler.ListProducts)
			products.GET("/:productId", h.productHandler.GetProduct)
		}

		// Customer routes (owner only)
		customers := api.Group("/customers/:customerId")
		customers.Use(delivery.AuthMiddleware(h.loadCustomer), delivery.ValidateParam("customerId", h.idValidator))
		{
			customers.GET("", h.customerHandler.GetCustomer)
			customers.PUT("", h.customerHandler.UpdateCustomer)
			customers.DELETE("", h.customerHandler.DeleteCustomer)
			customers.PUT("/product/:productId", h.customerHandler.AddFavoriteProduct)
			customers.DELETE("/product/:productId", h.customerHandler.RemoveFavoriteProduct)
		}
	}
}
