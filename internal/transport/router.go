package transport

import (
	"net/http"

	"agrolink-be/internal/middleware"
	"agrolink-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *AuthHandler
	Address      *AddressHandler
	Product      *ProductHandler
	Order        *OrderHandler
	Subscription *SubscriptionHandler
}

func NewRouter(env string, h Handlers) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Auth())
	router.Use(middleware.Logging())
	router.Use(middleware.RateLimit())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.GET("/me", middleware.RequireAuth(), h.Auth.Me)
		}

		addresses := v1.Group("/addresses", middleware.RequireAuth())
		{
			addresses.POST("", h.Address.Create)
			addresses.GET("", h.Address.List)
			addresses.PUT("/:id/default", h.Address.SetDefault)
			addresses.DELETE("/:id", h.Address.Delete)
		}

		products := v1.Group("/products")
		{
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)

			producer := products.Group("", middleware.RequireAuth(),
				middleware.RequireRole(user.RoleProducer, user.RoleAdmin))
			{
				producer.POST("", h.Product.Create)
				producer.PUT("/:id", h.Product.Update)
				producer.DELETE("/:id", h.Product.Delete)
			}
		}

		orders := v1.Group("/orders", middleware.RequireAuth())
		{
			orders.POST("", middleware.RequireRole(user.RoleConsumer), h.Order.Create)
			orders.GET("", h.Order.List)
			orders.GET("/:id", h.Order.Get)
			orders.PATCH("/:id", middleware.RequireRole(user.RoleConsumer), h.Order.Manage)
		}

		items := v1.Group("/order-items", middleware.RequireAuth(),
			middleware.RequireRole(user.RoleProducer))
		{
			items.GET("", h.Order.ListProducerItems)
			items.PUT("/:id/decision", h.Order.DecideItem)
		}

		subs := v1.Group("/subscriptions", middleware.RequireAuth(),
			middleware.RequireRole(user.RoleConsumer))
		{
			subs.POST("", h.Subscription.Create)
			subs.GET("", h.Subscription.List)
			subs.GET("/:id", h.Subscription.Get)
			subs.PATCH("/:id", h.Subscription.Manage)
		}
	}

	return router
}
