package router

import (
	"fmt"
	"strings"

	"github.com/dealbees/voucher-api/internal/cache"
	"github.com/dealbees/voucher-api/internal/config"
	publichandlers "github.com/dealbees/voucher-api/internal/http/handlers/public"
	"github.com/dealbees/voucher-api/internal/http/response"
	"github.com/dealbees/voucher-api/internal/logger"
	"github.com/dealbees/voucher-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with the middleware chain and the
// /api/v1 route groups.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "db"
	}
	redisClient := cache.Client()
	orderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order", redisPrefix),
		WindowSeconds: cfg.Security.OrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OrderRateLimit.MaxAttempts,
		Message:       "too many order attempts, please try again later",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.UpsertCartItem)
			user.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", RateLimitMiddleware(redisClient, orderRule, KeyByUser), publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-guid/:guid", publicHandler.GetOrderByGUID)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	return r
}
