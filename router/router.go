// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixhub-app/fixhub/api/auth"
	"github.com/fixhub-app/fixhub/api/controller"
	"github.com/fixhub-app/fixhub/api/middleware"
	"github.com/fixhub-app/fixhub/api/realtime"
)

func SetupRouter(
	controllers *controller.Controllers,
	authService *auth.Service,
	hub *realtime.Hub,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	// Public surface: login, ticket tracking, storefront reads, chat,
	// signed upload sink.
	controllers.Auth.RegisterRoutes(api)
	controllers.Ticket.RegisterPublicRoutes(api)
	controllers.Product.RegisterPublicRoutes(api)
	controllers.SecondHand.RegisterPublicRoutes(api)
	controllers.Chat.RegisterRoutes(api)
	controllers.Upload.RegisterPublicRoutes(api)

	// Everything past the gate runs with an admin decision in context.
	gated := api.Group("")
	gated.Use(middleware.AdminGate(authService))

	controllers.Ticket.RegisterRoutes(gated)
	controllers.Customer.RegisterRoutes(gated)
	controllers.Order.RegisterRoutes(gated)
	controllers.Product.RegisterRoutes(gated)
	controllers.SecondHand.RegisterRoutes(gated)
	controllers.Dashboard.RegisterRoutes(gated)
	controllers.Admin.RegisterRoutes(gated)
	controllers.Upload.RegisterRoutes(gated)

	router.GET("/ws/changes", gin.WrapH(hub))

	return router
}
