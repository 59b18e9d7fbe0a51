package router

import (
	"foodRanking/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRankingRoutes(api *echo.Group, handler *rest.RankingHandler, authRequired echo.MiddlewareFunc) {
	ranking := api.Group("/ranking")

	ranking.GET("/top", handler.GetTopVendors)
	ranking.GET("/vendors/:vendorId", handler.GetVendorRanking)
	ranking.GET("/insights/:vendorId", handler.GetVendorInsights, authRequired)
}

func SetupRankingAdminRoutes(api *echo.Group, handler *rest.RankingAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/ranking", authRequired, adminOnly)

	admin.POST("/recompute", handler.RecomputeAll)
	admin.POST("/vendors/:vendorId/recompute", handler.RecomputeVendor)
	admin.GET("/stats", handler.GetStats)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.GET("/:id", ordersHandler.GetOrderByID)
	orders.PUT("/:id/delivered", ordersHandler.MarkDelivered)
}

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews", authRequired)
	reviews.POST("", handler.CreateReview)
	reviews.PUT("/:id", handler.UpdateReview)

	api.GET("/vendors/:vendorId/reviews", handler.ListVendorReviews)
}

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/health", handler.Health)
}
