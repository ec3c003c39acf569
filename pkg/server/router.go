package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Bars   *BarServer
	Beers  *BeerServer
	Orders *OrderServer
	Users  *UserServer
}

// NewRouter wires every handler. Reads are public; writes and the current-user endpoint run
// behind authenticate.
func NewRouter(handlers Handlers, authenticate gin.HandlerFunc, metrics *Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), metrics.Middleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	users := router.Group("/users")
	users.POST("/register", handlers.Users.Register)
	users.POST("/login", handlers.Users.Login)
	users.DELETE("/me", authenticate, handlers.Users.DeleteCurrentUser)

	bars := router.Group("/bars")
	bars.GET("", handlers.Bars.ListBars)
	bars.GET("/:bar_id", handlers.Bars.GetBar)
	bars.GET("/:bar_id/beers", handlers.Beers.ListBeers)
	bars.GET("/:bar_id/degree", handlers.Beers.AverageDegree)
	bars.GET("/:bar_id/orders", handlers.Orders.ListOrders)
	bars.POST("", authenticate, handlers.Bars.AddBar)
	bars.PUT("/:bar_id", authenticate, handlers.Bars.UpdateBar)
	bars.DELETE("/:bar_id", authenticate, handlers.Bars.DeleteBar)
	bars.POST("/:bar_id/beers", authenticate, handlers.Beers.AddBeer)
	bars.POST("/:bar_id/orders", authenticate, handlers.Orders.AddOrder)

	beers := router.Group("/beers")
	beers.GET("/lookup", handlers.Beers.LookupBeers)
	beers.GET("/:beer_id", handlers.Beers.GetBeer)
	beers.PUT("/:beer_id", authenticate, handlers.Beers.UpdateBeer)
	beers.DELETE("/:beer_id", authenticate, handlers.Beers.DeleteBeer)

	orders := router.Group("/orders")
	orders.GET("/:order_id", handlers.Orders.GetOrder)
	orders.GET("/:order_id/beers", handlers.Orders.ListOrderBeers)
	orders.PUT("/:order_id", authenticate, handlers.Orders.UpdateOrder)
	orders.DELETE("/:order_id", authenticate, handlers.Orders.DeleteOrder)
	orders.POST("/:order_id/beers/:beer_id", authenticate, handlers.Orders.AddBeerToOrder)
	orders.DELETE("/:order_id/beers/:beer_id", authenticate, handlers.Orders.RemoveBeerFromOrder)

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
