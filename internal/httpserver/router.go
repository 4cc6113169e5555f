package httpserver

import (
	"errors"
	"log"
	"net/http"

	"vibecommerce/internal/domain"
	cartsvc "vibecommerce/internal/service/cart"
	catalogsvc "vibecommerce/internal/service/catalog"
	checkoutsvc "vibecommerce/internal/service/checkout"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Deps carries the services the handlers depend on.
type Deps struct {
	CatalogSvc  *catalogsvc.Service
	CartSvc     *cartsvc.Service
	CheckoutSvc *checkoutsvc.Service
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, cache *redis.Client, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Vibe Commerce Backend API"})
	})
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, cache))

	api := router.Group("/api")
	api.GET("/products", listProductsHandler(deps.CatalogSvc, logger))
	api.GET("/cart", getCartHandler(deps.CartSvc, logger))
	api.POST("/cart", addItemHandler(deps.CartSvc, logger))
	api.PUT("/cart/:id", setQuantityHandler(deps.CartSvc, logger))
	api.DELETE("/cart/:id", removeItemHandler(deps.CartSvc, logger))
	api.POST("/checkout", checkoutHandler(deps.CheckoutSvc, logger))

	return router
}

// respondError maps service errors onto the API's error payload: validation
// failures are client errors, unknown entities are 404, anything else is the
// store misbehaving.
func respondError(c *gin.Context, logger *log.Logger, err error, fallback string) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
