package httpserver

import (
	"log"
	"net/http"

	catalogsvc "vibecommerce/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "Failed to fetch products")
			return
		}

		out := make([]productResponse, 0, len(products))
		for _, p := range products {
			out = append(out, toProductResponse(p))
		}
		c.JSON(http.StatusOK, out)
	}
}
