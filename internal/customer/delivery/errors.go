package delivery

import (
	"net/http"

	"favorites-api/internal/customer/domain"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "internal server error"

// respondError maps a use-case error to a status. Infrastructure faults are
// attached to the gin context for the error log and hidden from the client.
func respondError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindProductNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.KindCustomerAlreadyExists, domain.KindProductAlreadyFavorited:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}

func respondCustomerNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
}
