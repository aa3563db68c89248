package delivery

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"favorites-api/internal/customer/repository"
	"favorites-api/internal/customer/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const customerIDKey = "customerID"

// IDValidator reports whether a path id has the store's id format.
type IDValidator func(id string) bool

func ObjectIDValidator(id string) bool {
	return primitive.IsValidObjectID(id)
}

func UUIDValidator(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// AuthMiddleware lets a request through only when the bearer token belongs to
// the customer named in the path.
func AuthMiddleware(loadCustomer usecase.LoadCustomerByToken) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) < 2 || parts[1] == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			c.Abort()
			return
		}

		customer, err := loadCustomer.LoadCustomer(c.Request.Context(), parts[1])
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
			c.Abort()
			return
		}
		if customer == nil || customer.ID != c.Param("customerId") {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			c.Abort()
			return
		}

		c.Set(customerIDKey, customer.ID)
		c.Next()
	}
}

// ValidateParam rejects path params that fail valid with 400.
func ValidateParam(name string, valid IDValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !valid(c.Param(name)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid param: " + name})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ErrorLogMiddleware persists the errors of every 5xx response.
func ErrorLogMiddleware(errorLogs repository.ErrorLogRepository, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError || len(c.Errors) == 0 {
			return
		}

		stack := fmt.Sprintf("%s %s: %s", c.Request.Method, c.FullPath(), c.Errors.String())
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Error(c.Errors.String())

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
		defer cancel()
		if err := errorLogs.LogError(ctx, stack); err != nil {
			logger.WithError(err).Error("failed to persist error log")
		}
	}
}

// RecoverToError turns a handler panic into a 500 and records it on c.Errors,
// so it must run inside ErrorLogMiddleware.
func RecoverToError() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}).Info("request handled")
	}
}
