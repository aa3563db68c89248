package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"favorites-api/internal/customer/delivery"
	"favorites-api/internal/customer/repository"
	"favorites-api/internal/customer/usecase"
	"favorites-api/pkg/config"
	"favorites-api/pkg/metrics"
	"favorites-api/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies are the wired use cases and infrastructure the HTTP layer needs.
type Dependencies struct {
	Customers    delivery.CustomerUsecases
	LoadCustomer usecase.LoadCustomerByToken
	GetProduct   usecase.GetProduct
	ListProducts usecase.ListProducts
	ErrorLogs    repository.ErrorLogRepository
	IDValidator  delivery.IDValidator
	Logger       *logrus.Logger
}

type Handler struct {
	customerHandler *delivery.CustomerHandler
	productHandler  *delivery.ProductHandler
	loadCustomer    usecase.LoadCustomerByToken
	errorLogs       repository.ErrorLogRepository
	idValidator     delivery.IDValidator
	authLimiter     *ratelimit.RateLimiter
	logger          *logrus.Logger
	config          *config.Config
}

func NewHandler(deps Dependencies, cfg *config.Config) *Handler {
	return &Handler{
		customerHandler: delivery.NewCustomerHandler(deps.Customers),
		productHandler:  delivery.NewProductHandler(deps.GetProduct, deps.ListProducts),
		loadCustomer:    deps.LoadCustomer,
		errorLogs:       deps.ErrorLogs,
		idValidator:     deps.IDValidator,
		authLimiter:     ratelimit.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst, deps.Logger),
		logger:          deps.Logger,
		config:          cfg,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	gin.SetMode(h.config.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(delivery.RequestLogger(h.logger))
	r.Use(metrics.Middleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(delivery.ErrorLogMiddleware(h.errorLogs, h.logger))
	r.Use(delivery.RecoverToError())

	SetupRoutes(r, h)
	return r
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (h *Handler) Start(ctx context.Context, addr string) error {
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	h.authLimiter.StartCleanup(10*time.Minute, stopCleanup)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
