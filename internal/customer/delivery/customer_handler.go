package delivery

import (
	"net/http"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/dto"
	"favorites-api/internal/customer/usecase"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves signup, login and the customer-owned routes.
type CustomerHandler struct {
	addCustomer           usecase.AddCustomer
	authentication        usecase.Authentication
	getCustomer           usecase.GetCustomer
	updateCustomer        usecase.UpdateCustomer
	deleteCustomer        usecase.DeleteCustomer
	addFavoriteProduct    usecase.AddFavoriteProduct
	removeFavoriteProduct usecase.RemoveFavoriteProduct
}

type CustomerUsecases struct {
	AddCustomer           usecase.AddCustomer
	Authentication        usecase.Authentication
	GetCustomer           usecase.GetCustomer
	UpdateCustomer        usecase.UpdateCustomer
	DeleteCustomer        usecase.DeleteCustomer
	AddFavoriteProduct    usecase.AddFavoriteProduct
	RemoveFavoriteProduct usecase.RemoveFavoriteProduct
}

func NewCustomerHandler(u CustomerUsecases) *CustomerHandler {
	return &CustomerHandler{
		addCustomer:           u.AddCustomer,
		authentication:        u.Authentication,
		getCustomer:           u.GetCustomer,
		updateCustomer:        u.UpdateCustomer,
		deleteCustomer:        u.DeleteCustomer,
		addFavoriteProduct:    u.AddFavoriteProduct,
		removeFavoriteProduct: u.RemoveFavoriteProduct,
	}
}

// SignUp registers a customer
// POST /api/signup
func (h *CustomerHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.addCustomer.Add(c.Request.Context(), domain.AddCustomerParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Login issues a new access token for an existing email
// POST /api/login
func (h *CustomerHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.authentication.Auth(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}

// GetCustomer
// GET /api/customers/:customerId
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.getCustomer.GetCustomerByID(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		respondCustomerNotFound(c)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer replaces name and email
// PUT /api/customers/:customerId
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.updateCustomer.UpdateCustomer(c.Request.Context(), domain.UpdateCustomerParams{
		ID:    c.Param("customerId"),
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		respondCustomerNotFound(c)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer
// DELETE /api/customers/:customerId
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	deleted, err := h.deleteCustomer.DeleteCustomerByID(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondCustomerNotFound(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddFavoriteProduct
// PUT /api/customers/:customerId/product/:productId
func (h *CustomerHandler) AddFavoriteProduct(c *gin.Context) {
	customer, err := h.addFavoriteProduct.AddFavoriteProductToCustomer(
		c.Request.Context(), c.Param("productId"), c.Param("customerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		respondCustomerNotFound(c)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// RemoveFavoriteProduct
// DELETE /api/customers/:customerId/product/:productId
func (h *CustomerHandler) RemoveFavoriteProduct(c *gin.Context) {
	customer, err := h.removeFavoriteProduct.RemoveFavoriteProductFromCustomer(
		c.Request.Context(), c.Param("productId"), c.Param("customerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		respondCustomerNotFound(c)
		return
	}

	c.JSON(http.StatusOK, customer)
}
