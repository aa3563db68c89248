package delivery

import (
	"net/http"
	"strconv"

	"favorites-api/internal/customer/usecase"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	getProduct   usecase.GetProduct
	listProducts usecase.ListProducts
}

func NewProductHandler(getProduct usecase.GetProduct, listProducts usecase.ListProducts) *ProductHandler {
	return &ProductHandler{
		getProduct:   getProduct,
		listProducts: listProducts,
	}
}

// ListProducts returns one catalog page
// GET /api/products?page=1
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid param: page"})
		return
	}

	result, err := h.listProducts.ListProducts(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": result.Items,
		"page":     result.Page,
		"size":     result.Size,
	})
}

// GetProduct
// GET /api/products/:productId
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.getProduct.GetProductByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}
