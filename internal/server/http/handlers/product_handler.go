package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/server/http/dto"
)

// ProductHandler serves catalog administration endpoints.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/admin/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "list products failed")
		return
	}
	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "malformed product")
		return
	}

	created, err := h.facade.CreateProduct(c.Request.Context(), fromProductRequest(0, req))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*created))
}

// Update handles PUT /api/admin/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "malformed product")
		return
	}

	updated, err := h.facade.UpdateProduct(c.Request.Context(), fromProductRequest(id, req))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*updated))
}

// Delete handles DELETE /api/admin/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidProduct):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "product not found")
	default:
		abortWithError(c, http.StatusInternalServerError, "product operation failed")
	}
}

func fromProductRequest(id int64, req dto.ProductRequest) model.Product {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	var variants []model.Variant
	for _, v := range req.Variants {
		variants = append(variants, model.Variant{Name: v.Name, Price: v.Price})
	}
	return model.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Unit:        req.Unit,
		Category:    req.Category,
		Description: req.Description,
		IsActive:    active,
		Variants:    variants,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	variants := make([]dto.VariantPayload, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, dto.VariantPayload{Name: v.Name, Price: v.Price})
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Unit:        p.Unit,
		Category:    p.Category,
		Description: p.Description,
		IsActive:    p.IsActive,
		Variants:    variants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
