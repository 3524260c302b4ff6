package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hahn-ecommerce/catalog-api/internal/api/metrics"
	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  apiResponse{data=productResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	metrics.ProductsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, apiResponse{
		Message: "product created successfully",
		Data:    toProductResponse(detail),
	})
}

// List handles GET /api/products. Active products only.
//
// @Summary      List active products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse{data=[]productResponse}
// @Failure      401  {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	items, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apiResponse{
		Message: "products retrieved successfully",
		Data:    toProductListResponse(items),
	})
}

// Get handles GET /api/products/:id. Inactive products remain readable here.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  apiResponse{data=productResponse}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	detail, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apiResponse{
		Message: "product retrieved successfully",
		Data:    toProductResponse(detail),
	})
}

// Update handles PUT /api/products/:id with partial-update semantics.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  apiResponse{data=productResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	metrics.ProductsUpdatedTotal.Inc()

	return c.JSON(http.StatusOK, apiResponse{
		Message: "product updated successfully",
		Data:    toProductResponse(detail),
	})
}

// Delete handles DELETE /api/products/:id. Logical delete only.
//
// @Summary      Delete a product (logical)
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ProductsDeactivatedTotal.Inc()

	return c.JSON(http.StatusOK, apiResponse{Message: "product deleted successfully"})
}
