package handler

import (
	"errors"
	"net/http"

	"catalog-service/internal/delivery/dto"
	"catalog-service/internal/delivery/http/middleware"
	"catalog-service/internal/usecase"
	"catalog-service/pkg/response"
	"catalog-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

// Create handles product creation
// @Summary Create a new product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Create Product Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	product, err := h.productUsecase.Create(r.Context(), actorID, &req)
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

// GetAll handles listing products
// @Summary Get products list (with filters & pagination)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param category query string false "Category"
// @Param type query string false "public or private"
// @Param search query string false "Search in name and description"
// @Param sort query string false "name, price, quantity or createdAt"
// @Param order query string false "asc or desc" default(asc)
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, parseErrs := dto.ParseListProductsQuery(r.URL.Query())
	if len(parseErrs) > 0 {
		response.ValidationError(w, parseErrs)
		return
	}
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	result, err := h.productUsecase.GetAll(r.Context(), query, role)
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Products retrieved successfully",
		result.Products, response.NewPagination(result.Page, result.Limit, result.TotalItems))
}

// GetByID handles getting a product by ID
// @Summary Get product by ID
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	id, err := uuid.Parse(rawID)
	if err != nil {
		productNotFound(w, rawID)
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	product, err := h.productUsecase.GetByID(r.Context(), id, role)
	if err != nil {
		h.writeError(w, err, rawID)
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product)
}

// Update handles partial product updates
// @Summary Update a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.UpdateProductRequest true "Update Product Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	id, err := uuid.Parse(rawID)
	if err != nil {
		productNotFound(w, rawID)
		return
	}

	var req dto.UpdateProductRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	product, err := h.productUsecase.Update(r.Context(), actorID, id, &req)
	if err != nil {
		h.writeError(w, err, rawID)
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

// Delete handles product deletion
// @Summary Delete a product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	id, err := uuid.Parse(rawID)
	if err != nil {
		productNotFound(w, rawID)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	deleted, err := h.productUsecase.Delete(r.Context(), actorID, id)
	if err != nil {
		h.writeError(w, err, rawID)
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", deleted)
}

// GetStatistics handles the aggregate statistics endpoint
// @Summary Get product statistics
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /products/stats [get]
func (h *ProductHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.productUsecase.GetStatistics(r.Context())
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *ProductHandler) writeError(w http.ResponseWriter, err error, rawID string) {
	var validationErr *usecase.ValidationError
	var duplicateErr *usecase.DuplicateKeyError

	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, []validator.FieldError{{Field: validationErr.Field, Message: validationErr.Message}})
	case errors.As(err, &duplicateErr):
		response.Conflict(w, "Product with this SKU already exists", response.CodeDuplicateSKU, map[string]string{
			"field": duplicateErr.Field,
			"value": duplicateErr.Value,
		})
	case errors.Is(err, usecase.ErrProductNotFound):
		productNotFound(w, rawID)
	default:
		response.InternalServerError(w, "")
	}
}

func productNotFound(w http.ResponseWriter, rawID string) {
	response.NotFound(w, "Product not found", map[string]string{
		"resource": "Product",
		"id":       rawID,
	})
}
