package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banki/finanzas-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product registry.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns the products visible to the caller.
//
// @Summary      List product applications
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProductsResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	data := make([]productResponse, 0, len(list.Items))
	for i := range list.Items {
		data = append(data, toProductResponse(&list.Items[i]))
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Success:    true,
		Count:      list.Count,
		TotalQuota: list.TotalQuota,
		Data:       data,
	})
}

// Get returns one product by id, ownership-checked.
//
// @Summary      Get a product application
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  productEnvelope
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productEnvelope{Success: true, Data: toProductResponse(product)})
}

// Create registers a new product application owned by the caller.
//
// @Summary      Create a product application
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productEnvelope
// @Failure      400   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, productEnvelope{Success: true, Data: toProductResponse(product)})
}

// Update replaces the writable fields of a product application.
//
// @Summary      Update a product application
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productEnvelope{Success: true, Data: toProductResponse(product)})
}

// UpdateStatus changes only the status of a product application.
//
// @Summary      Update a product application's status
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Product id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  productEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id}/status [patch]
func (h *ProductHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productEnvelope{Success: true, Data: toProductResponse(product)})
}

// Delete removes a product application.
//
// @Summary      Delete a product application
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "product deleted"})
}
