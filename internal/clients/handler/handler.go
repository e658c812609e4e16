// Package handler exposes the clients module over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pepee912/GasLPNew/internal/clients/service"
	"github.com/Pepee912/GasLPNew/internal/clients/transport"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/platform/httpkit"
	"github.com/Pepee912/GasLPNew/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for clients.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new clients handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func caller(c *gin.Context) (rbac.Caller, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return rbac.Caller{}, false
	}
	return rbac.NewCaller(identity.UserID(), identity.RoleName(), identity.IsAuthenticated()), true
}

// List lists clients with pagination and search.
// GET /api/v1/clientes
func (h *Handler) List(c *gin.Context) {
	var req transport.ListClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get retrieves a client with its domicilios.
// GET /api/v1/clientes/:id
func (h *Handler) Get(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), cl, c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// FindByPhone retrieves a client by phone number.
// GET /api/v1/clientes/telefono/:telefono
func (h *Handler) FindByPhone(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.FindByPhone(c.Request.Context(), cl, c.Param("telefono"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create creates a client.
// POST /api/v1/clientes
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Update partially updates a client.
// PUT /api/v1/clientes/:id
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), cl, c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Deactivate soft-deactivates a client and its domicilios.
// POST /api/v1/clientes/:id/desactivar
func (h *Handler) Deactivate(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), cl, c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivate restores a client and its domicilios.
// POST /api/v1/clientes/:id/reactivar
func (h *Handler) Reactivate(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	if err := h.svc.Reactivate(c.Request.Context(), cl, c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAddresses lists a client's domicilios.
// GET /api/v1/clientes/:id/domicilios
func (h *Handler) ListAddresses(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.ListAddresses(c.Request.Context(), cl, c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddAddress adds a domicilio to a client.
// POST /api/v1/clientes/:id/domicilios
func (h *Handler) AddAddress(c *gin.Context) {
	var req transport.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.AddAddress(c.Request.Context(), cl, c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
