// Package handler exposes the service engine over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/internal/services/service"
	"github.com/Pepee912/GasLPNew/internal/services/transport"
	"github.com/Pepee912/GasLPNew/platform/httpkit"
	"github.com/Pepee912/GasLPNew/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for services.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new services handler.
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

// List lists services under the caller's visibility scope.
// GET /api/v1/servicios
func (h *Handler) List(c *gin.Context) {
	var req transport.ListServicesRequest
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

// ListToday lists the caller's services for the current day.
// GET /api/v1/servicios/hoy
func (h *Handler) ListToday(c *gin.Context) {
	var req transport.ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.ListToday(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByRoute lists services on a route identified by documentId.
// GET /api/v1/serviciosbyruta/:rutaId
func (h *Handler) ListByRoute(c *gin.Context) {
	var req transport.ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.ListByRoute(c.Request.Context(), cl, c.Param("rutaId"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get retrieves a single service.
// GET /api/v1/servicios/:id
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

// Create creates a service.
// POST /api/v1/servicios
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateServiceRequest
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

// Update applies a role-guarded partial update.
// PUT /api/v1/servicios/:id
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateServiceRequest
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

// AltaRapida runs the one-call intake flow.
// POST /api/v1/alta-rapida
func (h *Handler) AltaRapida(c *gin.Context) {
	var req transport.AltaRapidaRequest
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

	result, err := h.svc.AltaRapida(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
