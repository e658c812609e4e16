// Package handler exposes the catalog module over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pepee912/GasLPNew/internal/catalog/service"
	"github.com/Pepee912/GasLPNew/internal/catalog/transport"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/platform/httpkit"
	"github.com/Pepee912/GasLPNew/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for catalog entities.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new catalog handler.
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

// ListRoutes lists rutas.
// GET /api/v1/rutas
func (h *Handler) ListRoutes(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	activeOnly := c.Query("activos") == "true"

	result, err := h.svc.ListRoutes(c.Request.Context(), cl, activeOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetRoute retrieves a ruta by id or documentId.
// GET /api/v1/rutas/:id
func (h *Handler) GetRoute(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.GetRoute(c.Request.Context(), cl, c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateRoute creates a ruta.
// POST /api/v1/rutas
func (h *Handler) CreateRoute(c *gin.Context) {
	var req transport.CreateRouteRequest
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

	result, err := h.svc.CreateRoute(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// RenameRoute renames a ruta.
// PUT /api/v1/rutas/:id
func (h *Handler) RenameRoute(c *gin.Context) {
	var req transport.RenameRouteRequest
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

	result, err := h.svc.RenameRoute(c.Request.Context(), cl, c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetRouteActive toggles a ruta's activo flag.
// PATCH /api/v1/rutas/:id/activo
func (h *Handler) SetRouteActive(c *gin.Context) {
	h.setActive(c, h.svc.SetRouteActive)
}

// ListTypes lists tipos de servicio.
// GET /api/v1/tipos-servicio
func (h *Handler) ListTypes(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	activeOnly := c.Query("activos") == "true"

	result, err := h.svc.ListTypes(c.Request.Context(), cl, activeOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateType creates a tipo de servicio.
// POST /api/v1/tipos-servicio
func (h *Handler) CreateType(c *gin.Context) {
	var req transport.CreateServiceTypeRequest
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

	result, err := h.svc.CreateType(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// SetTypeActive toggles a tipo's activo flag.
// PATCH /api/v1/tipos-servicio/:id/activo
func (h *Handler) SetTypeActive(c *gin.Context) {
	h.setActive(c, h.svc.SetTypeActive)
}

// ListStatuses lists estados de servicio.
// GET /api/v1/estados-servicio
func (h *Handler) ListStatuses(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	activeOnly := c.Query("activos") == "true"

	result, err := h.svc.ListStatuses(c.Request.Context(), cl, activeOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateStatus creates an estado de servicio.
// POST /api/v1/estados-servicio
func (h *Handler) CreateStatus(c *gin.Context) {
	var req transport.CreateServiceStatusRequest
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

	result, err := h.svc.CreateStatus(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// SetStatusActive toggles an estado's activo flag.
// PATCH /api/v1/estados-servicio/:id/activo
func (h *Handler) SetStatusActive(c *gin.Context) {
	h.setActive(c, h.svc.SetStatusActive)
}

// AssignPersonnel links a user to a ruta.
// POST /api/v1/personal
func (h *Handler) AssignPersonnel(c *gin.Context) {
	var req transport.AssignPersonnelRequest
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

	result, err := h.svc.AssignPersonnel(c.Request.Context(), cl, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListPersonnelByRoute lists personnel on a ruta.
// GET /api/v1/rutas/:id/personal
func (h *Handler) ListPersonnelByRoute(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.svc.ListPersonnelByRoute(c.Request.Context(), cl, c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RemovePersonnel removes a personnel assignment.
// DELETE /api/v1/personal/:id
func (h *Handler) RemovePersonnel(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	if err := h.svc.RemovePersonnel(c.Request.Context(), cl, c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setActive(c *gin.Context, fn func(ctx context.Context, caller rbac.Caller, raw string, active bool) error) {
	var req transport.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	cl, ok := caller(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), cl, c.Param("id"), req.Activo); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
