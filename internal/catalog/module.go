// Package catalog provides the catalog bounded context: rutas, personal,
// tipos de servicio and estados de servicio. Other modules consume it as
// referenced lookups; the service engine resolves status references here.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pepee912/GasLPNew/internal/catalog/handler"
	"github.com/Pepee912/GasLPNew/internal/catalog/repository"
	"github.com/Pepee912/GasLPNew/internal/catalog/service"
	apphttp "github.com/Pepee912/GasLPNew/internal/http"
	"github.com/Pepee912/GasLPNew/platform/logger"
	"github.com/Pepee912/GasLPNew/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Repository exposes catalog lookups for the services module.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/rutas", m.handler.ListRoutes)
	ctx.Protected.GET("/rutas/:id", m.handler.GetRoute)
	ctx.Protected.POST("/rutas", m.handler.CreateRoute)
	ctx.Protected.PUT("/rutas/:id", m.handler.RenameRoute)
	ctx.Protected.PATCH("/rutas/:id/activo", m.handler.SetRouteActive)
	ctx.Protected.GET("/rutas/:id/personal", m.handler.ListPersonnelByRoute)

	ctx.Protected.GET("/tipos-servicio", m.handler.ListTypes)
	ctx.Protected.POST("/tipos-servicio", m.handler.CreateType)
	ctx.Protected.PATCH("/tipos-servicio/:id/activo", m.handler.SetTypeActive)

	ctx.Protected.GET("/estados-servicio", m.handler.ListStatuses)
	ctx.Protected.POST("/estados-servicio", m.handler.CreateStatus)
	ctx.Protected.PATCH("/estados-servicio/:id/activo", m.handler.SetStatusActive)

	ctx.Protected.POST("/personal", m.handler.AssignPersonnel)
	ctx.Protected.DELETE("/personal/:id", m.handler.RemovePersonnel)
}
