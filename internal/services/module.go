// Package services provides the service engine bounded context: the
// delivery visits with their role-scoped visibility, the status state
// machine, and the quick intake flow.
package services

import (
	"github.com/jackc/pgx/v5/pgxpool"

	catalogrepo "github.com/Pepee912/GasLPNew/internal/catalog/repository"
	clientsvc "github.com/Pepee912/GasLPNew/internal/clients/service"
	apphttp "github.com/Pepee912/GasLPNew/internal/http"
	"github.com/Pepee912/GasLPNew/internal/services/handler"
	"github.com/Pepee912/GasLPNew/internal/services/repository"
	"github.com/Pepee912/GasLPNew/internal/services/service"
	"github.com/Pepee912/GasLPNew/platform/events"
	"github.com/Pepee912/GasLPNew/platform/logger"
	"github.com/Pepee912/GasLPNew/platform/validator"
)

// Module is the services bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// Deps are the cross-module dependencies of the service engine.
type Deps struct {
	Catalog   catalogrepo.Repository
	Clients   *clientsvc.Service
	Bus       events.Bus
	Scheduler service.ReminderScheduler
}

// NewModule creates and initializes the services module.
func NewModule(pool *pgxpool.Pool, deps Deps, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, deps.Catalog, deps.Clients.Repo(), deps.Clients, deps.Bus, deps.Scheduler, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "services"
}

// RegisterRoutes mounts service routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/servicios", m.handler.List)
	ctx.Protected.GET("/servicios/hoy", m.handler.ListToday)
	ctx.Protected.GET("/servicios/:id", m.handler.Get)
	ctx.Protected.POST("/servicios", m.handler.Create)
	ctx.Protected.PUT("/servicios/:id", m.handler.Update)
	ctx.Protected.GET("/serviciosbyruta/:rutaId", m.handler.ListByRoute)
	ctx.Protected.POST("/alta-rapida", m.handler.AltaRapida)
}
