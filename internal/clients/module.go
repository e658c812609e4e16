// Package clients provides the clients bounded context: clientes and
// their domicilios, phone-keyed lookup, and the soft-delete lifecycle.
package clients

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pepee912/GasLPNew/internal/clients/handler"
	"github.com/Pepee912/GasLPNew/internal/clients/repository"
	"github.com/Pepee912/GasLPNew/internal/clients/service"
	apphttp "github.com/Pepee912/GasLPNew/internal/http"
	"github.com/Pepee912/GasLPNew/platform/logger"
	"github.com/Pepee912/GasLPNew/platform/validator"
)

// Module is the clients bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the clients module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "clients"
}

// Service exposes the client logic for the services module's quick intake.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts client routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/clientes", m.handler.List)
	ctx.Protected.POST("/clientes", m.handler.Create)
	ctx.Protected.GET("/clientes/telefono/:telefono", m.handler.FindByPhone)
	ctx.Protected.GET("/clientes/:id", m.handler.Get)
	ctx.Protected.PUT("/clientes/:id", m.handler.Update)
	ctx.Protected.POST("/clientes/:id/desactivar", m.handler.Deactivate)
	ctx.Protected.POST("/clientes/:id/reactivar", m.handler.Reactivate)
	ctx.Protected.GET("/clientes/:id/domicilios", m.handler.ListAddresses)
	ctx.Protected.POST("/clientes/:id/domicilios", m.handler.AddAddress)
}
