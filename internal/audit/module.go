// Package audit records the engine's security-relevant events: status
// transitions and denied accesses, including the raw role name of
// unrecognized roles. It listens on the event bus and has no HTTP
// surface of its own beyond an admin read endpoint.
package audit

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pepee912/GasLPNew/internal/audit/repository"
	apphttp "github.com/Pepee912/GasLPNew/internal/http"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	svcevents "github.com/Pepee912/GasLPNew/internal/services/service"
	"github.com/Pepee912/GasLPNew/platform/apperr"
	"github.com/Pepee912/GasLPNew/platform/events"
	"github.com/Pepee912/GasLPNew/platform/httpkit"
	"github.com/Pepee912/GasLPNew/platform/logger"
)

// Module is the audit module implementing http.Module.
type Module struct {
	repo repository.Repository
	log  *logger.Logger
}

// NewModule creates the audit module and subscribes it to the engine's
// events.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	m := &Module{
		repo: repository.New(pool),
		log:  log,
	}

	bus.Subscribe(svcevents.EventServiceCreated, events.HandlerFunc(m.onServiceCreated))
	bus.Subscribe(svcevents.EventServiceStatusChanged, events.HandlerFunc(m.onStatusChanged))
	bus.Subscribe(svcevents.EventAccessDenied, events.HandlerFunc(m.onAccessDenied))
	bus.Subscribe(svcevents.EventServiceReminderDue, events.HandlerFunc(m.onReminderDue))

	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "audit"
}

// RegisterRoutes mounts the audit read endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/audit", m.list)
}

func (m *Module) list(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	cl := rbac.NewCaller(identity.UserID(), identity.RoleName(), identity.IsAuthenticated())
	if cl.Role != rbac.RoleAdministrador {
		httpkit.HandleError(c, apperr.Forbidden("not allowed"))
		return
	}

	entries, err := m.repo.List(c.Request.Context(), 100, 0)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, entries)
}

func actorID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func (m *Module) onServiceCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(svcevents.ServiceCreatedEvent)
	if !ok {
		return nil
	}
	return m.repo.Insert(ctx, repository.Entry{
		OccurredAt: e.OccurredAt(),
		ActorID:    actorID(e.ActorID),
		ActorRole:  e.ActorRole,
		Event:      e.EventName(),
		Entity:     "servicio",
		EntityRef:  e.DocumentID,
		Detail:     map[string]interface{}{"estado": e.StatusKind},
	})
}

func (m *Module) onStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(svcevents.ServiceStatusChangedEvent)
	if !ok {
		return nil
	}
	return m.repo.Insert(ctx, repository.Entry{
		OccurredAt: e.OccurredAt(),
		ActorID:    actorID(e.ActorID),
		ActorRole:  e.ActorRole,
		Event:      e.EventName(),
		Entity:     "servicio",
		EntityRef:  e.DocumentID,
		Detail:     map[string]interface{}{"from": e.From, "to": e.To},
	})
}

func (m *Module) onReminderDue(ctx context.Context, event events.Event) error {
	e, ok := event.(svcevents.ServiceReminderDueEvent)
	if !ok {
		return nil
	}
	return m.repo.Insert(ctx, repository.Entry{
		OccurredAt: e.OccurredAt(),
		ActorRole:  "system",
		Event:      e.EventName(),
		Entity:     "servicio",
		EntityRef:  e.DocumentID,
		Detail:     map[string]interface{}{"fecha_programado": e.FechaProgramado},
	})
}

func (m *Module) onAccessDenied(ctx context.Context, event events.Event) error {
	e, ok := event.(svcevents.AccessDeniedEvent)
	if !ok {
		return nil
	}
	return m.repo.Insert(ctx, repository.Entry{
		OccurredAt: e.OccurredAt(),
		ActorID:    actorID(e.ActorID),
		ActorRole:  e.RawRole,
		Event:      e.EventName(),
		Entity:     "operation",
		EntityRef:  e.Operation,
		Detail:     map[string]interface{}{"raw_role": e.RawRole},
	})
}
