package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/Pepee912/GasLPNew/platform/events"
)

// Event names published by the services engine. The audit module
// subscribes to all of them.
const (
	EventServiceCreated       = "services.created"
	EventServiceStatusChanged = "services.status_changed"
	EventAccessDenied         = "services.access_denied"
	EventServiceReminderDue   = "services.reminder_due"
)

// ServiceCreatedEvent is published after a service is persisted.
type ServiceCreatedEvent struct {
	events.BaseEvent
	ServiceID  int64
	DocumentID string
	StatusKind string
	ActorID    uuid.UUID
	ActorRole  string
}

// EventName identifies the event type.
func (ServiceCreatedEvent) EventName() string { return EventServiceCreated }

// ServiceStatusChangedEvent is published after a status transition.
type ServiceStatusChangedEvent struct {
	events.BaseEvent
	ServiceID  int64
	DocumentID string
	From       string
	To         string
	ActorID    uuid.UUID
	ActorRole  string
}

// EventName identifies the event type.
func (ServiceStatusChangedEvent) EventName() string { return EventServiceStatusChanged }

// AccessDeniedEvent is published when an engine operation is denied.
// Unknown roles carry their raw role name so misconfigured accounts can
// be audited.
type AccessDeniedEvent struct {
	events.BaseEvent
	Operation string
	ActorID   uuid.UUID
	RawRole   string
}

// EventName identifies the event type.
func (AccessDeniedEvent) EventName() string { return EventAccessDenied }

// ServiceReminderDueEvent is published by the reminder worker when a
// service day arrives.
type ServiceReminderDueEvent struct {
	events.BaseEvent
	ServiceID       int64
	DocumentID      string
	FechaProgramado time.Time
}

// EventName identifies the event type.
func (ServiceReminderDueEvent) EventName() string { return EventServiceReminderDue }
