package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventStoreSeeded      EventType = "StoreSeeded"
	EventCriteriaChanged  EventType = "CriteriaChanged"
	EventEntityMutated    EventType = "EntityMutated"
	EventNotification     EventType = "Notification"
	EventAssistantReplied EventType = "AssistantReplied"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// StoreSeededEvent is emitted when a page's store has been initialized
type StoreSeededEvent struct {
	Page  string
	Count int
}

func (e StoreSeededEvent) Type() EventType { return EventStoreSeeded }

// CriteriaChangedEvent is emitted when a page's filter criteria change
type CriteriaChangedEvent struct {
	Page    string
	Visible int
}

func (e CriteriaChangedEvent) Type() EventType { return EventCriteriaChanged }

// EntityMutatedEvent is emitted after a transition changed one entity
type EntityMutatedEvent struct {
	Page     string
	EntityID string
	Kind     TransitionKind
	Flags    Flags
}

func (e EntityMutatedEvent) Type() EventType { return EventEntityMutated }

// NotificationEvent carries a toast for the host UI
type NotificationEvent struct {
	Notification Notification
}

func (e NotificationEvent) Type() EventType { return EventNotification }

// AssistantRepliedEvent is emitted when an assistant turn completes
type AssistantRepliedEvent struct {
	Reply string
	Err   string
}

func (e AssistantRepliedEvent) Type() EventType { return EventAssistantReplied }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path      string
	StartPage string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
