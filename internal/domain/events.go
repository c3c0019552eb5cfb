package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPromptAdded     EventType = "PromptAdded"
	EventPromptEdited    EventType = "PromptEdited"
	EventPromptDeleted   EventType = "PromptDeleted"
	EventPromptToggled   EventType = "PromptToggled"
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchSkipped   EventType = "SearchSkipped"
	EventSearchDiscarded EventType = "SearchDiscarded"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PromptAddedEvent is emitted when a new phrase is appended to the prompt store
type PromptAddedEvent struct {
	Prompt Prompt
}

func (e PromptAddedEvent) Type() EventType { return EventPromptAdded }

// PromptEditedEvent is emitted when a prompt's text changes
type PromptEditedEvent struct {
	Prompt  Prompt
	OldText string
}

func (e PromptEditedEvent) Type() EventType { return EventPromptEdited }

// PromptDeletedEvent is emitted when a prompt is removed
type PromptDeletedEvent struct {
	ID string
}

func (e PromptDeletedEvent) Type() EventType { return EventPromptDeleted }

// PromptToggledEvent is emitted when a prompt's selection flips
type PromptToggledEvent struct {
	Prompt Prompt
}

func (e PromptToggledEvent) Type() EventType { return EventPromptToggled }

// SearchStartedEvent is emitted when a dispatch enters the loading state
type SearchStartedEvent struct {
	Query string
	Seq   uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a dispatch writes its results
type SearchCompletedEvent struct {
	Query    string
	Seq      uint64
	Count    int
	Degraded bool
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchSkippedEvent is emitted when a dispatch finds nothing selected
type SearchSkippedEvent struct{}

func (e SearchSkippedEvent) Type() EventType { return EventSearchSkipped }

// SearchDiscardedEvent is emitted when a completion lost the race to a newer dispatch
type SearchDiscardedEvent struct {
	Seq    uint64
	Newest uint64
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path        string
	ProviderURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
