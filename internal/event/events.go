package event

import "github.com/google/uuid"

// Topics published in this module.
const (
	TopicDocumentClosed  Topic = "document.closed"
	TopicDocumentOpened  Topic = "document.opened"
	TopicDocumentFocused Topic = "document.focused"
	TopicProjectChanged  Topic = "project.changed"
)

// DocumentClosed is published when a document is removed from the
// document manager.
type DocumentClosed struct {
	ID uuid.UUID
}

// EventTopic implements TopicProvider.
func (DocumentClosed) EventTopic() Topic { return TopicDocumentClosed }

// DocumentOpened is published when a document is added to the
// document manager.
type DocumentOpened struct {
	ID   uuid.UUID
	Path string
}

// EventTopic implements TopicProvider.
func (DocumentOpened) EventTopic() Topic { return TopicDocumentOpened }

// DocumentFocused is published when a document becomes current,
// whether by opening, explicit focus or close fallback.
type DocumentFocused struct {
	ID uuid.UUID
}

// EventTopic implements TopicProvider.
func (DocumentFocused) EventTopic() Topic { return TopicDocumentFocused }

// ProjectChanged is published after the project file is loaded or
// reloaded, including reloads triggered by external modification.
type ProjectChanged struct {
	Path string
}

// EventTopic implements TopicProvider.
func (ProjectChanged) EventTopic() Topic { return TopicProjectChanged }
