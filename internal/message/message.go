package message

import (
	"time"
)

// Message is a chat message with role handling already applied.
type Message struct {
	Role             Role      `json:"role"`
	Content          string    `json:"content"`
	Name             string    `json:"name,omitempty"`
	FunctionCall     string    `json:"function_call,omitempty"`
	ReceivedAt       time.Time `json:"received_at"`
	FinishReason     string    `json:"finish_reason,omitempty"`
	PromptLength     int       `json:"prompt_length,omitempty"`
	CompletionLength int       `json:"completion_length,omitempty"`
	TotalLength      int       `json:"total_length,omitempty"`
}

// NewMessage builds a message through the role handler. The received-at
// timestamp is the current UTC time.
func NewMessage(handler *RoleHandler, rawRole string, content string, metadata RoleMetadata) (Message, error) {
	if handler == nil {
		handler = NewRoleHandler(nil)
	}
	roleResult, roleError := handler.ProcessRole(rawRole, content, metadata)
	if roleError != nil {
		return Message{}, roleError
	}
	return Message{
		Role:         roleResult.Role,
		Content:      roleResult.Content,
		Name:         roleResult.Name,
		FunctionCall: roleResult.FunctionCall,
		ReceivedAt:   time.Now().UTC(),
	}, nil
}

// Properties returns the role properties for the message's role.
func (currentMessage Message) Properties() RoleProperties {
	return PropertiesForRole(currentMessage.Role)
}
