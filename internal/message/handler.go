package message

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// roleLoggerName labels role validation log entries.
	roleLoggerName = "roles"
	// invalidRoleMessage is logged and returned when validation fails.
	invalidRoleMessage = "invalid role %q"
)

// RoleMetadata carries the secondary attributes a role may require.
type RoleMetadata struct {
	Name         string
	FunctionCall string
}

// RoleResult is the outcome of processing a role against message content.
type RoleResult struct {
	Role         Role
	Content      string
	Name         string
	FunctionCall string
	Properties   RoleProperties
}

// RoleHandler validates roles and applies role-specific behavior to content.
type RoleHandler struct {
	logger *zap.Logger
}

// NewRoleHandler returns a handler logging through the provided logger. A nil
// logger disables logging.
func NewRoleHandler(logger *zap.Logger) *RoleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleHandler{logger: logger.Named(roleLoggerName)}
}

// ProcessRole normalizes and validates a raw role value, attaches secondary
// metadata where the role requires it, and applies role-specific content
// behavior. An empty role falls back to the default role. Invalid roles are
// logged and returned as errors.
func (handler *RoleHandler) ProcessRole(rawRole string, content string, metadata RoleMetadata) (RoleResult, error) {
	role := NormalizeRole(rawRole)
	if role == "" {
		role = DefaultRole()
	}
	if !role.IsValid() {
		handler.logger.Error("role rejected", zap.String("role", rawRole))
		return RoleResult{}, fmt.Errorf(invalidRoleMessage, rawRole)
	}

	result := RoleResult{
		Role:       role,
		Content:    applyRoleBehavior(role, content),
		Properties: PropertiesForRole(role),
	}
	if role == RoleFunction {
		result.Name = metadata.Name
		result.FunctionCall = metadata.FunctionCall
	}
	return result, nil
}

// AssignRole validates a candidate role and falls back to the default role
// when the candidate is invalid. The fallback is logged, not fatal.
func (handler *RoleHandler) AssignRole(candidate string) Role {
	role := NormalizeRole(candidate)
	if role == "" {
		return DefaultRole()
	}
	if !role.IsValid() {
		handler.logger.Warn("role fallback", zap.String("role", candidate), zap.String("fallback", string(DefaultRole())))
		return DefaultRole()
	}
	return role
}

// applyRoleBehavior applies role-specific content adjustments. System
// messages are stripped of surrounding whitespace; other roles keep their
// content untouched.
func applyRoleBehavior(role Role, content string) string {
	if role == RoleSystem {
		return strings.TrimSpace(content)
	}
	return content
}
