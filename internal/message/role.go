// Package message models chat messages and their role handling.
package message

import (
	"strings"
)

// Role identifies the author type of a chat message.
type Role string

// Valid message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// validRoles is the membership set used for role validation.
var validRoles = map[Role]struct{}{
	RoleSystem:    {},
	RoleUser:      {},
	RoleAssistant: {},
	RoleFunction:  {},
}

// ValidRoles returns the valid roles in declaration order.
func ValidRoles() []Role {
	return []Role{RoleSystem, RoleUser, RoleAssistant, RoleFunction}
}

// DefaultRole returns the role assigned when none is provided.
func DefaultRole() Role {
	return RoleUser
}

// NormalizeRole lowercases and trims a raw role value.
func NormalizeRole(value string) Role {
	return Role(strings.ToLower(strings.TrimSpace(value)))
}

// IsValid reports whether the role belongs to the valid set.
func (role Role) IsValid() bool {
	_, exists := validRoles[role]
	return exists
}

// RolesEqual reports whether two raw role values denote the same role once
// normalized.
func RolesEqual(first string, second string) bool {
	return NormalizeRole(first) == NormalizeRole(second)
}
