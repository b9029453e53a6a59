package message_test

import (
	"testing"

	"github.com/cognitus/cognitus/internal/message"
)

func TestRoleIsValid(t *testing.T) {
	testCases := []struct {
		name     string
		role     message.Role
		expected bool
	}{
		{name: "system", role: message.RoleSystem, expected: true},
		{name: "user", role: message.RoleUser, expected: true},
		{name: "assistant", role: message.RoleAssistant, expected: true},
		{name: "function", role: message.RoleFunction, expected: true},
		{name: "unknown", role: message.Role("moderator"), expected: false},
		{name: "empty", role: message.Role(""), expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := testCase.role.IsValid(); actual != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, actual)
			}
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected message.Role
	}{
		{name: "lowercase passthrough", raw: "user", expected: message.RoleUser},
		{name: "uppercase", raw: "SYSTEM", expected: message.RoleSystem},
		{name: "padded", raw: "  assistant  ", expected: message.RoleAssistant},
		{name: "empty", raw: "", expected: message.Role("")},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := message.NormalizeRole(testCase.raw); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestRolesEqual(t *testing.T) {
	if !message.RolesEqual("User", " user ") {
		t.Fatalf("expected case-insensitive equality")
	}
	if message.RolesEqual("user", "assistant") {
		t.Fatalf("expected distinct roles to differ")
	}
}

func TestDefaultRole(t *testing.T) {
	if message.DefaultRole() != message.RoleUser {
		t.Fatalf("expected default role user, got %q", message.DefaultRole())
	}
}

func TestValidRolesOrder(t *testing.T) {
	roles := message.ValidRoles()
	expected := []message.Role{message.RoleSystem, message.RoleUser, message.RoleAssistant, message.RoleFunction}
	if len(roles) != len(expected) {
		t.Fatalf("expected %d roles, got %d", len(expected), len(roles))
	}
	for index, role := range expected {
		if roles[index] != role {
			t.Fatalf("expected %q at position %d, got %q", role, index, roles[index])
		}
	}
}

func TestPropertiesForRole(t *testing.T) {
	assistantProperties := message.PropertiesForRole(message.RoleAssistant)
	if !assistantProperties.CarriesCompletionMetadata {
		t.Fatalf("expected assistant role to carry completion metadata")
	}
	if !assistantProperties.CanCallFunctions {
		t.Fatalf("expected assistant role to call functions")
	}
	functionProperties := message.PropertiesForRole(message.RoleFunction)
	if !functionProperties.RequiresName {
		t.Fatalf("expected function role to require a name")
	}
	unknownProperties := message.PropertiesForRole(message.Role("moderator"))
	if unknownProperties != (message.RoleProperties{}) {
		t.Fatalf("expected zero properties for unknown role")
	}
}
