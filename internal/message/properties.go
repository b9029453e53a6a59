package message

// RoleProperties describes the capabilities attached to a role.
type RoleProperties struct {
	Description string `json:"description"`
	// CarriesCompletionMetadata marks roles whose messages record finish
	// reason and length metadata.
	CarriesCompletionMetadata bool `json:"carries_completion_metadata"`
	// CanCallFunctions marks roles allowed to emit function calls.
	CanCallFunctions bool `json:"can_call_functions"`
	// RequiresName marks roles whose messages must carry a name.
	RequiresName bool `json:"requires_name"`
}

var roleProperties = map[Role]RoleProperties{
	RoleSystem: {
		Description: "instructions that steer the conversation",
	},
	RoleUser: {
		Description: "input authored by the end user",
	},
	RoleAssistant: {
		Description:               "model output",
		CarriesCompletionMetadata: true,
		CanCallFunctions:          true,
	},
	RoleFunction: {
		Description:  "result of a function invocation",
		RequiresName: true,
	},
}

// PropertiesForRole returns the properties record for a role. Unknown roles
// yield the zero record.
func PropertiesForRole(role Role) RoleProperties {
	return roleProperties[role]
}
