package commands

// StructureBuilder builds directory structure nodes using configured options.
// Built-in exclusions (dot-prefixed names, env, backup) always apply; extra
// patterns narrow the walk further.
type StructureBuilder struct {
	ExtraExclusions []string
}
