package domain

import "strings"

// Invocation is a single run of an external compile or link command.
type Invocation struct {
	// Command is the path of the executable or script.
	Command string
	// Args are passed verbatim. No quoting or escaping is applied.
	Args []string
	// Dir is the working directory of the process.
	Dir string
}

// String renders the invocation for diagnostics.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Command}, i.Args...), " ")
}
