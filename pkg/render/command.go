package render

import (
	"fmt"
	"strings"
)

// Command is one step of a compiled render plan. Exactly one of Invoke,
// RemoveDirectory, and MakeDirectory implements it. Commands are
// order-dependent: directory setup precedes any slide work, and slide
// invocations follow in ascending slide index.
type Command interface {
	fmt.Stringer

	isCommand()
}

// Invoke runs an external tool with a flat argument list.
type Invoke struct {
	Executable string
	Args       []string
}

// RemoveDirectory deletes a directory tree if it exists.
type RemoveDirectory struct {
	Path string
}

// MakeDirectory creates a directory, including parents.
type MakeDirectory struct {
	Path string
}

func (Invoke) isCommand()          {}
func (RemoveDirectory) isCommand() {}
func (MakeDirectory) isCommand()   {}

// String renders the invocation in shell-like form for logs and dry runs.
func (c Invoke) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Executable)
	for _, arg := range c.Args {
		if strings.ContainsAny(arg, " \t\n") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

func (c RemoveDirectory) String() string { return "rm -rf " + c.Path }

func (c MakeDirectory) String() string { return "mkdir -p " + c.Path }
