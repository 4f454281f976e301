package bridge

import "fmt"

// DuplicateCommandError reports a second registration under a name
// already present in the registry. It is a programming error and is
// fatal at startup.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command already registered: %s", e.Name)
}

// UnknownCommandError reports a request naming a command not in the
// registry. The dispatcher fails closed without invoking any handler.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}
