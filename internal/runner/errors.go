package runner

import "fmt"

// ExitError carries a process exit status to main. An empty Message
// means the run already reported everything and exits silently.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// NotFoundError reports an input that is neither a path nor a glob with matches.
type NotFoundError struct {
	Input string
}

func (e *NotFoundError) Error() string {
	return "File or directory not found: " + e.Input
}
