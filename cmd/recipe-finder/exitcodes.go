package main

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // Runtime failure, invalid arguments
	ExitConfigError = 2 // Invalid config, empty or malformed dataset
)

// exitError carries a process exit code up through cobra's RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}
