package fabric

import "fmt"

// ConfigurationError reports missing or unreadable credential material on the
// local filesystem. It fails the request being served, never the process.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("fabric configuration: %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(path string, err error) *ConfigurationError {
	return &ConfigurationError{Path: path, Err: err}
}
