package config

import "fmt"

// NotFoundError is returned when the configuration file does not exist
// or is not a regular file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file does not exist: %s", e.Path)
}

// ParseError is returned when the configuration file is not valid JSON.
// It wraps the underlying syntax error.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingKeyError is returned when a required configuration key is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required configuration key: %q", e.Key)
}

// TypeError is returned when a configuration value has the wrong type or shape.
type TypeError struct {
	Key  string
	Want string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("configuration key %q must be %s", e.Key, e.Want)
}

// PathNotFoundError is returned when a resolved model path does not exist on disk.
type PathNotFoundError struct {
	Key  string
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path for key %q does not exist: %s", e.Key, e.Path)
}

// RangeError is returned when a threshold value lies outside [0, 1].
type RangeError struct {
	Key   string
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("configuration %q must be in [0, 1], got %v", e.Key, e.Value)
}
