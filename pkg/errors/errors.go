// Package errors provides custom error types for the verdiq pipeline.
// These errors enable programmatic error checking across the validation
// and deployment stages without forcing callers to match on strings.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the verdiq pipeline
var (
	// ErrArtifactNotFound indicates a required extraction artifact file is absent
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrArtifactMalformed indicates an artifact is present but missing required fields
	ErrArtifactMalformed = errors.New("artifact malformed")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCredentialUnavailable indicates the publish credential could not be found
	ErrCredentialUnavailable = errors.New("credential unavailable")

	// ErrDeploymentAborted indicates pre-deployment checks rejected the attempt
	ErrDeploymentAborted = errors.New("deployment aborted")

	// ErrProcessFailed indicates an external tool exited non-zero
	ErrProcessFailed = errors.New("external process failed")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ArtifactError represents a failure to load or decode a category artifact.
type ArtifactError struct {
	Category string
	Path     string
	Missing  bool
	Err      error
}

// Error implements the error interface
func (e *ArtifactError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s artifact not found at %s", e.Category, e.Path)
	}
	return fmt.Sprintf("%s artifact at %s: %v", e.Category, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ArtifactError) Is(target error) bool {
	if e.Missing {
		return target == ErrArtifactNotFound
	}
	return target == ErrArtifactMalformed
}

// NewArtifactNotFoundError creates an ArtifactError for a missing artifact file
func NewArtifactNotFoundError(category, path string) *ArtifactError {
	return &ArtifactError{Category: category, Path: path, Missing: true}
}

// NewArtifactError creates an ArtifactError for a present but unreadable artifact
func NewArtifactError(category, path string, err error) *ArtifactError {
	return &ArtifactError{Category: category, Path: path, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "copy", "delete"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when decoding artifact documents
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrArtifactMalformed
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// ProcessError represents an error from an external process or command
type ProcessError struct {
	Operation string // What operation was being performed ("build", "publish")
	Command   string // The command that was executed
	Output    string // Stderr output from the process, verbatim
	ExitCode  int
	Err       error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ProcessError) Is(target error) bool {
	return target == ErrProcessFailed
}

// AuthFailure reports whether the captured output points at an
// authentication or token problem.
func (e *ProcessError) AuthFailure() bool {
	out := strings.ToLower(e.Output)
	return strings.Contains(out, "authentication") || strings.Contains(out, "token")
}

// NewProcessError creates a new ProcessError
func NewProcessError(operation, command, output string, exitCode int, err error) *ProcessError {
	return &ProcessError{
		Operation: operation,
		Command:   command,
		Output:    output,
		ExitCode:  exitCode,
		Err:       err,
	}
}

// IntegrationError represents a failure while merging artifacts into the
// publishable dataset. The pre-overwrite backup is preserved when this
// error is returned.
type IntegrationError struct {
	Step string // "products", "images", "reviews", "tables"
	Err  error
}

// Error implements the error interface
func (e *IntegrationError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("data integration failed at %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("data integration failed: %v", e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// NewIntegrationError creates a new IntegrationError
func NewIntegrationError(step string, err error) *IntegrationError {
	return &IntegrationError{Step: step, Err: err}
}

// DependencyError indicates a required external dependency is missing
type DependencyError struct {
	Dependency string
	Message    string
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s: %s", e.Dependency, e.Message)
}

// CredentialError indicates the publish credential is absent or rejected.
type CredentialError struct {
	Source  string // "environment", "deploy script"
	Message string
}

// Error implements the error interface
func (e *CredentialError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("credential error (%s): %s", e.Source, e.Message)
	}
	return fmt.Sprintf("credential error: %s", e.Message)
}

// Is implements errors.Is support
func (e *CredentialError) Is(target error) bool {
	return target == ErrCredentialUnavailable
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "save"
	Resource  string // "workspace", "report", "dataset"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsArtifactNotFound checks if an error indicates a missing artifact
func IsArtifactNotFound(err error) bool {
	return errors.Is(err, ErrArtifactNotFound)
}

// IsArtifactMalformed checks if an error indicates a malformed artifact
func IsArtifactMalformed(err error) bool {
	return errors.Is(err, ErrArtifactMalformed)
}

// IsProcessFailure checks if an error came from an external process
func IsProcessFailure(err error) bool {
	return errors.Is(err, ErrProcessFailed)
}

// IsCredentialUnavailable checks if an error is a credential problem
func IsCredentialUnavailable(err error) bool {
	return errors.Is(err, ErrCredentialUnavailable)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}
