package directory

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the locator when the directory search yields no
// usable result for a name.
var ErrNotFound = errors.New("profile not found")

// ParseError represents a failure to parse a profile section's HTML.
type ParseError struct {
	Section string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error in %s section: %v", e.Section, e.Cause)
	}
	return fmt.Sprintf("parse error in %s section", e.Section)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NavigationError represents a browser navigation or wait failure while
// processing a specific person.
type NavigationError struct {
	Name    string
	Message string
	Cause   error
}

func (e *NavigationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("navigation error for %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("navigation error for %s: %s", e.Name, e.Message)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}
