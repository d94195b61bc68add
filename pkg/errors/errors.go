package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-level fetch errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeMalformed represents responses without the embedded data block
	ErrorTypeMalformed ErrorType = "malformed_response"
	// ErrorTypeExtraction represents an exhausted fetch retry budget
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeValidation represents validation errors on built records
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeDiscovery represents a failed pagination discovery
	ErrorTypeDiscovery ErrorType = "discovery"
	// ErrorTypeStore represents store-related errors
	ErrorTypeStore ErrorType = "store"
)

// CrawlError represents a crawl-specific error
type CrawlError struct {
	Type    ErrorType
	URL     string
	Field   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *CrawlError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Field != "" {
		msg += fmt.Sprintf(" - field: %s", e.Field)
	}
	if e.URL != "" {
		msg += fmt.Sprintf(" - url: %s", e.URL)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" - %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *CrawlError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the fetch client may retry after this error.
// Network errors pass through unretried; only a missing embedded data
// block consumes a retry.
func (e *CrawlError) IsRetryable() bool {
	return e.Type == ErrorTypeMalformed
}

// New creates a new CrawlError
func New(errType ErrorType, message string, err error) *CrawlError {
	return &CrawlError{
		Type:    errType,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error for the given URL
func NewNetwork(url string, err error) *CrawlError {
	e := New(ErrorTypeNetwork, "request failed", err)
	e.URL = url
	return e
}

// NewMalformed creates an error for a page missing the embedded data block
func NewMalformed(url string) *CrawlError {
	e := New(ErrorTypeMalformed, "embedded data block not found", nil)
	e.URL = url
	return e
}

// NewExtraction creates an error for a listing whose retry budget is exhausted
func NewExtraction(url string) *CrawlError {
	e := New(ErrorTypeExtraction, "error during extracting the data", nil)
	e.URL = url
	return e
}

// NewValidation creates an error for a record missing a required field
func NewValidation(field string) *CrawlError {
	e := New(ErrorTypeValidation, "required field missing", nil)
	e.Field = field
	return e
}

// NewDiscovery creates an error for a run whose pagination control was never found
func NewDiscovery(err error) *CrawlError {
	return New(ErrorTypeDiscovery, "pagination control not found", err)
}

// NewStore creates a new store error
func NewStore(message string, err error) *CrawlError {
	return New(ErrorTypeStore, message, err)
}

// IsType reports whether err is a CrawlError of the given type
func IsType(err error, errType ErrorType) bool {
	ce, ok := As(err)
	return ok && ce.Type == errType
}

// As extracts a CrawlError from err's chain
func As(err error) (*CrawlError, bool) {
	var ce *CrawlError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
