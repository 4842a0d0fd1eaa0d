package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var (
	ErrTimeout      = errors.New("operation timed out")
	ErrCanceled     = errors.New("operation was canceled")
	ErrEmptyContent = errors.New("empty response body")
	ErrNotText      = errors.New("response is not text")
)

type ErrorType int

const (
	NetworkError ErrorType = iota
	ConfigError
	ProcessingError
	StoreReadError
	StoreWriteError
)

func (t ErrorType) String() string {
	switch t {
	case NetworkError:
		return "network"
	case ConfigError:
		return "config"
	case ProcessingError:
		return "processing"
	case StoreReadError:
		return "store read"
	case StoreWriteError:
		return "store write"
	default:
		return "unknown"
	}
}

type AppError struct {
	Type       ErrorType
	Message    string
	Err        error
	StatusCode int
}

func NewError(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsErrorType reports whether any AppError in err's chain has the given type.
func IsErrorType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

/*
   Checks if the provided error is a network-related error
*/
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if IsErrorType(err, NetworkError) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

/*
   Checks if an error is temporary and potentially retryable.
   Empty bodies are deliberate answers from the server and are not retried.
*/
func IsTemporaryError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrEmptyContent) || IsContextCanceled(err) || IsErrorType(err, ConfigError) {
		return false
	}

	if IsTimeoutError(err) || IsNetworkError(err) || errors.Is(err, ErrNotText) {
		return true
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode >= 400 {
		return true
	}

	errStr := strings.ToLower(err.Error())
	tempKeywords := []string{
		"temporary",
		"connection reset",
		"connection refused",
		"network is unreachable",
		"try again",
	}

	for _, keyword := range tempKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}

/*
   Determines if an error is related to timeout conditions
*/
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "timed out") ||
		strings.Contains(errStr, "deadline exceeded")
}

/*
   Checks if an error was caused by context cancellation
*/
func IsContextCanceled(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}

// IsNotFoundError checks if any AppError in err's chain carries a 404 status code.
func IsNotFoundError(err error) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.StatusCode == 404 {
			return true
		}
		err = appErr.Err
	}
	return false
}
