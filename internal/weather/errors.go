package weather

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
)

// ErrorKind represents the category of a fetch failure
type ErrorKind int

const (
	// KindNetwork covers transport failures and non-OK HTTP statuses
	KindNetwork ErrorKind = iota
	// KindParse covers malformed or unexpected JSON documents
	KindParse
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Source identifies which remote data source failed
type Source string

const (
	SourceForecast   Source = "forecast"
	SourceHistorical Source = "historical"
)

// FetchError is the single failure type returned by the fetchers.
// Network and parse failures are both reported through it; the render
// adapter only ever sees the short message.
type FetchError struct {
	Kind       ErrorKind
	Source     Source
	Message    string
	StatusCode int    // HTTP status code, 0 when no response was received
	Timeout    bool   // transport reported a timeout
	URL        string // request URL (for logs)
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s (caused by: %v)", e.Source, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Source, e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *FetchError) Unwrap() error {
	return e.Err
}

func newNetworkError(src Source, message string, err error) *FetchError {
	fe := &FetchError{
		Kind:    KindNetwork,
		Source:  src,
		Message: message,
		Err:     err,
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		fe.URL = urlErr.URL
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		fe.Message = fmt.Sprintf("%s (DNS lookup failed for %s)", message, dnsErr.Name)
	}
	if os.IsTimeout(err) {
		fe.Timeout = true
	}
	return fe
}

func newStatusError(src Source, statusCode int, rawURL string) *FetchError {
	return &FetchError{
		Kind:       KindNetwork,
		Source:     src,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		URL:        rawURL,
	}
}

func newParseError(src Source, message string, err error) *FetchError {
	return &FetchError{
		Kind:    KindParse,
		Source:  src,
		Message: message,
		Err:     err,
	}
}

// IsNetworkError reports whether err is a network-level fetch failure
func IsNetworkError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindNetwork
}

// IsParseError reports whether err is a parse failure
func IsParseError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindParse
}

// ShortMessage returns the one-line text shown on the display for a failed fetch.
func ShortMessage(err error) string {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return "Error"
	}
	if fe.Source == SourceForecast {
		return "Forecast fetch error"
	}
	return "HTTP Error"
}
