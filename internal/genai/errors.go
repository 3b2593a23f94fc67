package genai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Generation failures are classified into a small typed taxonomy so callers
// can branch without matching message text. Classification prefers HTTP
// status codes and wrapped error kinds; substring matching on the message is
// kept only as a last resort for opaque transport errors.
var (
	ErrConfig      = errors.New("genai: configuration error")
	ErrTimeout     = errors.New("genai: request timed out")
	ErrNetwork     = errors.New("genai: network error")
	ErrRateLimited = errors.New("genai: rate limited")
	ErrParse       = errors.New("genai: unparseable response")
	ErrUnavailable = errors.New("genai: model unavailable")
)

func classifyStatus(status int, body string) error {
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("%w: API key rejected (status %d)", ErrConfig, status)
	case status == 429:
		return fmt.Errorf("%w: quota or rate limit exceeded (status %d)", ErrRateLimited, status)
	case status == 404:
		return fmt.Errorf("%w: model not found (status %d)", ErrUnavailable, status)
	case status >= 500:
		return fmt.Errorf("%w: service error (status %d)", ErrUnavailable, status)
	default:
		return fmt.Errorf("%w: unexpected status %d: %s", ErrUnavailable, status, body)
	}
}

func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	// Opaque error from the transport: fall back to message matching.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(msg, "network"), strings.Contains(msg, "connection"):
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	case strings.Contains(msg, "api key"), strings.Contains(msg, "unauthorized"):
		return fmt.Errorf("%w: %v", ErrConfig, err)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}
