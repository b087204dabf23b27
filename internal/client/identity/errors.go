package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

var (
	ErrUserNotFound   = errors.New("USER_NOT_FOUND")
	ErrMalformedToken = errors.New("malformed identity token")
)

// ProviderError is a non-2xx answer from the identity provider. Message
// carries the machine-readable code, e.g. "INVALID_LOGIN_CREDENTIALS" or
// "WEAK_PASSWORD : Password should be at least 6 characters".
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

func parseProviderError(statusCode int, body []byte) *ProviderError {
	var payload struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	pe := &ProviderError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &payload); err == nil {
		pe.Message = payload.Error.Message
	}
	return pe
}

// FormatError turns any failure of a provider call into display text.
// Provider codes win; otherwise the transport error text is used, without
// the request URL (which would expose the API key).
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return NormalizeMessage(pe.Error())
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return NormalizeMessage(ue.Err.Error())
	}
	return NormalizeMessage(err.Error())
}

// NormalizeMessage lower-cases raw, turns underscores into spaces and
// upper-cases the first letter of every word. A word starts at an ASCII
// letter or digit that does not follow another one.
func NormalizeMessage(raw string) string {
	s := strings.ReplaceAll(strings.ToLower(raw), "_", " ")

	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		word := isWordRune(r)
		if word && !inWord {
			r = unicode.ToUpper(r)
		}
		inWord = word
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}
