package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EMAIL_EXISTS", "Email Exists"},
		{"INVALID_LOGIN_CREDENTIALS", "Invalid Login Credentials"},
		{"WEAK_PASSWORD : Password should be at least 6 characters", "Weak Password : Password Should Be At Least 6 Characters"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", "Too Many Attempts Try Later"},
		{"expired oob code", "Expired Oob Code"},
		{"", ""},
		{"2FA_REQUIRED", "2fa Required"},
		{"a.b-c", "A.B-C"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMessage(tt.in))
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Run("provider message", func(t *testing.T) {
		err := fmt.Errorf("call: %w", &ProviderError{StatusCode: 400, Message: "EMAIL_NOT_FOUND"})
		assert.Equal(t, "Email Not Found", FormatError(err))
	})

	t.Run("provider without message", func(t *testing.T) {
		assert.Equal(t, "Request Failed With Status Code 502", FormatError(&ProviderError{StatusCode: 502}))
	})

	t.Run("transport error hides url", func(t *testing.T) {
		err := &url.Error{Op: "Post", URL: "https://example.test/v1/accounts:signUp?key=secret", Err: context.DeadlineExceeded}
		got := FormatError(err)
		assert.Equal(t, "Context Deadline Exceeded", got)
		assert.NotContains(t, got, "secret")
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "User Not Found", FormatError(ErrUserNotFound))
		assert.Equal(t, "Boom", FormatError(errors.New("boom")))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, FormatError(nil))
	})
}

func TestParseProviderError(t *testing.T) {
	pe := parseProviderError(400, []byte(`{"error":{"code":400,"message":"INVALID_OOB_CODE","errors":[]}}`))
	assert.Equal(t, 400, pe.StatusCode)
	assert.Equal(t, "INVALID_OOB_CODE", pe.Message)

	pe = parseProviderError(500, []byte(`<html>oops</html>`))
	assert.Empty(t, pe.Message)
	assert.Equal(t, "request failed with status code 500", pe.Error())
}
