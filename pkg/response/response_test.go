package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindIsRegistered(t *testing.T) {
	for i, info := range kinds {
		kind := Kind(i)
		assert.NotZero(t, info.status, "kind %d has no HTTP status", i)
		assert.NotEmpty(t, kind.Symbol(), "kind %d has no symbol", i)
		assert.NotEmpty(t, kind.Details(), "kind %d has no details", i)
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := WrapError(KindInternal, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "SERVER_ERROR")
	assert.Contains(t, err.Error(), "disk on fire")

	var appErr *Error
	require.True(t, errors.As(fmt.Errorf("outer: %w", err), &appErr))
	assert.Equal(t, KindInternal, appErr.Kind)
}

func TestErrorEnvelopeHidesCause(t *testing.T) {
	err := WrapError(KindInternal, errors.New("secret infrastructure detail"))
	env := err.Envelope()

	assert.Equal(t, "error", env.Status)
	assert.Equal(t, http.StatusInternalServerError, env.Code)
	assert.Equal(t, "SERVER_ERROR", env.Message)
	assert.NotContains(t, env.Details, "secret")
}

func TestOKWritesSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "SERVER_CREATED", "The server has been created", gin.H{"id": "abc"})

	require.Equal(t, http.StatusOK, w.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Equal(t, "SERVER_CREATED", env.Message)
	assert.NotNil(t, env.Data)
}

func TestFailWritesErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("KindedError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Fail(c, NewError(KindUnknownServer))

		require.Equal(t, http.StatusNotFound, w.Code)

		var env Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "UNKNOWN_SERVER", env.Message)
	})

	t.Run("PlainErrorBecomesServerError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Fail(c, errors.New("boom"))

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var env Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "SERVER_ERROR", env.Message)
	})

	t.Run("WrappedKindedError", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Fail(c, fmt.Errorf("redeem: %w", NewError(KindInviteCodeExpired)))

		require.Equal(t, http.StatusGone, w.Code)

		var env Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "INVITE_CODE_EXPIRED", env.Message)
	})
}
