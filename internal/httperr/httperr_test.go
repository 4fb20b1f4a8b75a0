package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorHelpers(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrSlotConflict(42))

	assert.True(t, IsBusiness(err, CodeSlotConflict))
	assert.False(t, IsBusiness(err, CodeNotFound))
	assert.Equal(t, CodeSlotConflict, Code(err))

	id, ok := ConflictingID(err)
	require.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = ConflictingID(ErrBusiness(CodeNotFound))
	assert.False(t, ok)
	assert.Equal(t, "", Code(errors.New("boom")))
}

func TestStoreWrapping(t *testing.T) {
	assert.NoError(t, Store("op", nil))

	biz := ErrBusiness(CodeInvalidAmount)
	assert.Equal(t, biz, Store("op", biz))

	wrapped := Store("list appointments", errors.New("connection reset"))
	assert.True(t, IsStore(wrapped))
	assert.Contains(t, wrapped.Error(), "list appointments")

	assert.Same(t, wrapped, Store("again", wrapped))
}

func TestPgErrorDetection(t *testing.T) {
	excl := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	uniq := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, IsExclusionConflict(excl))
	assert.False(t, IsExclusionConflict(uniq))
	assert.True(t, IsUniqueViolation(uniq))
	assert.False(t, IsUniqueViolation(errors.New("x")))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"slot conflict", ErrSlotConflict(7), http.StatusConflict, CodeSlotConflict},
		{"not found", ErrBusiness(CodeNotFound), http.StatusNotFound, CodeNotFound},
		{"invalid amount", ErrBusiness(CodeInvalidAmount), http.StatusUnprocessableEntity, CodeInvalidAmount},
		{"store", Store("get", errors.New("timeout")), http.StatusServiceUnavailable, "store_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Respond(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantCode != "internal_error" {
				assert.Equal(t, tt.wantCode, c.GetString(ContextErrorCode))
			}
			if tt.wantCode == CodeSlotConflict {
				assert.Equal(t, uint(7), body.ConflictingID)
			}
		})
	}
}
