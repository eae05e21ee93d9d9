package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), "user-100", "user@example.com", "authenticated")

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-100", id)
		assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
		assert.Equal(t, "authenticated", GetUserRoleFromContext(ctx))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("Empty id is anonymous", func(t *testing.T) {
		_, ok := GetUserIDFromContext(SetUserContext(context.Background(), "", "", ""))
		assert.False(t, ok)
	})
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, "x", *StrPtr("x"))
	assert.Equal(t, "x", PtrString(StrPtr("x")))
	assert.Equal(t, "", PtrString(nil))
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, w.Body.String())
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "bad input", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body["error"])
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Quantity int `json:"quantity"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"quantity":2}`},
		{name: "Empty", body: ``, wantErr: "request body is empty"},
		{name: "UnknownField", body: `{"qty":2}`, wantErr: "invalid request body"},
		{name: "Trailing", body: `{"quantity":2}{"quantity":3}`, wantErr: "single JSON object"},
		{name: "WrongType", body: `{"quantity":"two"}`, wantErr: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, 2, p.Quantity)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
