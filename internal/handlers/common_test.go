package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallergestion/workshop-api/internal/httperr"
)

func TestWriteBusinessStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		code   string
		status int
	}{
		{httperr.CodePermissionDenied, http.StatusForbidden},
		{"appointment_not_found", http.StatusNotFound},
		{"repair_not_found", http.StatusNotFound},
		{httperr.CodeClientNotFound, http.StatusBadRequest},
		{httperr.CodeServiceNotFound, http.StatusBadRequest},
		{httperr.CodeEmptyServices, http.StatusBadRequest},
		{httperr.CodeInvalidDateOrTime, http.StatusBadRequest},
		{httperr.CodeInvalidState, http.StatusBadRequest},
		{"invalid_transition", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handled := writeBusiness(c, httperr.ErrBusiness(tc.code))

			require.True(t, handled)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestWriteBusinessIgnoresOtherErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handled := writeBusiness(c, assert.AnError)

	require.False(t, handled)
	assert.Equal(t, http.StatusOK, w.Code)
}
