package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantOK     bool
	}{
		{
			name:       "defaults",
			query:      "",
			wantLimit:  50,
			wantOffset: 0,
			wantOK:     true,
		},
		{
			name:       "explicit values",
			query:      "limit=10&offset=20",
			wantLimit:  10,
			wantOffset: 20,
			wantOK:     true,
		},
		{
			name:   "non-numeric limit",
			query:  "limit=abc",
			wantOK: false,
		},
		{
			name:   "negative limit",
			query:  "limit=-5",
			wantOK: false,
		},
		{
			name:   "non-numeric offset",
			query:  "offset=ten",
			wantOK: false,
		},
		{
			name:   "negative offset",
			query:  "offset=-1",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/cases?"+tt.query, nil)

			limit, offset, ok := parsePagination(c)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantLimit, limit)
				assert.Equal(t, tt.wantOffset, offset)
				return
			}
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_PAGINATION")
		})
	}
}
