// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{NotFound(errors.New("nope")), http.StatusNotFound},
		{errors.WithMessage(BadRequest(errors.New("bad")), "wrapped"), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tt.status, rec.Code)
	}
}

func TestParse(t *testing.T) {
	_, err := ParsePublicKey("admin", "not-a-key")
	assert.Error(t, err)

	v, err := ParseUint("top", "", 7)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	_, err = ParseUint("top", "-1", 7)
	assert.Error(t, err)
}
