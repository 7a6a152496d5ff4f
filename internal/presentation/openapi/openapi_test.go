package openapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpec(t *testing.T) {
	spec := string(Spec)

	assert.True(t, strings.HasPrefix(spec, "openapi: 3.0"))
	for _, path := range []string{"/api/create-payment:", "/api/status:", "/api/v1/auth/token:", "/api/v1/checkouts:", "/health:"} {
		assert.Contains(t, spec, path)
	}
}
