package parent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusResult_IsAdmin(t *testing.T) {
	tests := []struct {
		name   string
		result *StatusResult
		want   bool
	}{
		{
			name:   "管理者",
			result: &StatusResult{StatusCode: 200, Body: []byte(`{"isAdmin":true,"credits":10}`)},
			want:   true,
		},
		{
			name:   "管理者ではない",
			result: &StatusResult{StatusCode: 200, Body: []byte(`{"isAdmin":false}`)},
			want:   false,
		},
		{
			name:   "isAdminが無い",
			result: &StatusResult{StatusCode: 200, Body: []byte(`{"credits":10}`)},
			want:   false,
		},
		{
			name:   "isAdminが真偽値ではない",
			result: &StatusResult{StatusCode: 200, Body: []byte(`{"isAdmin":"yes"}`)},
			want:   false,
		},
		{
			name:   "2xx以外",
			result: &StatusResult{StatusCode: 403, Body: []byte(`{"isAdmin":true}`)},
			want:   false,
		},
		{
			name:   "JSONではない",
			result: &StatusResult{StatusCode: 200, Body: []byte(`<html>`)},
			want:   false,
		},
		{
			name:   "nil",
			result: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.IsAdmin())
		})
	}
}
