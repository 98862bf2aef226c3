package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"case insensitive scheme", "bearer tok", "tok", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic dXNlcg==", "", true},
		{"no token", "Bearer", "", true},
		{"extra parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientKey(t *testing.T) {
	r := &http.Request{RemoteAddr: "192.0.2.7:51234"}
	assert.Equal(t, "192.0.2.7", clientKey(r))

	r = &http.Request{RemoteAddr: "weird"}
	assert.Equal(t, "weird", clientKey(r))
}
