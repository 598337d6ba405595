package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentials_Incomplete(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"all present", Credentials{ImgBB: "a", SearchAPI: "b", DeepSeek: "c"}, false},
		{"all missing", Credentials{}, true},
		{"only upload key", Credentials{ImgBB: "a"}, true},
		{"only search key", Credentials{SearchAPI: "b"}, true},
		{"only valuation key", Credentials{DeepSeek: "c"}, true},
		{"one missing forces degradation", Credentials{ImgBB: "a", SearchAPI: "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.creds.Incomplete())
		})
	}
}
