package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
		mode string
	}{
		{"production", Production, "release"},
		{" Staging ", Staging, "release"},
		{"testing", Testing, "test"},
		{"", Development, "debug"},
		{"qa", Development, "debug"},
	}
	for _, tt := range tests {
		got := ParseEnvironment(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.mode, got.GinMode(), tt.in)
	}
	assert.True(t, Production.IsProduction())
}
