package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{name: "simple", input: "cafe", shouldErr: false},
		{name: "uuid", input: "0190a5a4-7b3c-7d2e-8f00-1234567890ab", shouldErr: false},
		{name: "email like", input: "alice@example.com", shouldErr: false},
		{name: "underscore inside", input: "joe_coffee", shouldErr: false},
		{name: "space", input: "joe coffee", shouldErr: true},
		{name: "slash", input: "a/b", shouldErr: true},
		{name: "leading dash", input: "-cafe", shouldErr: true},
		{name: "nul byte", input: "cafe\x00x", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Identifier.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
