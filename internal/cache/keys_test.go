package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		objectType  string
		identifier  string
		params      []string
		expectedKey string
	}{
		{
			name:        "no params",
			service:     ServiceContent,
			objectType:  ObjectParsed,
			identifier:  "abc123",
			expectedKey: "civicquiz:content:parsed:abc123",
		},
		{
			name:        "empty params",
			service:     ServiceContent,
			objectType:  "stream",
			identifier:  "01HZX",
			params:      []string{},
			expectedKey: "civicquiz:content:stream:01HZX",
		},
		{
			name:        "params joined by underscore",
			service:     ServiceContent,
			objectType:  ObjectParsed,
			identifier:  "abc123",
			params:      []string{"final", "v2"},
			expectedKey: "civicquiz:content:parsed:abc123:final_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.service, tt.objectType, tt.identifier, tt.params...))
		})
	}
}

func TestParsedContentKey(t *testing.T) {
	a := ParsedContentKey(`{"topic":"Congress"}`)
	b := ParsedContentKey(`{"topic":"Congress"}`)
	c := ParsedContentKey(`{"topic":"Courts"}`)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^civicquiz:content:parsed:[0-9a-f]{1,16}$`, a)
}
