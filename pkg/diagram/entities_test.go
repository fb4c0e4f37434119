package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntities(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		decoded string
	}{
		{
			name:    "named entity",
			input:   "A[Tom #amp; Jerry]",
			decoded: "A[Tom &amp; Jerry]",
		},
		{
			name:    "numeric entity",
			input:   "A[I #9829; you]",
			decoded: "A[I &#9829; you]",
		},
		{
			name:    "plain text untouched",
			input:   "A[# not an entity ;]",
			decoded: "A[# not an entity ;]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := encodeEntities(tt.input)
			assert.NotContains(t, encoded, "&", "no raw ampersands reach the parser")
			assert.Equal(t, tt.decoded, string(decodeEntities([]byte(encoded))))
		})
	}
}

func TestEncodeEntities_StyleColorGuard(t *testing.T) {
	encoded := encodeEntities("style a fill:#faa;")
	assert.Equal(t, "style a fill:#faa", encoded, "color hash keeps its value, trailing semicolon dropped")

	encoded = encodeEntities("classDef hot fill:#f00;")
	assert.Equal(t, "classDef hot fill:#f00", encoded)
}
