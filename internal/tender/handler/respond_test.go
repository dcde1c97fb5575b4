package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	t.Run("round trip with NUL padding", func(t *testing.T) {
		original := map[string]any{
			"tenderId":       "T1",
			"title":          "Road",
			"estimatedValue": float64(50000),
			"tags":           []any{"infra", "roads"},
		}
		encoded, err := json.Marshal(original)
		require.NoError(t, err)
		encoded = append(encoded, 0, 0, 0)

		decoded, err := decodePayload(encoded)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		decoded, err := decodePayload([]byte("  [1,2,3] \n\x00"))
		require.NoError(t, err)
		assert.Equal(t, []any{float64(1), float64(2), float64(3)}, decoded)
	})

	t.Run("empty response is an error", func(t *testing.T) {
		_, err := decodePayload([]byte("\x00\x00"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		_, err := decodePayload([]byte("{not json"))
		assert.Error(t, err)
	})
}
