package category

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.True(t, got.Valid())
	}
}

func TestParseAliasesAndCase(t *testing.T) {
	c, err := Parse("  General ")
	require.NoError(t, err)
	assert.Equal(t, Veterinarian, c)

	c, err = Parse("HOSPITAL")
	require.NoError(t, err)
	assert.Equal(t, Hospital, c)
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := Parse("clinic-owner")
	require.Error(t, err)
	assert.False(t, Unknown.Valid())
}

func TestJSONText(t *testing.T) {
	b, err := json.Marshal(map[string]Category{"c": Student})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"student"}`, string(b))

	var out map[string]Category
	require.NoError(t, json.Unmarshal([]byte(`{"c":"hospital"}`), &out))
	assert.Equal(t, Hospital, out["c"])

	_, err = json.Marshal(Unknown)
	require.Error(t, err)
}
