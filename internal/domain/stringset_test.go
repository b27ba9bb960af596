package domain

import (
	"encoding/json/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet_AddAndOrder(t *testing.T) {
	s := NewStringSet()

	assert.True(t, s.Add("Album One"))
	assert.True(t, s.Add("Album Two"))
	assert.False(t, s.Add("Album One"), "duplicate add should report no change")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"Album One", "Album Two"}, s.Values())
	assert.True(t, s.Contains("Album Two"))
	assert.False(t, s.Contains("album two"), "membership is case-sensitive")
}

func TestStringSet_ValuesIsACopy(t *testing.T) {
	s := NewStringSet()
	s.Add("a")

	v := s.Values()
	v[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.Values())
}

func TestStringSet_JSONRoundTrip(t *testing.T) {
	s := NewStringSet()
	s.Add("Rock")
	s.Add("Pop")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["Rock","Pop"]`, string(data))

	var back StringSet
	require.NoError(t, json.Unmarshal([]byte(`["Rock","Pop","Rock"]`), &back))
	assert.Equal(t, []string{"Rock", "Pop"}, back.Values())
}

func TestStringSet_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewStringSet())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
