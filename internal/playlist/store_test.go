package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateCaseInsensitive(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create("My List"))

	assert.ErrorIs(t, s.Create("my list"), ErrExists)
	assert.ErrorIs(t, s.Create("MY LIST"), ErrExists)

	assert.True(t, s.Exists("mY lIsT"))
	name, ok := s.DisplayName("my list")
	require.True(t, ok)
	assert.Equal(t, "My List", name)
	assert.Equal(t, []string{"My List"}, s.Names())
}

func TestStore_AddKeepsOrderAndRejectsDuplicates(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create("Fun"))

	added, err := s.Add("fun", "b")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add("FUN", "a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add("Fun", "b")
	require.NoError(t, err)
	assert.False(t, added)

	ids, ok := s.Members("fun")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, ids)

	_, err = s.Add("missing", "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_MembersIsACopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create("x"))
	_, _ = s.Add("x", "a")

	ids, _ := s.Members("x")
	ids[0] = "mutated"

	again, _ := s.Members("x")
	assert.Equal(t, []string{"a"}, again)

	_, ok := s.Members("nope")
	assert.False(t, ok)
}

func TestStore_RemoveClearDelete(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create("List"))
	_, _ = s.Add("list", "a")
	_, _ = s.Add("list", "b")
	_, _ = s.Add("list", "c")

	removed, err := s.Remove("LIST", "b")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove("list", "b")
	require.NoError(t, err)
	assert.False(t, removed)

	ids, _ := s.Members("list")
	assert.Equal(t, []string{"a", "c"}, ids)

	require.NoError(t, s.Clear("list"))
	ids, ok := s.Members("list")
	assert.True(t, ok)
	assert.Empty(t, ids)

	assert.ErrorIs(t, s.Clear("other"), ErrNotFound)
	_, err = s.Remove("other", "a")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.True(t, s.Delete("LiSt"))
	assert.False(t, s.Delete("list"))
	assert.False(t, s.Exists("list"))
	assert.Empty(t, s.Names())

	// the name is free again after deletion
	assert.NoError(t, s.Create("list"))
}
