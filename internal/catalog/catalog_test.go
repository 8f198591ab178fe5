package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVideo_CopiesTags(t *testing.T) {
	tags := []string{"#cat", "#animal"}
	v := NewVideo("Amazing Cats", "amazing_cats_video_id", tags)

	tags[0] = "#dog"
	assert.Equal(t, []string{"#cat", "#animal"}, v.Tags())

	got := v.Tags()
	got[1] = "#changed"
	assert.Equal(t, []string{"#cat", "#animal"}, v.Tags())
}

func TestCatalog_GetAndFlag(t *testing.T) {
	c := New(
		NewVideo("Amazing Cat Video", "abc1", []string{"#cat"}),
		NewVideo("Another Cat Video", "abc2", []string{"#cat"}),
	)
	require.Equal(t, 2, c.Len())

	v, ok := c.Get("abc1")
	require.True(t, ok)
	assert.Equal(t, "Amazing Cat Video", v.Title())

	_, ok = c.Get("ABC1")
	assert.False(t, ok, "ids are case sensitive")

	assert.True(t, c.SetFlag("abc1", true, "spam"))
	assert.True(t, v.Flagged())
	assert.Equal(t, "spam", v.FlagReason())

	assert.True(t, c.SetFlag("abc1", false, ""))
	assert.False(t, v.Flagged())
	assert.Empty(t, v.FlagReason())

	assert.False(t, c.SetFlag("missing", true, "x"))
}

func TestCatalog_AddDuplicate(t *testing.T) {
	c := New(NewVideo("One", "id1", nil))
	err := c.Add(NewVideo("Other", "id1", nil))
	assert.True(t, errors.Is(err, ErrDuplicateID))

	v, _ := c.Get("id1")
	assert.Equal(t, "One", v.Title())
	assert.Len(t, c.All(), 1)
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	v, ok := c.Get("amazing_cats_video_id")
	require.True(t, ok)
	assert.Equal(t, "Amazing Cats", v.Title())
	assert.Equal(t, []string{"#cat", "#animal"}, v.Tags())

	nothing, ok := c.Get("nothing_video_id")
	require.True(t, ok)
	assert.Empty(t, nothing.Tags())
}

func TestParseText_Errors(t *testing.T) {
	_, err := ParseText(strings.NewReader("only a title\n"))
	assert.Error(t, err)

	_, err = ParseText(strings.NewReader("A | a |\nB | a |\n"))
	assert.True(t, errors.Is(err, ErrDuplicateID))

	_, err = ParseText(strings.NewReader(" | id | #x\n"))
	assert.Error(t, err)
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "videos.yaml")
	doc := `videos:
  - title: Amazing Cat Video
    id: abc1
    tags: ["#cat"]
  - title: Another Cat Video
    id: abc2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	v, ok := c.Get("abc2")
	require.True(t, ok)
	assert.Empty(t, v.Tags())
}

func TestLoadFile_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "videos.txt")
	require.NoError(t, os.WriteFile(path, []byte("Funny Dogs | funny_dogs_video_id |  #dog , #animal\n\n"), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	v, ok := c.Get("funny_dogs_video_id")
	require.True(t, ok)
	assert.Equal(t, []string{"#dog", "#animal"}, v.Tags())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestParseYAML_Empty(t *testing.T) {
	c, err := ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	_, err = ParseYAML(strings.NewReader("videos: [oops"))
	assert.Error(t, err)
}
