package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontMatter(t *testing.T) {
	text := "---\nauthor: alice\ncreated: 2024-03-01T12:00:00Z\nrealm: chess\nbackground: https://img.example/bg.png\n---\n# Title\nthree more words"
	fm, body, err := SplitFrontMatter(text)
	require.NoError(t, err)
	assert.Equal(t, "# Title\nthree more words", body)
	assert.Equal(t, "alice", fm.Author)
	assert.Equal(t, "chess", fm.Realm)
	assert.True(t, fm.Created.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 4, fm.Length, "length defaults to the body word count")

	title := fm.BlogTitle()
	require.NotNil(t, title)
	assert.Equal(t, "https://img.example/bg.png", title.Background)
}

func TestSplitFrontMatterExplicitLength(t *testing.T) {
	fm, _, err := SplitFrontMatter("---\r\nauthor: bob\r\nlength: 1200\r\n---\r\nbody")
	require.NoError(t, err)
	assert.Equal(t, 1200, fm.Length)
}

func TestSplitFrontMatterAbsent(t *testing.T) {
	for _, text := range []string{"", "# just a post", "---", "---\nauthor: x\nno closing line"} {
		fm, body, err := SplitFrontMatter(text)
		assert.ErrorIs(t, err, ErrNoFrontMatter, "%q", text)
		assert.Equal(t, text, body)
		assert.Nil(t, fm.BlogTitle())
	}
}

func TestSplitFrontMatterMalformed(t *testing.T) {
	_, body, err := SplitFrontMatter("---\nauthor: [x\n---\nbody")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFrontMatter)
	assert.Equal(t, "---\nauthor: [x\n---\nbody", body)
}
