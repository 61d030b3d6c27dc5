package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		in       int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatWithCommas(tc.in))
	}
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"Best", "sec", "ret"}, SplitWords("  Best sec,ret\t"))
	assert.Empty(t, SplitWords(" , ; "))
}

func TestSaveAndLoadTOML(t *testing.T) {
	type section struct {
		MinWordSize int    `toml:"min_word_size"`
		Name        string `toml:"name"`
	}
	type doc struct {
		Anagram section `toml:"anagram"`
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveTOMLFile(doc{Anagram: section{MinWordSize: 3, Name: "x"}}, path))
	assert.True(t, FileExists(path))

	var loaded doc
	require.NoError(t, LoadTOMLFile(path, &loaded))
	assert.Equal(t, 3, loaded.Anagram.MinWordSize)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(raw, "anagram")
	require.True(t, ok)

	v, ok := ExtractInt64(sec, "min_word_size")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	s, ok := ExtractString(sec, "name")
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = ExtractBool(sec, "name")
	assert.False(t, ok)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cfg")
	res := CheckDirStatus(dir)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.NoError(t, res.Error)
}

func TestGetAbsolutePath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(wd, "config.toml"), GetAbsolutePath("config.toml"))
	assert.Equal(t, "/etc/anagrams.toml", GetAbsolutePath("/etc/anagrams.toml"))
	assert.Equal(t, "unknown", GetAbsolutePath(""))
}
