package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected []string
	}{
		{
			name:     "ascii comma and space",
			title:    "Clean Code, 代码整洁之道",
			expected: []string{"Clean", "Code", "代码整洁之道"},
		},
		{
			name:     "full-width comma",
			title:    "Clean Code，代码整洁之道",
			expected: []string{"Clean", "Code", "代码整洁之道"},
		},
		{
			name:     "mixed separators and runs",
			title:    "  Go ,, ，  Programming\t\tLanguage \n",
			expected: []string{"Go", "Programming", "Language"},
		},
		{
			name:     "single word",
			title:    "Refactoring",
			expected: []string{"Refactoring"},
		},
		{
			name:     "duplicates are kept",
			title:    "go go",
			expected: []string{"go", "go"},
		},
		{
			name:     "empty title",
			title:    "",
			expected: []string{},
		},
		{
			name:     "only separators",
			title:    " , ， \t ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.title)
			assert.Equal(t, tt.expected, got)
			for _, token := range got {
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestNewSearchQuery(t *testing.T) {
	t.Run("keeps case and lowercase copies", func(t *testing.T) {
		q, err := NewSearchQuery("  Clean Code  ")

		require.NoError(t, err)
		assert.Equal(t, "Clean Code", q.Raw)
		assert.Equal(t, []string{"Clean", "Code"}, q.Tokens)
		assert.Equal(t, []string{"clean", "code"}, q.Lower)
		assert.False(t, q.IsEmpty())
	})

	t.Run("rejects whitespace title", func(t *testing.T) {
		q, err := NewSearchQuery("   ")

		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.True(t, q.IsEmpty())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewSearchQuery("")

		assert.ErrorIs(t, err, ErrEmptyQuery)
	})
}

func TestSearchQuery_Matches(t *testing.T) {
	q, err := NewSearchQuery("Clean, 代码")
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		file     string
		expected bool
	}{
		{"exact in name", "books/Clean_Code.epub", "Clean_Code.epub", true},
		{"case-insensitive in name", "books/clean-code.epub", "clean-code.epub", true},
		{"match in directory only", "Clean/book.epub", "book.epub", true},
		{"cjk exact", "cn/代码整洁之道.epub", "代码整洁之道.epub", true},
		{"no match", "books/Refactoring.epub", "Refactoring.epub", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, q.Matches(tt.path, tt.file))
		})
	}
}
