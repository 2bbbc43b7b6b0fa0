package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty string", "", false},
		{"plain text", "A plain note with no markup.", false},
		{"angle brackets but not HTML", "Use <stdin> for input and 2 > 1 is true", false},
		{"paragraph", "<p>This is a paragraph.</p>", true},
		{"self-closing break", "Line one<br/>Line two", true},
		{"link", `Click <a href="https://example.com">here</a>`, true},
		{"list", "<ul><li>Item 1</li></ul>", true},
		{"uppercase", "<P>Uppercase paragraph</P>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsHTML(tt.input))
		})
	}
}

func TestHTMLToMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text unchanged", "Remember to read this.", "Remember to read this."},
		{"markdown unchanged", "**already** markdown", "**already** markdown"},
		{"paragraphs", "<p>First paragraph.</p><p>Second paragraph.</p>", "First paragraph.\n\nSecond paragraph."},
		{"bold", "This is <b>bold</b> and <strong>strong</strong> text.", "This is **bold** and **strong** text."},
		{"link", `Saved from <a href="https://example.com">example</a>.`, "Saved from [example](https://example.com)."},
		{"unordered list", "<ul><li>Item 1</li><li>Item 2</li></ul>", "- Item 1\n- Item 2"},
		{"heading", "<h1>Title</h1><p>Content</p>", "# Title\n\nContent"},
		{"blockquote", "<blockquote>A wise quote</blockquote>", "> A wise quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTMLToMarkdown(tt.input))
		})
	}
}
