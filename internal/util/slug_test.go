package util

import "testing"

func TestNormalizeTagSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "GOLANG", "golang"},
		{"spaces to dashes", "slow burn", "slow-burn"},
		{"underscores to dashes", "slow_burn", "slow-burn"},
		{"already normalized", "slow-burn", "slow-burn"},
		{"trim whitespace", "  recipes  ", "recipes"},
		{"tabs and spaces", "to\t read", "to-read"},
		{"emoji removal", "🐉 Dragons!", "dragons"},
		{"accents folded", "Café Notes", "cafe-notes"},
		{"slash separated", "sci-fi/fantasy", "sci-fi-fantasy"},
		{"apostrophe removal", "don't", "dont"},
		{"collapse dashes", "--slow--burn--", "slow-burn"},
		{"empty string", "", ""},
		{"blank", "   ", ""},
		{"only special chars kept as typed", "!@#$%", "!@#$%"},
		{"numbers allowed", "Top 10 Videos", "top-10-videos"},
		{"cyrillic", "Книги", "книги"},
		{"cyrillic words", "Мои  Книги", "мои-книги"},
		{"japanese", "日本語", "日本語"},
		{"korean", "한국어", "한국어"},
		{"greek keeps its accents", "Σοφία", "σοφία"},
		{"devanagari", "हिन्दी", "हिन्दी"},
		{"emoji only", "🎵", "🎵"},
		{"emoji pair", "🎵 🎸", "🎵-🎸"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTagSlug(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTagSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNameKey(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Reading", "reading", true},
		{" Reading ", "READING", true},
		{"Read  Later", "read later", true},
		{"Straße", "STRASSE", true},
		{"Reading", "Readings", false},
		{"ﬁles", "files", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			got := NameKey(tt.a) == NameKey(tt.b)
			if got != tt.same {
				t.Errorf("NameKey(%q)==NameKey(%q) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	if got := CleanName("  Read \t Later  "); got != "Read Later" {
		t.Errorf("CleanName = %q, want %q", got, "Read Later")
	}
}
