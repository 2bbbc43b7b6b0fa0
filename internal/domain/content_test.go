package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentType(t *testing.T) {
	for _, ct := range ContentTypes {
		got, err := ParseContentType(string(ct))
		require.NoError(t, err)
		assert.Equal(t, ct, got)
	}

	_, err := ParseContentType("podcast")
	assert.Error(t, err)

	_, err = ParseContentType("YouTube")
	assert.Error(t, err, "types are case sensitive")
}

func TestContentFilter_Matches(t *testing.T) {
	c := &Content{Type: ContentNote, CategoryID: "category-1", TagIDs: []string{"tag-a", "tag-b"}}

	tests := []struct {
		name   string
		filter ContentFilter
		want   bool
	}{
		{"empty filter", ContentFilter{}, true},
		{"type match", ContentFilter{Type: ContentNote}, true},
		{"type mismatch", ContentFilter{Type: ContentYouTube}, false},
		{"category match", ContentFilter{CategoryID: "category-1"}, true},
		{"category mismatch", ContentFilter{CategoryID: "category-2"}, false},
		{"tag match", ContentFilter{TagID: "tag-b"}, true},
		{"tag mismatch", ContentFilter{TagID: "tag-c"}, false},
		{"all match", ContentFilter{Type: ContentNote, CategoryID: "category-1", TagID: "tag-a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(c))
		})
	}
}

func TestContent_Timestamps(t *testing.T) {
	c := &Content{}
	c.InitTimestamps()
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)

	before := c.UpdatedAt
	c.Touch()
	assert.False(t, c.UpdatedAt.Before(before))
}
