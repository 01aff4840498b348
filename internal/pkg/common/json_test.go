package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: `{"title": "a"}`,
			want:  `{"title": "a"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"title\": \"a\"}\n```",
			want:  `{"title": "a"}`,
		},
		{
			name:  "plain fence",
			input: "```\n{\"title\": \"a\"}\n```",
			want:  "",
		},
		{
			name:  "opening fence without closing fence",
			input: "```json\n{\"title\": \"a\"}",
			want:  `{"title": "a"}`,
		},
		{
			name:  "leading prose before fence",
			input: "こちらが献立です。\n```json\n{\"title\": \"a\"}\n```\n以上です。",
			want:  `{"title": "a"}`,
		},
		{
			name:  "whitespace only trimming",
			input: "  \n{\"title\": \"a\"}\n  ",
			want:  `{"title": "a"}`,
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.input))
		})
	}
}

func TestExtractJSONIdempotent(t *testing.T) {
	input := "```json\n{\"title\": \"a\"}\n```"
	once := ExtractJSON(input)
	assert.Equal(t, once, ExtractJSON(once))
}

func TestParseJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, ParseJSON(`{"a": 1}`, &v))
	assert.Contains(t, v, "a")

	assert.Error(t, ParseJSON(`{"a": 1} trailing`, &v))
	assert.Error(t, ParseJSON(`not json`, &v))
}
