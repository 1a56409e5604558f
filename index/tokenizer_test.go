package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTokenizer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and splits on whitespace",
			input: "Soft Bath Mat",
			want:  []string{"soft", "bath", "mat"},
		},
		{
			name:  "splits on punctuation",
			input: "non-slip, quick-dry",
			want:  []string{"non", "slip", "quick", "dry"},
		},
		{
			name:  "keeps digits",
			input: "40x60cm mat",
			want:  []string{"40x60cm", "mat"},
		},
		{
			name:  "handles hangul",
			input: "욕실 매트 (미끄럼방지)",
			want:  []string{"욕실", "매트", "미끄럼방지"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultTokenizer(tt.input)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}
