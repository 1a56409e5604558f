// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into the terms used for lexical indexing and
// lexical query matching. The same tokenizer must be applied on both
// sides or scores lose meaning.
type Tokenizer func(text string) []string

// DefaultTokenizer lowercases the input and splits on any rune that is
// not a letter or digit. It handles non-ASCII scripts (Hangul, CJK)
// the same way as Latin text: letters group into terms, everything
// else separates them.
func DefaultTokenizer(text string) []string {
	lowered := strings.ToLower(text)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
