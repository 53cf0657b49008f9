// Package tokenizer counts prompt tokens with the model's BPE encoding.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/care-moments/internal/domain/textgen"
)

const fallbackEncoding = "cl100k_base"

// Tiktoken implements textgen.TokenCounter.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// New loads the encoding for model, falling back to cl100k_base for unknown models.
// Loading may fetch the vocabulary over the network on first use.
func New(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("load tiktoken encoding: %w", err)
		}
	}
	return &Tiktoken{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// Truncate keeps the first max tokens of text.
func (t *Tiktoken) Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= max {
		return text
	}
	return t.enc.Decode(tokens[:max])
}

var _ textgen.TokenCounter = (*Tiktoken)(nil)
