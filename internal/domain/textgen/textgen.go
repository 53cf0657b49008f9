// Package textgen defines the contract for the language-model collaborator
// that turns a constructed prompt into short text.
package textgen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Request is a single completion request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
	// JSON asks the model for a JSON object reply.
	JSON bool
}

// Generator turns a prompt into text. An empty string with a nil error means the model had nothing to say.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Fingerprint identifies a request for caching.
func (r Request) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(r.System))
	h.Write([]byte{0})
	h.Write([]byte(r.Prompt))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(r.MaxTokens)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(float64(r.Temperature), 'f', 3, 32)))
	if r.JSON {
		h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))
}
