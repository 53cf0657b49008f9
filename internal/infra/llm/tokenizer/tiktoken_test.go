package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTiktokenCountAndTruncate(t *testing.T) {
	tk, err := New("gpt-4o-mini")
	if err != nil {
		t.Skipf("tiktoken vocabulary unavailable: %v", err)
	}

	text := "Recent caregiving pattern: fourteen interactions logged this fortnight."
	total := tk.Count(text)
	require.Greater(t, total, 3)
	require.Equal(t, text, tk.Truncate(text, total))

	cut := tk.Truncate(text, 3)
	require.NotEqual(t, text, cut)
	require.LessOrEqual(t, tk.Count(cut), 3)
	require.Empty(t, tk.Truncate(text, 0))
}
