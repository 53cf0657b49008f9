package textgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFingerprintDistinguishesFields(t *testing.T) {
	base := Request{System: "s", Prompt: "p", MaxTokens: 80, Temperature: 0.7}
	require.Equal(t, base.Fingerprint(), base.Fingerprint())

	jsonMode := base
	jsonMode.JSON = true
	require.NotEqual(t, base.Fingerprint(), jsonMode.Fingerprint())

	moved := Request{System: "sp", Prompt: "", MaxTokens: 80, Temperature: 0.7}
	require.NotEqual(t, base.Fingerprint(), moved.Fingerprint())
}

func TestBudgetFit(t *testing.T) {
	b := NewBudget(nil, 2)
	require.Equal(t, "abcdefgh", b.Fit("abcdefgh"))
	require.Equal(t, "abcdefgh", b.Fit("abcdefghij"))

	unlimited := NewBudget(nil, 0)
	require.Equal(t, "abcdefghij", unlimited.Fit("abcdefghij"))
}

func TestRuneEstimator(t *testing.T) {
	var est RuneEstimator
	require.Equal(t, 0, est.Count(""))
	require.Equal(t, 1, est.Count("héé"))
	require.Equal(t, 2, est.Count("hello"))
	require.Equal(t, "", est.Truncate("hello", 0))
}

func TestWithCache(t *testing.T) {
	next := &countingGenerator{reply: "You are doing well."}
	cache := newMapCache()
	gen := WithCache(next, cache, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := Request{Prompt: "summary"}
	for i := 0; i < 3; i++ {
		text, err := gen.Generate(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "You are doing well.", text)
	}
	require.Equal(t, 1, next.calls)
}

func TestWithCacheSkipsEmptyAndErrors(t *testing.T) {
	next := &countingGenerator{}
	cache := newMapCache()
	cache.getErr = errors.New("cache offline")
	gen := WithCache(next, cache, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	text, err := gen.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	require.Empty(t, text)
	require.Empty(t, cache.data)

	next.err = errors.New("upstream")
	_, err = gen.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	require.Equal(t, 2, next.calls)
}

func TestWithCacheNilPassThrough(t *testing.T) {
	require.Nil(t, WithCache(nil, newMapCache(), time.Minute, slog.Default()))
	next := &countingGenerator{}
	require.Same(t, next, WithCache(next, nil, time.Minute, slog.Default()))
}

type countingGenerator struct {
	reply string
	err   error
	calls int
}

func (g *countingGenerator) Generate(_ context.Context, _ Request) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type mapCache struct {
	data   map[string]string
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string]string)}
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}
