package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/care-moments/internal/infra/config"
)

const (
	maxReplayBody       = 1 << 20
	retryAttemptsHeader = "X-Retry-Attempts"
)

var errReplayBodyTooLarge = errors.New("request body exceeds retry limit")

type retryPolicy struct {
	attempts int
	backoff  time.Duration
	skip     []string
}

func (p retryPolicy) applies(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	for _, prefix := range p.skip {
		if prefix != "" && strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

// delay doubles per attempt, starting at the base backoff before the second attempt.
func (p retryPolicy) delay(attempt int) time.Duration {
	return p.backoff << (attempt - 2)
}

// withRetry replays POST requests whose response is an upstream failure (502, 503, 504).
// The final response carries X-Retry-Attempts when more than one attempt ran.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	policy := retryPolicy{
		attempts: cfg.MaxAttempts,
		backoff:  cfg.BaseBackoff,
		skip:     append([]string(nil), cfg.Exclude...),
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !policy.applies(r) {
			handler.ServeHTTP(w, r)
			return
		}
		body, err := bufferBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errReplayBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		for attempt := 1; ; attempt++ {
			resp := newBufferedResponse()
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))
			handler.ServeHTTP(resp, replay)

			if !resp.upstreamFailure() || attempt == policy.attempts {
				if attempt > 1 {
					resp.header.Set(retryAttemptsHeader, strconv.Itoa(attempt))
				}
				resp.writeTo(w)
				return
			}

			logger.Warn("upstream failure, retrying request", "path", r.URL.Path, "status", resp.status, "attempt", attempt)
			select {
			case <-r.Context().Done():
				resp.writeTo(w)
				return
			case <-time.After(policy.delay(attempt + 1)):
			}
		}
	})
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxReplayBody+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxReplayBody {
		return nil, errReplayBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds one attempt's response until the retry loop decides to keep it.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) upstreamFailure() bool {
	switch b.status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func (b *bufferedResponse) writeTo(w http.ResponseWriter) {
	dst := w.Header()
	for key, values := range b.header {
		dst[key] = append([]string(nil), values...)
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
