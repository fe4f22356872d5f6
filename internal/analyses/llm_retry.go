package analyses

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"careermatch-backend/internal/llm"
	"careermatch-backend/internal/shared/telemetry"
)

const (
	llmRetryBaseDelay = 300 * time.Millisecond
	llmExtraAttempts  = 2
)

// retryingClient wraps the comprehensive-analysis call with up to two extra
// attempts on retryable errors. Secondary calls go to the base client
// directly and are never retried.
type retryingClient struct {
	base  llm.Client
	runID string
}

func newRetryingClient(base llm.Client, runID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, runID: runID}
}

func (r retryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := r.base.Generate(ctx, prompt)
	if err == nil {
		return resp, nil
	}

	delay := llmRetryBaseDelay
	for attempt := 1; attempt <= llmExtraAttempts; attempt++ {
		if !shouldRetryLLM(err) {
			return "", err
		}
		telemetry.Warn("llm.retry", map[string]any{
			"attempt": attempt,
			"run_id":  r.runID,
			"error":   err.Error(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2

		resp, err = r.base.Generate(ctx, prompt)
		if err == nil {
			return resp, nil
		}
	}
	return "", err
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "status 5") || strings.Contains(msg, "status 429") {
		return true
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
