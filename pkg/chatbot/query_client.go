package chatbot

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// State of one submitted question as it moves through the retry loop.
type State string

const (
	StateIdle      State = "IDLE"
	StateSending   State = "SENDING"
	StateRetryWait State = "RETRY_WAIT"
	StateAnswered  State = "ANSWERED"
	StateExhausted State = "EXHAUSTED"
)

// ParseFailureMessage is surfaced when a successful response carried no
// extractable answer text.
const ParseFailureMessage = "Failed to parse AI response."

// Answerer is the generative service boundary. GeminiClient satisfies it.
type Answerer interface {
	Answer(ctx context.Context, question, instruction string) (string, error)
}

// Result is the terminal outcome of one question.
type Result struct {
	Text     string
	Success  bool
	Attempts int
	State    State
	LastErr  error
}

// QueryClient drives the bounded-retry loop for a single question. Only rate
// limiting triggers backoff; any other failure moves straight to the next
// attempt. The sleep func is injectable so tests run without wall-clock waits.
type QueryClient struct {
	service     Answerer
	maxAttempts int
	backoffBase time.Duration
	sleep       func(time.Duration)
}

func NewQueryClient(service Answerer, maxAttempts int, backoffBase time.Duration) *QueryClient {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if backoffBase <= 0 {
		backoffBase = time.Second
	}
	return &QueryClient{
		service:     service,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		sleep:       time.Sleep,
	}
}

// WithSleep replaces the backoff sleep primitive. Used by tests.
func (c *QueryClient) WithSleep(sleep func(time.Duration)) *QueryClient {
	c.sleep = sleep
	return c
}

// Ask runs the attempt loop for one question against the given grounding
// instruction and always returns a terminal result.
func (c *QueryClient) Ask(ctx context.Context, question, instruction string) Result {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		text, err := c.service.Answer(ctx, question, instruction)
		if err == nil {
			return Result{
				Text:     text,
				Success:  true,
				Attempts: attempt + 1,
				State:    StateAnswered,
			}
		}

		// The response arrived but carried no usable answer. The attempt
		// budget is consumed and the loop ends: retrying a well-formed call
		// that the service already accepted gains nothing.
		if errors.Is(err, ErrParse) {
			return Result{
				Text:     ParseFailureMessage,
				Success:  false,
				Attempts: attempt + 1,
				State:    StateAnswered,
			}
		}

		lastErr = err

		if IsRateLimited(err) && attempt < c.maxAttempts-1 {
			// Exponential backoff: 1x base before the first retry, 2x before
			// the second, and so on.
			c.sleep(time.Duration(1<<attempt) * c.backoffBase)
		}
	}

	return Result{
		Text:     fmt.Sprintf("Error connecting to the AI service after %d attempts.", c.maxAttempts),
		Success:  false,
		Attempts: c.maxAttempts,
		State:    StateExhausted,
		LastErr:  lastErr,
	}
}
