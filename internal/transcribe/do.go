package transcribe

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"
)

// DoRequest performs one HTTP round trip under a wall-clock budget. The
// budget bounds the whole logical operation; there are no automatic retries.
// The deadline timer is released on every exit path, and on timeout the
// in-flight transfer is aborted before a TimeoutError is returned. Network
// failures that are not timeouts come back as TransportError.
func DoRequest(ctx context.Context, client *http.Client, op string, budget time.Duration,
	build func(ctx context.Context) (*http.Request, error)) (int, []byte, error) {

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	httpReq, err := build(ctx)
	if err != nil {
		return 0, nil, err
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			log.Printf("[%s] timed out after %s", op, budget)
			return 0, nil, &TimeoutError{Op: op, Budget: budget}
		}
		log.Printf("[%s] network error: %v", op, err)
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, nil, &TimeoutError{Op: op, Budget: budget}
		}
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	return resp.StatusCode, body, nil
}
