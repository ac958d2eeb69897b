package webclient

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// NewDefault returns an HTTP client with sane timeouts.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// NewResty wraps NewDefault in a resty client that retries transient
// failures: transport errors, 429 and 5xx responses. attempts is the total
// number of tries including the first. 4xx responses other than 429 are
// handed back to the caller on the first attempt; the service meant them.
func NewResty(timeout time.Duration, attempts int) *resty.Client {
	if attempts <= 0 {
		attempts = 1
	}
	c := resty.NewWithClient(NewDefault(timeout))
	c.SetRetryCount(attempts - 1)
	c.SetRetryWaitTime(2 * time.Second)
	c.SetRetryMaxWaitTime(30 * time.Second)
	c.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
	})
	return c
}
