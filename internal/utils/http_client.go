package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	clientUserAgent = "go-accounts-client"

	readRetryCount   = 2
	readRetryWait    = 200 * time.Millisecond
	readRetryMaxWait = 2 * time.Second
)

// HTTPClient wraps resty.Client with the defaults the command-line client
// needs when talking to the accounts server.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. A zero timeout leaves
// resty's default (no limit) in place.
//
// Only GET requests are retried, and only when the server could not be
// reached or answered with a 5xx status. Writes are never repeated.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", clientUserAgent).
		SetRetryCount(readRetryCount).
		SetRetryWaitTime(readRetryWait).
		SetRetryMaxWaitTime(readRetryMaxWait).
		AddRetryCondition(retryReads)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

func retryReads(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil {
		return false
	}
	if resp.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}
