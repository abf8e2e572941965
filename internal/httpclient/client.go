package httpclient

import (
	"net/http"
	"time"
)

// Shared HTTP client with timeout and connection reuse. Document
// downloads can run long, hence the generous timeout.
var Default = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}
