package sync

import "time"

// HTTPRequestTimeout is the default timeout for all HTTP requests to the Sharpi API.
// It bounds a single request attempt, not the whole retry loop.
const HTTPRequestTimeout = 30 * time.Second
