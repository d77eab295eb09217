package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/carlmjohnson/requests"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// SharpiFetcherAndUpdater handles all Sharpi API operations.
// It embeds *SyncContext for shared sync configuration.
type SharpiFetcherAndUpdater struct {
	*SyncContext

	// Retry bounds the retry loop for retriable failures.
	Retry RetryPolicy

	// Client is the HTTP client used for all requests. Defaults to a
	// client with HTTPRequestTimeout.
	Client *http.Client
}

// NewSharpiFetcherAndUpdater builds an updater with the default retry
// policy and request timeout.
func NewSharpiFetcherAndUpdater(sctx *SyncContext) *SharpiFetcherAndUpdater {
	return &SharpiFetcherAndUpdater{
		SyncContext: sctx,
		Retry:       DefaultRetryPolicy(),
		Client:      &http.Client{Timeout: HTTPRequestTimeout},
	}
}

// UpsertResult is the outcome of a successful upsert.
type UpsertResult struct {
	StatusCode int
	Body       string
	// Updated is true when the record was applied via the PATCH fallback
	// rather than created.
	Updated bool
}

// SharpiAPIBuilder returns a new requests.Builder configured for the given
// Sharpi API URL.
func (s *SharpiFetcherAndUpdater) SharpiAPIBuilder(u string) *requests.Builder {
	result := requests.
		URL(u).
		Client(s.httpClient()).
		Header("X-API-Key", s.Config.API.Key)
	if s.RecordRequests {
		result = result.Transport(requests.Record(nil, "pkg/testdata/.requests/sharpi"))
	}
	return result
}

func (s *SharpiFetcherAndUpdater) httpClient() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: HTTPRequestTimeout}
}

// Upsert creates the record via POST and, when the API reports a duplicate,
// updates the existing resource via exactly one PATCH. Retriable failures
// are retried under the configured policy; everything else is terminal for
// the record and surfaced to the caller.
func (s *SharpiFetcherAndUpdater) Upsert(req SharpiRequest, ctx context.Context) (UpsertResult, error) {
	var result UpsertResult
	if err := req.Validate(); err != nil {
		return result, err
	}

	createURL, err := url.JoinPath(s.Config.API.Endpoint, req.Endpoint)
	if err != nil {
		return result, fmt.Errorf("failed to build create URL %w", err)
	}

	reqErr := s.Retry.Do(ctx, func(ctx context.Context) *RequestError {
		r, e := s.send(http.MethodPost, createURL, req.Payload, ctx)
		if e != nil {
			return e
		}
		result = r
		return nil
	})
	if reqErr == nil {
		return result, nil
	}
	if reqErr.Kind != KindConflict {
		return result, reqErr
	}

	// Duplicate: update the pre-existing resource instead, exactly once.
	// Identity comes from the conflict response when the API provides it,
	// otherwise from the record's own code.
	id := req.ResourceID
	if fromBody := gjson.Get(reqErr.Body, "id").String(); fromBody != "" {
		id = fromBody
	}
	if id == "" {
		return result, fmt.Errorf("duplicate %s record has no resource identity to update: %w", req.Endpoint, reqErr)
	}
	s.Logger.Warn("duplicate record, updating existing resource", "endpoint", req.Endpoint, "id", id)

	updateURL, err := url.JoinPath(s.Config.API.Endpoint, req.Endpoint, id)
	if err != nil {
		return result, fmt.Errorf("failed to build update URL %w", err)
	}
	reqErr = s.Retry.Do(ctx, func(ctx context.Context) *RequestError {
		r, e := s.send(http.MethodPatch, updateURL, req.Payload, ctx)
		if e != nil {
			return e
		}
		result = r
		return nil
	})
	if reqErr != nil {
		return result, reqErr
	}
	result.Updated = true
	return result, nil
}

// send performs one request attempt and classifies the outcome.
// Request and response detail is logged at debug only — a run can carry
// tens of thousands of records.
func (s *SharpiFetcherAndUpdater) send(method string, u string, payload interface{}, ctx context.Context) (UpsertResult, *RequestError) {
	var result UpsertResult

	if s.Logger.Enabled(ctx, slog.LevelDebug) {
		body, _ := json.Marshal(payload)
		s.Logger.Debug("sending sharpi request", "method", method, "url", u, "body", string(body))
	}

	err := s.SharpiAPIBuilder(u).
		Method(method).
		BodyJSON(payload).
		AddValidator(nil).
		Handle(func(res *http.Response) error {
			result.StatusCode = res.StatusCode
			b, err := io.ReadAll(res.Body)
			if err != nil {
				return err
			}
			result.Body = string(b)
			return nil
		}).
		Fetch(ctx)
	if err != nil {
		kind := KindRetriable // treat transport-level failures as transient
		if isTimeout(err) {
			kind = KindTimeout
		}
		return result, &RequestError{Kind: kind, URL: u, Cause: err}
	}

	s.Logger.Debug("sharpi response", "method", method, "url", u, "status", result.StatusCode)

	if result.StatusCode >= 200 && result.StatusCode < 300 {
		return result, nil
	}
	return result, classifyStatus(s.Config.API.Conflict, u, result.StatusCode, result.Body)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
