package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// upstreamErrorBody matches the {"error":{"code","message"}} envelope some
// upstreams return. Bodies that do not match are treated as opaque text.
type upstreamErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// maps it to an AppError:
//
//	404           -> NotFound
//	400, 422      -> InvalidInput
//	429, 5xx      -> ServiceUnavailable
//	anything else -> ServiceUnavailable with the status recorded in the cause
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	message := string(body)
	var parsed upstreamErrorBody
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		message = parsed.Error.Message
	}
	if readErr != nil {
		message = "unreadable body: " + readErr.Error()
	}

	switch status := resp.StatusCode; {
	case status == http.StatusNotFound:
		path := ""
		if resp.Request != nil && resp.Request.URL != nil {
			path = resp.Request.URL.Path
		}
		return apperrors.NotFound(upstream+" resource", path)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(fmt.Sprintf("%s rejected request: %s", upstream, message))
	default:
		return apperrors.ServiceUnavailable(upstream, &StatusError{Status: status, Body: message})
	}
}

// TransportError wraps a network or breaker failure as ServiceUnavailable.
// Context cancellation is passed through unchanged.
func TransportError(upstream string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperrors.ServiceUnavailable(upstream, err)
}

// StatusError records an unexpected upstream status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "upstream status " + strconv.Itoa(e.Status)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

// IsClientError reports whether status is a 4xx code.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
