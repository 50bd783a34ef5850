package httpapi

import (
	"strconv"

	"github.com/juan-009/authguard/core/handler"
	"github.com/juan-009/authguard/core/response"
	"github.com/juan-009/authguard/core/router"
	"github.com/juan-009/authguard/pkg/apierr"
)

// errorHandler renders apierr.Error values (and anything else coordinators
// or binder/validator return) as a structured JSON body, using apierr's
// code-to-status table rather than the router's generic statusCode mapping.
func errorHandler(ctx *router.Context, err error) {
	apiErr, ok := apierr.As(err)
	if !ok {
		response.JSONErrorHandler[*router.Context](ctx, err)
		return
	}

	if apiErr.RetryAfter > 0 {
		ctx.ResponseWriter().Header().Set("Retry-After", strconv.Itoa(int(apiErr.RetryAfter.Seconds())))
	}

	httpErr := response.HTTPError{
		Status:  apierr.HTTPStatus(apiErr.Code),
		Code:    string(apiErr.Code),
		Message: apiErr.Message,
	}
	response.Render(ctx, response.JSONWithStatus(httpErr, httpErr.Status))
}

// badRequest wraps a binder or validator error as a VALIDATION apierr so it
// flows through the same errorHandler path as coordinator failures.
func badRequest(err error) handler.Response {
	return response.Error(apierr.Wrap(apierr.CodeValidation, "invalid request", err))
}

// errResponse propagates an apierr.Error through to errorHandler.
func errResponse(err error) handler.Response {
	return response.Error(err)
}
