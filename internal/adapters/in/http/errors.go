package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"hyperlocal/internal/core/application/usecases/commands"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/product"
	"hyperlocal/internal/core/domain/model/rider"
	"hyperlocal/internal/core/domain/model/store"
	"hyperlocal/internal/core/domain/services"
	"hyperlocal/internal/pkg/errs"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusForError maps domain and application errors onto HTTP status
// codes. Conflicts cover every "valid request, state says no" outcome:
// stock, store availability, transitions, and assignment races.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrOutOfServiceArea):
		return http.StatusUnprocessableEntity
	case errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, product.ErrProductInactive),
		errors.Is(err, store.ErrStoreUnavailable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrCancellationNotAllowed),
		errors.Is(err, order.ErrFeedbackNotAllowed),
		errors.Is(err, rider.ErrRiderNotEligible):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		// Internal details stay in the logs.
		message = "internal error"
	}
	return ctx.JSON(code, errorResponse{Code: code, Message: message})
}
