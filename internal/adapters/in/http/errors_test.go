package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"hyperlocal/internal/core/application/usecases/commands"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/product"
	"hyperlocal/internal/core/domain/model/rider"
	"hyperlocal/internal/core/domain/model/store"
	"hyperlocal/internal/core/domain/services"
	"hyperlocal/internal/pkg/errs"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing object", errs.NewObjectNotFoundError("orderID", nil), http.StatusNotFound},
		{"access denied", commands.ErrAccessDenied, http.StatusForbidden},
		{"out of service area", services.ErrOutOfServiceArea, http.StatusUnprocessableEntity},
		{"insufficient stock", product.ErrInsufficientStock, http.StatusConflict},
		{"inactive product", product.ErrProductInactive, http.StatusConflict},
		{"closed store", store.ErrStoreUnavailable, http.StatusConflict},
		{"invalid transition", order.ErrInvalidTransition, http.StatusConflict},
		{"assignment race loser", order.ErrAlreadyAssigned, http.StatusConflict},
		{"late cancellation", order.ErrCancellationNotAllowed, http.StatusConflict},
		{"feedback before delivery", order.ErrFeedbackNotAllowed, http.StatusConflict},
		{"ineligible rider", rider.ErrRiderNotEligible, http.StatusConflict},
		{"invalid value", errs.NewValueIsInvalidErrorWithCause("UUID", errors.New("bad")), http.StatusBadRequest},
		{"missing value", errs.NewValueIsRequiredError("reason"), http.StatusBadRequest},
		{"out of range value", errs.NewValueIsOutOfRangeError("rating", 9, 1, 5), http.StatusBadRequest},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}

	t.Run("wrapped domain errors keep their status", func(t *testing.T) {
		// Handlers annotate sentinels with context; mapping follows the chain.
		err := fmt.Errorf("%w: order is out_for_delivery", order.ErrCancellationNotAllowed)
		assert.Equal(t, http.StatusConflict, statusForError(err))

		err = fmt.Errorf("%w: on_leave", rider.ErrRiderNotEligible)
		assert.Equal(t, http.StatusConflict, statusForError(err))
	})
}
