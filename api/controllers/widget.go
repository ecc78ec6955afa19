package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontlabs/widget/api/responses"
	"github.com/storefrontlabs/widget/api/validators"
	"github.com/storefrontlabs/widget/internal/storefront"
	pkgerrors "github.com/storefrontlabs/widget/pkg/errors"
	"github.com/storefrontlabs/widget/pkg/logger"
)

type selectProductRequest struct {
	ID int64 `json:"id" validate:"required"`
}

type selectVariantRequest struct {
	VariantID string `json:"variantId" validate:"required"`
}

type quantityDeltaRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

// actionResponse reports the widget state after a view action. Rejected
// add-to-cart attempts come back as a flagged no-op, not an error status.
type actionResponse struct {
	Rejected bool                `json:"rejected,omitempty"`
	Reason   string              `json:"reason,omitempty"`
	Outcome  string              `json:"outcome,omitempty"`
	Snapshot storefront.Snapshot `json:"snapshot"`
}

// State returns the full widget snapshot.
func State(widget *storefront.Widget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, widget.Snapshot())
	}
}

// Cart returns the cart portion of the snapshot.
func Cart(widget *storefront.Widget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, widget.Snapshot().Cart)
	}
}

// SelectProduct handles the product selection action.
func SelectProduct(widget *storefront.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body selectProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		widget.RequestSelectProduct(body.ID)
		responses.WriteSuccess(w, actionResponse{Snapshot: widget.Snapshot()})
	}
}

// SelectVariant handles the variant selection action.
func SelectVariant(widget *storefront.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body selectVariantRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		widget.RequestSelectVariant(body.VariantID)
		responses.WriteSuccess(w, actionResponse{Snapshot: widget.Snapshot()})
	}
}

// QuantityDelta handles the quantity +/- controls.
func QuantityDelta(widget *storefront.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body quantityDeltaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		widget.RequestQuantityDelta(body.Delta)
		responses.WriteSuccess(w, actionResponse{Snapshot: widget.Snapshot()})
	}
}

// AddToCart pushes the current selection into the cart.
func AddToCart(widget *storefront.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := widget.RequestAddToCart(r.Context())
		if err != nil {
			typed := pkgerrors.As(err)
			if typed != nil && typed.Code() == pkgerrors.CodeValidation {
				responses.WriteSuccess(w, actionResponse{
					Rejected: true,
					Reason:   typed.Message(),
					Snapshot: widget.Snapshot(),
				})
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, actionResponse{
			Outcome:  string(result.Outcome),
			Snapshot: widget.Snapshot(),
		})
	}
}

// RemoveCartItem drops a cart row by its position.
func RemoveCartItem(widget *storefront.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cart item index must be an integer"))
			return
		}

		removed := widget.RequestRemoveCartItem(r.Context(), index)
		responses.WriteSuccess(w, actionResponse{
			Rejected: !removed,
			Outcome:  removeOutcome(removed),
			Snapshot: widget.Snapshot(),
		})
	}
}

func removeOutcome(removed bool) string {
	if removed {
		return "removed"
	}
	return ""
}
