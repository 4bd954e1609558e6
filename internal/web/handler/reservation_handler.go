package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/apperrors"
	"tablebook/internal/web/render"
)

// startAtFormats are tried in order when parsing the reservation start
// field. The first is what a datetime-local input submits.
var startAtFormats = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04",
}

type ReservationHandler struct {
	reservations reservation.Service
	renderer     *render.Renderer
	logger       *slog.Logger
}

func NewReservationHandler(reservations reservation.Service, renderer *render.Renderer, logger *slog.Logger) *ReservationHandler {
	if reservations == nil {
		panic("reservation service cannot be nil")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}
	return &ReservationHandler{
		reservations: reservations,
		renderer:     renderer,
		logger:       logger.With("component", "ReservationHandler"),
	}
}

func parseStartAt(value string) (time.Time, error) {
	for _, layout := range startAtFormats {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("startAt", "start date and time must be a valid date")
}

// Create handles POST /customers/{customerID}/add-reservation/. Validation
// failures render the error page with status 400 and the field message;
// everything else goes through the centralized error path.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.renderer.RenderError(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	numGuests, err := strconv.Atoi(r.PostFormValue("numGuests"))
	if err != nil {
		h.renderer.RenderError(w, apperrors.NewValidationError("numGuests", "number of guests must be a whole number"))
		return
	}

	startAt, err := parseStartAt(r.PostFormValue("startAt"))
	if err != nil {
		h.renderer.RenderError(w, err)
		return
	}

	_, err = h.reservations.CreateReservation(r.Context(), customerID, numGuests, startAt, r.PostFormValue("notes"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to create reservation", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/customers/%d/", customerID), http.StatusFound)
}
