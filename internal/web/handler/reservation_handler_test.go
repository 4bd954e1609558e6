package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/web/handler"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupReservationRouter(t *testing.T) (*chi.Mux, *MockReservationService) {
	t.Helper()
	reservations := new(MockReservationService)
	h := handler.NewReservationHandler(reservations, newTestRenderer(t), testLogger)

	router := chi.NewRouter()
	router.Post("/customers/{customerID}/add-reservation/", h.Create)
	return router, reservations
}

func postReservationForm(router *chi.Mux, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateReservationRedirectsToDetail(t *testing.T) {
	router, reservations := setupReservationRouter(t)

	startAt := time.Date(2026, time.September, 12, 19, 30, 0, 0, time.Local)
	reservations.On("CreateReservation", mock.Anything, int64(7), 4, startAt, "window seat").
		Return(&reservation.Reservation{ID: 3, CustomerID: 7, NumGuests: 4, StartAt: startAt, Notes: "window seat"}, nil)

	form := url.Values{}
	form.Set("startAt", "2026-09-12T19:30")
	form.Set("numGuests", "4")
	form.Set("notes", "window seat")

	rec := postReservationForm(router, "/customers/7/add-reservation/", form)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/customers/7/", rec.Header().Get("Location"))
	reservations.AssertExpectations(t)
}

func TestCreateReservationNonNumericGuestsRenders400(t *testing.T) {
	router, reservations := setupReservationRouter(t)

	form := url.Values{}
	form.Set("startAt", "2026-09-12T19:30")
	form.Set("numGuests", "four")

	rec := postReservationForm(router, "/customers/7/add-reservation/", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "number of guests must be a whole number")
	reservations.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservationZeroGuestsRenders400(t *testing.T) {
	router, reservations := setupReservationRouter(t)

	startAt := time.Date(2026, time.September, 12, 19, 30, 0, 0, time.Local)
	reservations.On("CreateReservation", mock.Anything, int64(7), 0, startAt, "").
		Return(nil, func() error {
			_, err := reservation.NewReservation(7, 0, startAt, "")
			return err
		}())

	form := url.Values{}
	form.Set("startAt", "2026-09-12T19:30")
	form.Set("numGuests", "0")

	rec := postReservationForm(router, "/customers/7/add-reservation/", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot make a reservation for fewer than 1 guest")
}

func TestCreateReservationUnparseableStartRenders400(t *testing.T) {
	router, reservations := setupReservationRouter(t)

	form := url.Values{}
	form.Set("startAt", "not a date")
	form.Set("numGuests", "2")

	rec := postReservationForm(router, "/customers/7/add-reservation/", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start date and time must be a valid date")
	reservations.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservationAcceptsRFC3339Start(t *testing.T) {
	router, reservations := setupReservationRouter(t)

	startAt := time.Date(2026, time.September, 12, 19, 30, 0, 0, time.UTC)
	reservations.On("CreateReservation", mock.Anything, int64(7), 2, mock.MatchedBy(func(ts time.Time) bool {
		return ts.Equal(startAt)
	}), "").Return(&reservation.Reservation{ID: 4, CustomerID: 7, NumGuests: 2, StartAt: startAt}, nil)

	form := url.Values{}
	form.Set("startAt", "2026-09-12T19:30:00Z")
	form.Set("numGuests", "2")

	rec := postReservationForm(router, "/customers/7/add-reservation/", form)

	assert.Equal(t, http.StatusFound, rec.Code)
}
