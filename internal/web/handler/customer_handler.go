package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"tablebook/internal/domain/customer"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/apperrors"
	"tablebook/internal/web/render"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	customers    customer.Service
	reservations reservation.Service
	renderer     *render.Renderer
	logger       *slog.Logger
}

func NewCustomerHandler(customers customer.Service, reservations reservation.Service, renderer *render.Renderer, logger *slog.Logger) *CustomerHandler {
	if customers == nil {
		panic("customer service cannot be nil")
	}
	if reservations == nil {
		panic("reservation service cannot be nil")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}
	return &CustomerHandler{
		customers:    customers,
		reservations: reservations,
		renderer:     renderer,
		logger:       logger.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

type customerListPage struct {
	Customers []*customer.Customer
}

type customerSearchPage struct {
	Query     string
	Customers []*customer.Customer
}

type vipsPage struct {
	VIPs []customer.VIPEntry
}

type customerDetailPage struct {
	Customer     *customer.Customer
	Reservations []*reservation.Reservation
}

type customerFormPage struct {
	Customer *customer.Customer
}

// List handles GET / and GET /customers/ with the full customer list.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "customer_list.html", customerListPage{Customers: customers})
}

// Search handles GET /customers/search?q=. An empty query yields an empty
// list page, not an error.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	customers, err := h.customers.SearchCustomers(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to search customers", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "customer_search.html", customerSearchPage{Query: query, Customers: customers})
}

// VIPs handles GET /customers/vip with the top-10 ranking.
func (h *CustomerHandler) VIPs(w http.ResponseWriter, r *http.Request) {
	vips, err := h.customers.TopReservationHolders(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to rank customers", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "customer_vips.html", vipsPage{VIPs: vips})
}

// NewForm handles GET /customers/add/.
func (h *CustomerHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "customer_new_form.html", nil)
}

// Create handles POST /customers/add/ and redirects to the new customer's
// detail page.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cust, err := h.customers.CreateCustomer(r.Context(),
		r.PostFormValue("firstName"),
		r.PostFormValue("lastName"),
		r.PostFormValue("phone"),
		r.PostFormValue("notes"),
	)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to create customer", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/customers/%d/", cust.ID), http.StatusFound)
}

// Detail handles GET /customers/{customerID}/ with the customer and their
// reservations.
func (h *CustomerHandler) Detail(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.renderer.RenderError(w, err)
		return
	}

	cust, err := h.customers.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to get customer", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}

	reservations, err := h.reservations.ListForCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list reservations", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "customer_detail.html", customerDetailPage{
		Customer:     cust,
		Reservations: reservations,
	})
}

// EditForm handles GET /customers/{customerID}/edit/ with the form
// pre-filled from the stored record.
func (h *CustomerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.renderer.RenderError(w, err)
		return
	}

	cust, err := h.customers.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to get customer", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "customer_edit_form.html", customerFormPage{Customer: cust})
}

// Update handles POST /customers/{customerID}/edit/: load, overwrite the
// mutable fields, save, redirect to the detail page.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.renderer.RenderError(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cust, err := h.customers.UpdateCustomer(r.Context(), customerID,
		r.PostFormValue("firstName"),
		r.PostFormValue("lastName"),
		r.PostFormValue("phone"),
		r.PostFormValue("notes"),
	)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to update customer", slog.Any("error", err))
		h.renderer.RenderError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/customers/%d/", cust.ID), http.StatusFound)
}
