package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"tablebook/internal/pkg/apperrors"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer turns view models into HTML pages. html/template escapes all
// interpolated values, so user-supplied names and notes cannot inject
// markup.
type Renderer struct {
	tmpl   *template.Template
	logger *slog.Logger
}

func New(logger *slog.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{
		tmpl:   tmpl,
		logger: logger.With("component", "Renderer"),
	}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already out; all we can do is log.
		r.logger.Error("Failed to execute template", "template", name, "error", err)
	}
}

type errorPage struct {
	Status  int
	Message string
}

// RenderError is the single centralized error handler: it selects the HTTP
// status from the error's place in the taxonomy and renders the error page
// with that status and message. Internal errors never leak their cause.
func (r *Renderer) RenderError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	message := "Internal Server Error"

	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		message = validationErr.Message
	case status != http.StatusInternalServerError:
		message = err.Error()
	default:
		r.logger.Error("Unhandled internal error", "error", err)
	}

	r.Render(w, status, "error.html", errorPage{Status: status, Message: message})
}
