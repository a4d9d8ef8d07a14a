// Package web serves the career form: category choice, résumé upload,
// manual answers and the generated report, all on a single page.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/muhammadolammi/careerpath/internal/extract"
	"github.com/muhammadolammi/careerpath/internal/state"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templatesFS embed.FS

// DocumentStore keeps the uploaded résumé file while its session lives.
type DocumentStore interface {
	Put(ctx context.Context, key, mime string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Config wires the handler to its dependencies. Documents may be nil.
type Config struct {
	Store          state.Store
	Forms          *career.FormTable
	Extractor      extract.Extractor
	Submitter      *career.Submitter
	Documents      DocumentStore
	MaxUploadBytes int64
	SecureCookies  bool
	SessionTTL     time.Duration
}

type Handler struct {
	store          state.Store
	forms          *career.FormTable
	extractor      extract.Extractor
	submitter      *career.Submitter
	documents      DocumentStore
	maxUploadBytes int64
	secureCookies  bool
	sessionTTL     time.Duration

	tmpl     *template.Template
	markdown goldmark.Markdown
}

func NewHandler(cfg Config) (*Handler, error) {
	if cfg.Store == nil || cfg.Extractor == nil || cfg.Submitter == nil {
		return nil, fmt.Errorf("web: store, extractor and submitter are required")
	}
	if cfg.Forms == nil {
		cfg.Forms = career.DefaultForms()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}

	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: failed to parse templates: %w", err)
	}

	return &Handler{
		store:          cfg.Store,
		forms:          cfg.Forms,
		extractor:      cfg.Extractor,
		submitter:      cfg.Submitter,
		documents:      cfg.Documents,
		maxUploadBytes: cfg.MaxUploadBytes,
		secureCookies:  cfg.SecureCookies,
		sessionTTL:     cfg.SessionTTL,
		tmpl:           tmpl,
		markdown:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// RegisterRoutes mounts the page and its form actions.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/category", h.SelectCategory)
	r.Post("/resume", h.UploadResume)
	r.Post("/submit", h.Submit)
	r.Post("/reset", h.Reset)
}

// Router returns the full HTTP handler with the standard middleware stack.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) render(w http.ResponseWriter, view pageView) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", view); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("Failed to write page", "error", err)
	}
}

func (h *Handler) renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// goldmark drops raw HTML unless WithUnsafe is set
	return template.HTML(buf.String()), nil //nolint:gosec
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}
