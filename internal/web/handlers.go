package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/muhammadolammi/careerpath/internal/extract"
	"github.com/muhammadolammi/careerpath/internal/state"
	"github.com/muhammadolammi/careerpath/internal/storage"
)

const (
	msgResumeExtracted = "✅ Resume text extracted."
	msgChooseFile      = "Choose a PDF, DOCX or text file to upload."
)

// Index renders the page for the current session.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadSession(w, r)
	if err != nil {
		serverError(w, "failed to load session", err)
		return
	}
	notices := s.TakeNotices()
	if err := h.store.Save(r.Context(), s); err != nil {
		serverError(w, "failed to save session", err)
		return
	}
	h.render(w, h.buildView(s, notices))
}

// SelectCategory switches the question set.
func (h *Handler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadSession(w, r)
	if err != nil {
		serverError(w, "failed to load session", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.SelectCategory(h.forms.Resolve(r.PostForm.Get("category")))
	h.saveAndRedirect(w, r, s)
}

// UploadResume extracts the text of an uploaded résumé. A file that cannot
// be read leaves the session with empty résumé text.
func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadSession(w, r)
	if err != nil {
		serverError(w, "failed to load session", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.rejectUpload(w, r, s, "")
			return
		}
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			s.AddNotice(state.NoticeWarning, msgChooseFile)
			h.saveAndRedirect(w, r, s)
			return
		}
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if header.Size > h.maxUploadBytes {
		h.rejectUpload(w, r, s, header.Filename)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	doc := extract.Document{
		Name: header.Filename,
		MIME: header.Header.Get("Content-Type"),
		Data: data,
	}
	text, err := h.extractor.Extract(doc)
	h.dropDocument(r.Context(), s)
	if err != nil {
		slog.Warn("Resume extraction failed", "session_id", s.ID, "file", doc.Name, "error", err)
		s.ResetResume(doc.Name)
		s.AddNotice(state.NoticeError, fmt.Sprintf("Error reading PDF: %v", err))
		h.saveAndRedirect(w, r, s)
		return
	}

	s.SetResume(doc.Name, text)
	s.AddNotice(state.NoticeSuccess, msgResumeExtracted)
	h.keepDocument(r.Context(), s, doc)
	h.saveAndRedirect(w, r, s)
}

// Submit stores the posted answers and asks for advice.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadSession(w, r)
	if err != nil {
		serverError(w, "failed to load session", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if form, ok := h.forms.Lookup(s.Category); ok {
		for _, field := range form.Fields {
			if values, posted := r.PostForm[field.Label]; posted && len(values) > 0 {
				s.Answers.Set(field.Label, values[0])
			}
		}
	}

	if err := h.store.Save(r.Context(), s); err != nil {
		serverError(w, "failed to save session", err)
		return
	}
	submission := s.Submission
	submitErr := h.submitter.Submit(r.Context(), s.ID.String(), &submission)

	// The call can outlast the idle timeout or race another request, so
	// the result is applied to whatever the store holds now.
	latest, err := h.store.Get(r.Context(), s.ID)
	if errors.Is(err, state.ErrNotFound) {
		slog.Info("Session ended during generation", "session_id", s.ID)
		h.setCookie(w, "", 0)
		redirectHome(w, r)
		return
	}
	if err != nil {
		serverError(w, "failed to load session", err)
		return
	}

	latest.Category = submission.Category
	latest.Answers = submission.Answers
	latest.Submitted = submission.Submitted
	latest.Status = submission.Status
	latest.Report = submission.Report
	if submitErr != nil {
		latest.AddNotice(state.NoticeError, career.Message(submitErr))
	}
	h.saveAndRedirect(w, r, latest)
}

// Reset ends the current session.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	s, err := h.currentSession(r)
	switch {
	case errors.Is(err, state.ErrNotFound):
	case err != nil:
		serverError(w, "failed to load session", err)
		return
	default:
		h.dropDocument(r.Context(), s)
		if err := h.store.Delete(r.Context(), s.ID); err != nil {
			serverError(w, "failed to end session", err)
			return
		}
		slog.Info("Session ended", "session_id", s.ID)
	}
	h.setCookie(w, "", 0)
	redirectHome(w, r)
}

func (h *Handler) rejectUpload(w http.ResponseWriter, r *http.Request, s *state.Session, name string) {
	h.dropDocument(r.Context(), s)
	s.ResetResume(name)
	s.AddNotice(state.NoticeError, fmt.Sprintf("Error reading PDF: file is larger than %d MB", h.maxUploadBytes>>20))
	h.saveAndRedirect(w, r, s)
}

func (h *Handler) saveAndRedirect(w http.ResponseWriter, r *http.Request, s *state.Session) {
	if err := h.store.Save(r.Context(), s); err != nil {
		serverError(w, "failed to save session", err)
		return
	}
	redirectHome(w, r)
}

// keepDocument stores the uploaded file. Storage failures are logged and
// never affect the extracted text.
func (h *Handler) keepDocument(ctx context.Context, s *state.Session, doc extract.Document) {
	if h.documents == nil {
		return
	}
	key := storage.ObjectKey(s.ID, doc.Name)
	mime := extract.DetectMIME(doc.Name, doc.MIME, doc.Data)
	if err := h.documents.Put(ctx, key, mime, doc.Data); err != nil {
		slog.Warn("Failed to store resume document", "session_id", s.ID, "key", key, "error", err)
		return
	}
	s.ResumeKey = key
}

// dropDocument removes the session's stored file, if any.
func (h *Handler) dropDocument(ctx context.Context, s *state.Session) {
	if h.documents == nil || s.ResumeKey == "" {
		return
	}
	if err := h.documents.Delete(ctx, s.ResumeKey); err != nil {
		slog.Warn("Failed to delete resume document", "session_id", s.ID, "key", s.ResumeKey, "error", err)
	}
	s.ResumeKey = ""
}
