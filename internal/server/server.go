// Package server exposes the website builder over HTTP: a JSON API for
// editing records and an HTML surface for public visits.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"siteforge/internal/app"
	"siteforge/internal/render"
	"siteforge/internal/storage"
	"siteforge/internal/store"
	"siteforge/internal/util"
	"siteforge/pkg/domain"
)

const unlockCookie = "site_unlock"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	Media          *storage.DiskStore
	MaxUploadBytes int64
}

// Server exposes HTTP endpoints for the website builder.
type Server struct {
	app            *app.App
	media          *storage.DiskStore
	mux            *http.ServeMux
	maxUploadBytes int64
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	maxUploadBytes := cfg.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 * 1024 * 1024
	}
	s := &Server{
		app:            cfg.App,
		media:          cfg.Media,
		mux:            http.NewServeMux(),
		maxUploadBytes: maxUploadBytes,
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("siteforge", util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// editor API
	s.mux.HandleFunc("/api/sites", s.handleSites)
	s.mux.HandleFunc("/api/sites/", s.handleSiteByID)
	s.mux.HandleFunc("/api/catalog/templates", s.handleTemplates)
	s.mux.HandleFunc("/api/catalog/themes", s.handleThemes)
	s.mux.HandleFunc("/api/images", s.handleUploadImage)

	// public viewer
	s.mux.HandleFunc("/site/", s.handleSite)
	if s.media != nil {
		s.mux.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(s.media.Dir()))))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sites, err := s.app.ListSites()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": sites,
			"count": len(sites),
		})
	case http.MethodPost:
		var info domain.PersonalInfo
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&info); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		rec, err := s.app.CreateSite(r.Context(), info)
		if err != nil {
			s.writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	default:
		methodNotAllowed(w)
	}
}

type updateRequest struct {
	Template     *domain.TemplateID   `json:"template"`
	Theme        *domain.ThemeID      `json:"theme"`
	IsPublic     *bool                `json:"isPublic"`
	Password     *string              `json:"password"`
	PersonalInfo *domain.PersonalInfo `json:"personalInfo"`
}

// /api/sites/{id} or /api/sites/{id}/share
func (s *Server) handleSiteByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sites/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		notFound(w, "not found")
		return
	}

	if len(parts) == 2 && parts[1] == "share" {
		s.handleShare(w, r, id)
		return
	}
	if len(parts) == 2 {
		notFound(w, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := s.app.GetSite(id)
		if err != nil {
			s.writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodPatch:
		var req updateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		rec, err := s.app.UpdateSite(r.Context(), id, store.UpdateFields{
			Template:     req.Template,
			Theme:        req.Theme,
			IsPublic:     req.IsPublic,
			Password:     req.Password,
			PersonalInfo: req.PersonalInfo,
		})
		if err != nil {
			s.writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodDelete:
		if err := s.app.DeleteSite(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	links, stats, err := s.app.ShareSite(id)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"links": links,
		"stats": stats,
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": render.Templates()})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": render.Themes()})
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image is required (field: image)")
		return
	}
	defer file.Close()
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "unsupported image type")
		return
	}
	ref, err := s.app.UploadImage(r.Context(), header.Filename, file, header.Size, contentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": ref})
}

// /site/{id} and /site/{id}/unlock
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/site/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		s.writeViewerPage(w, http.StatusNotFound, notFoundPage)
		return
	}
	if len(parts) == 2 && parts[1] == "unlock" {
		s.handleUnlock(w, r, id)
		return
	}
	if len(parts) == 2 {
		s.writeViewerPage(w, http.StatusNotFound, notFoundPage)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	result, err := s.app.ViewSite(r.Context(), id, r.URL.Query().Get("password"), s.unlockToken(r))
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			s.writeViewerPage(w, http.StatusNotFound, notFoundPage)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if result.Locked {
		s.writeViewerPage(w, http.StatusUnauthorized, lockedPage(id, ""))
		return
	}
	s.writeViewerHTML(w, result)
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		token, err := s.app.Unlock(id, req.Password)
		if err != nil {
			s.writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	token, err := s.app.Unlock(id, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, app.ErrAccessDenied) {
			s.writeViewerPage(w, http.StatusUnauthorized, lockedPage(id, "密码错误，请重试"))
			return
		}
		s.writeAppError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     unlockCookie,
		Value:    token,
		Path:     "/site/" + id,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/site/"+id, http.StatusSeeOther)
}

func (s *Server) unlockToken(r *http.Request) string {
	if c, err := r.Cookie(unlockCookie); err == nil {
		return c.Value
	}
	return ""
}

// writeViewerHTML serves the rendered page with the visit banner. The
// banner carries live view counts, so it stays outside the render cache.
func (s *Server) writeViewerHTML(w http.ResponseWriter, result app.ViewResult) {
	banner := fmt.Sprintf(
		`<body><div style="background:#111827;color:#9ca3af;font-size:.8rem;text-align:center;padding:.35rem">此网站已被访问 %d 次</div>`,
		result.Record.Views,
	)
	page := bytes.Replace(result.HTML, []byte("<body>"), []byte(banner), 1)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (s *Server) writeViewerPage(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, page)
}

const notFoundPage = `<!doctype html>
<html lang="zh-CN"><head><meta charset="utf-8"><title>网站不存在</title></head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:4rem 2rem">
<h1>网站不存在</h1>
<p>您访问的网站不存在或已被删除。</p>
</body></html>`

func lockedPage(id, message string) string {
	var msg string
	if message != "" {
		msg = `<p style="color:#dc2626">` + html.EscapeString(message) + `</p>`
	}
	return `<!doctype html>
<html lang="zh-CN"><head><meta charset="utf-8"><title>私密网站</title></head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:4rem 2rem">
<h1>此网站受密码保护</h1>
<p>请输入访问密码查看内容。</p>` + msg + `
<form method="post" action="/site/` + html.EscapeString(id) + `/unlock">
  <input type="password" name="password" placeholder="访问密码" autofocus>
  <button type="submit">解锁</button>
</form>
</body></html>`
}

func (s *Server) writeAppError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"code":   "SITE_INVALID_CONTENT",
			"fields": verr.Fields,
		})
	case errors.Is(err, app.ErrNotFound):
		notFound(w, "website not found")
	case errors.Is(err, app.ErrAccessDenied):
		writeError(w, http.StatusUnauthorized, "access denied")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      errorCodeForSite(status, msg),
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

func errorCodeForSite(status int, msg string) string {
	message := strings.ToLower(strings.TrimSpace(msg))
	switch {
	case message == "website not found":
		return "SITE_NOT_FOUND"
	case message == "access denied":
		return "SITE_ACCESS_DENIED"
	case message == "invalid json body":
		return "SITE_INVALID_REQUEST"
	case message == "invalid form data":
		return "SITE_INVALID_UPLOAD_FORM"
	case strings.Contains(message, "image is required"):
		return "SITE_IMAGE_REQUIRED"
	case message == "unsupported image type":
		return "SITE_UNSUPPORTED_IMAGE_TYPE"
	case message == "failed to store image":
		return "SITE_IMAGE_STORE_FAILED"
	case message == "method not allowed":
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case message == "not found":
		return "SYSTEM_NOT_FOUND"
	}

	switch status {
	case http.StatusBadRequest:
		return "SITE_INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "SITE_ACCESS_DENIED"
	case http.StatusNotFound:
		return "SITE_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "SYSTEM_METHOD_NOT_ALLOWED"
	default:
		if status >= http.StatusInternalServerError {
			return "SYSTEM_INTERNAL_ERROR"
		}
		return "REQUEST_ERROR"
	}
}
