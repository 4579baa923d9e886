package http

import (
	"mime"
	"net/http"

	"github.com/gorilla/mux"

	"proofflow-backend/internal/access"
	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/service"
)

const immutableCacheControl = "public, max-age=31536000, immutable"

// MediaHandler serves image variants to the admin and to share sessions
// whose scope covers the image.
type MediaHandler struct {
	mediaSvc service.MediaService
	authz    *access.Authorizer
}

func NewMediaHandler(mediaSvc service.MediaService, authz *access.Authorizer) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc, authz: authz}
}

func (h *MediaHandler) Thumb(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, domain.VariantThumbnail)
}

func (h *MediaHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, domain.VariantPreview)
}

func (h *MediaHandler) Original(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, domain.VariantOriginal)
}

func (h *MediaHandler) serve(w http.ResponseWriter, r *http.Request, variant domain.Variant) {
	ctx := r.Context()

	img, err := h.mediaSvc.GetImage(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.authz.AuthorizeImage(ctx, img, CredentialFrom(ctx)); err != nil {
		writeError(w, r, err)
		return
	}

	file, err := h.mediaSvc.Open(img, variant)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.File.Close()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Cache-Control", immutableCacheControl)
	if file.DownloadName != "" {
		w.Header().Set("Content-Disposition", attachment(file.DownloadName))
	}
	http.ServeContent(w, r, "", file.ModTime, file.File)
}

func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
