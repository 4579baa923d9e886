package http

import (
	"net/http"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/service"
)

type AdminHandler struct {
	albumSvc service.AlbumService
	shareSvc service.ShareService
}

func NewAdminHandler(albumSvc service.AlbumService, shareSvc service.ShareService) *AdminHandler {
	return &AdminHandler{albumSvc: albumSvc, shareSvc: shareSvc}
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", domain.NewError(domain.ErrInvalidInput, name+" is required")
	}
	return v, nil
}

// ListAlbums returns every album, newest first
func (h *AdminHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.albumSvc.ListAlbums(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, albums)
}

func (h *AdminHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req createAlbumRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	album, err := h.albumSvc.CreateAlbum(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, album)
}

func (h *AdminHandler) ListSubfolders(w http.ResponseWriter, r *http.Request) {
	albumID, err := requiredQuery(r, "album_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	subfolders, err := h.albumSvc.ListSubfolders(r.Context(), albumID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subfolders)
}

func (h *AdminHandler) CreateSubfolder(w http.ResponseWriter, r *http.Request) {
	var req createSubfolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	subfolder, err := h.albumSvc.CreateSubfolder(r.Context(), req.AlbumID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, subfolder)
}

// ListImages lists an album's images, optionally narrowed to one subfolder
func (h *AdminHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	albumID, err := requiredQuery(r, "album_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	images, err := h.albumSvc.ListImages(r.Context(), albumID, r.URL.Query().Get("subfolder_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapImagesToResponse(images))
}

// CreateShare creates a password-protected share. An absent
// expires_in_hours defaults to three days; an explicit null never expires.
func (h *AdminHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req createShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	share, url, err := h.shareSvc.CreateShare(r.Context(), service.CreateShareInput{
		AlbumID:        req.AlbumID,
		SubfolderID:    req.SubfolderID,
		Password:       req.Password,
		ExpiresInHours: req.ExpiresInHours.OrDefault(service.DefaultShareLifetimeHours),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapShareToResponse(share, url))
}
