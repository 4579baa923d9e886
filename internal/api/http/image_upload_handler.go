package http

import (
	"errors"
	"io"
	"net/http"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/service"
)

const uploadFormField = "files"

var errNoFiles = domain.NewError(domain.ErrInvalidInput, "No files uploaded")

// ImageUploadHandler streams multipart uploads into the image pipeline
type ImageUploadHandler struct {
	uploadSvc      service.ImageStorageService
	maxUploadBytes int64
}

func NewImageUploadHandler(uploadSvc service.ImageStorageService, maxUploadBytes int64) *ImageUploadHandler {
	return &ImageUploadHandler{
		uploadSvc:      uploadSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleUpload ingests every "files" part of a multipart body, one part at a
// time, without buffering the request. Images stored before a failing part
// are kept.
func (h *ImageUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	albumID, err := requiredQuery(r, "album_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	subfolderID, err := requiredQuery(r, "subfolder_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.uploadSvc.ValidateTarget(ctx, albumID, subfolderID); err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, r, domain.NewError(domain.ErrInvalidInput, "Expected a multipart/form-data body"))
		return
	}

	uploaded := make([]domain.Image, 0)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if !errors.As(err, &tooLarge) {
				err = domain.NewError(domain.ErrInvalidInput, "Malformed multipart body")
			}
			writeError(w, r, err)
			return
		}
		if part.FormName() != uploadFormField {
			part.Close()
			continue
		}

		img, err := h.uploadSvc.Upload(ctx, albumID, subfolderID, service.UploadFile{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Body:        part,
		})
		part.Close()
		if err != nil {
			logger.WarnContext(ctx, "upload stopped", "albumID", albumID, "subfolderID", subfolderID, "stored", len(uploaded), "error", err)
			writeError(w, r, err)
			return
		}
		uploaded = append(uploaded, *img)
	}

	if len(uploaded) == 0 {
		writeError(w, r, errNoFiles)
		return
	}
	writeJSON(w, http.StatusOK, MapImagesToResponse(uploaded))
}
