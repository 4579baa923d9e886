package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"proofflow-backend/internal/access"
	"proofflow-backend/internal/config"
	"proofflow-backend/internal/service"
)

type RouterConfig struct {
	AlbumService   service.AlbumService
	UploadService  service.ImageStorageService
	ShareService   service.ShareService
	MediaService   service.MediaService
	Authorizer     *access.Authorizer
	AdminToken     string
	MaxUploadBytes int64
	CORSOrigins    []string
}

// NewRouter registers every named route. Route names key the security
// table in config, so a route without a name is treated as admin-only.
func NewRouter(cfg RouterConfig) http.Handler {
	admin := NewAdminHandler(cfg.AlbumService, cfg.ShareService)
	upload := NewImageUploadHandler(cfg.UploadService, cfg.MaxUploadBytes)
	shares := NewShareHandler(cfg.ShareService, cfg.Authorizer)
	media := NewMediaHandler(cfg.MediaService, cfg.Authorizer)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.Use(LoggingMiddleware, SecurityMiddleware(cfg.AdminToken))

	r.HandleFunc("/healthz", Health).Methods(http.MethodGet).Name(config.RouteHealth)

	// Admin
	r.HandleFunc("/api/admin/albums", admin.ListAlbums).Methods(http.MethodGet).Name(config.RouteListAlbums)
	r.HandleFunc("/api/admin/albums", admin.CreateAlbum).Methods(http.MethodPost).Name(config.RouteCreateAlbum)
	r.HandleFunc("/api/admin/subfolders", admin.ListSubfolders).Methods(http.MethodGet).Name(config.RouteListSubfolders)
	r.HandleFunc("/api/admin/subfolders", admin.CreateSubfolder).Methods(http.MethodPost).Name(config.RouteCreateSubfolder)
	r.HandleFunc("/api/admin/images", admin.ListImages).Methods(http.MethodGet).Name(config.RouteListImages)
	r.HandleFunc("/api/admin/upload", upload.HandleUpload).Methods(http.MethodPost).Name(config.RouteUpload)
	r.HandleFunc("/api/admin/shares", admin.CreateShare).Methods(http.MethodPost).Name(config.RouteCreateShare)

	// Shares
	r.HandleFunc("/api/shares/{id}/meta", shares.GetMeta).Methods(http.MethodGet).Name(config.RouteShareMeta)
	r.HandleFunc("/api/shares/{id}/auth", shares.Authenticate).Methods(http.MethodPost).Name(config.RouteShareAuth)
	r.HandleFunc("/api/shares/{id}/images", shares.ListImages).Methods(http.MethodGet).Name(config.RouteShareImages)

	// Media
	r.HandleFunc(thumbURLPrefix+"{id}", media.Thumb).Methods(http.MethodGet, http.MethodHead).Name(config.RouteMediaThumb)
	r.HandleFunc(previewURLPrefix+"{id}", media.Preview).Methods(http.MethodGet, http.MethodHead).Name(config.RouteMediaPreview)
	r.HandleFunc(originalURLPrefix+"{id}", media.Original).Methods(http.MethodGet, http.MethodHead).Name(config.RouteMediaOriginal)

	if len(cfg.CORSOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(r)
}
