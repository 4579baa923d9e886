// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No credential
	SecurityShare                       // Admin token or share bearer token
	SecurityAdmin                       // Admin token header required
)

// Route names registered on the mux router
const (
	RouteHealth = "health"

	RouteListAlbums      = "admin.albums.list"
	RouteCreateAlbum     = "admin.albums.create"
	RouteListSubfolders  = "admin.subfolders.list"
	RouteCreateSubfolder = "admin.subfolders.create"
	RouteListImages      = "admin.images.list"
	RouteUpload          = "admin.upload"
	RouteCreateShare     = "admin.shares.create"

	RouteShareMeta   = "shares.meta"
	RouteShareAuth   = "shares.auth"
	RouteShareImages = "shares.images"

	RouteMediaThumb    = "media.thumb"
	RouteMediaPreview  = "media.preview"
	RouteMediaOriginal = "media.original"
)

// RouteSecurity maps route names to their required security level
var RouteSecurity = map[string]SecurityLevel{
	RouteHealth: SecurityPublic,

	// Admin
	RouteListAlbums:      SecurityAdmin,
	RouteCreateAlbum:     SecurityAdmin,
	RouteListSubfolders:  SecurityAdmin,
	RouteCreateSubfolder: SecurityAdmin,
	RouteListImages:      SecurityAdmin,
	RouteUpload:          SecurityAdmin,
	RouteCreateShare:     SecurityAdmin,

	// Shares - password gate is public, listing needs the share token
	RouteShareMeta:   SecurityPublic,
	RouteShareAuth:   SecurityPublic,
	RouteShareImages: SecurityShare,

	// Media
	RouteMediaThumb:    SecurityShare,
	RouteMediaPreview:  SecurityShare,
	RouteMediaOriginal: SecurityShare,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := RouteSecurity[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAdmin
}
