package storage

// Subdirectories of the media root, one per variant.
const (
	OriginalsDir = "originals"
	ThumbsDir    = "thumbs"
	PreviewsDir  = "previews"
)

// DerivedExt is the extension of every thumbnail and preview.
const DerivedExt = ".jpg"

// Config holds media storage configuration
type Config struct {
	Root string // Directory holding originals/, thumbs/ and previews/
}
