package imaging

import "errors"

// Status classifies the outcome of an ingestion.
type Status int

const (
	StatusOK Status = iota
	StatusUnsupportedType
	StatusIOFailed
	StatusDecodeFailed
	StatusCancelled
	StatusReadFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnsupportedType:
		return "unsupported_type"
	case StatusIOFailed:
		return "io_failed"
	case StatusDecodeFailed:
		return "decode_failed"
	case StatusCancelled:
		return "cancelled"
	case StatusReadFailed:
		return "read_failed"
	default:
		return "unknown"
	}
}

var (
	ErrUnsupportedType = errors.New("content type is not an image")
	ErrTooManyPixels   = errors.New("image exceeds the pixel limit")
	ErrReadFailed      = errors.New("failed to read upload")
)

// Paths are the destinations of the three variants of one image.
type Paths struct {
	Original string
	Thumb    string
	Preview  string
}

// Result is the outcome of Ingest. Width and Height are the dimensions of the
// original after orientation correction and are only set for StatusOK.
type Result struct {
	Status Status
	Width  int
	Height int
	Paths  Paths
	Err    error
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}

func failed(status Status, err error) Result {
	return Result{Status: status, Err: err}
}
