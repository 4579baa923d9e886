// Package imaging turns uploaded image bytes into a stored original plus a
// JPEG thumbnail and preview.
package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"proofflow-backend/internal/logger"
)

const (
	copyChunkSize = 1 << 20

	// submitRetryInterval paces resubmission while the pool queue is full.
	submitRetryInterval = 20 * time.Millisecond
)

// Config bounds the pipeline. Zero values are replaced by the defaults below.
type Config struct {
	Workers        int
	QueueSize      int
	MaxPixels      int
	ThumbMaxEdge   int
	PreviewMaxEdge int
	ThumbQuality   int
	PreviewQuality int
}

func (c *Config) setDefaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = 50_000_000
	}
	if c.ThumbMaxEdge <= 0 {
		c.ThumbMaxEdge = 512
	}
	if c.PreviewMaxEdge <= 0 {
		c.PreviewMaxEdge = 2560
	}
	if c.ThumbQuality <= 0 {
		c.ThumbQuality = 86
	}
	if c.PreviewQuality <= 0 {
		c.PreviewQuality = 88
	}
}

// Pipeline ingests uploads. Decoding, resizing and encoding run on a bounded
// worker pool shared by all requests.
type Pipeline struct {
	cfg  Config
	pool pond.ResultPool[Result]
	log  *slog.Logger
}

// NewPipeline starts the worker pool. Cancelling ctx stops accepting work.
func NewPipeline(ctx context.Context, cfg Config) *Pipeline {
	cfg.setDefaults()

	opts := []pond.Option{pond.WithContext(ctx), pond.WithNonBlocking(true)}
	if cfg.QueueSize > 0 {
		opts = append(opts, pond.WithQueueSize(cfg.QueueSize))
	}

	return &Pipeline{
		cfg:  cfg,
		pool: pond.NewResultPool[Result](cfg.Workers, opts...),
		log:  logger.WithComponent("imaging"),
	}
}

// Stop waits for queued work to finish and releases the workers.
func (p *Pipeline) Stop() {
	p.pool.StopAndWait()
}

// Ingest stores r at paths.Original and derives the thumbnail and preview.
//
// The original is streamed to disk in bounded chunks and abandoned if ctx is
// cancelled. A failing source reader is StatusReadFailed, a failing disk is
// StatusIOFailed. The CPU stage runs on the pool. While the pool queue is
// full Ingest keeps retrying until ctx ends. If ctx ends while the task is
// queued or running, Ingest returns StatusCancelled and the task still
// completes in the background. Derivative files of a failed ingestion are
// not removed.
func (p *Pipeline) Ingest(ctx context.Context, r io.Reader, contentType string, paths Paths) Result {
	if !isImageType(contentType) {
		return failed(StatusUnsupportedType, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType))
	}

	if err := writeOriginal(ctx, r, paths.Original); err != nil {
		if ctx.Err() != nil {
			return failed(StatusCancelled, ctx.Err())
		}
		if errors.Is(err, ErrReadFailed) {
			return failed(StatusReadFailed, err)
		}
		return failed(StatusIOFailed, err)
	}

	task, err := p.submit(ctx, paths)
	if err != nil {
		if ctx.Err() != nil {
			return failed(StatusCancelled, ctx.Err())
		}
		return failed(StatusIOFailed, fmt.Errorf("image worker pool: %w", err))
	}

	select {
	case <-ctx.Done():
		p.log.Warn("ingestion abandoned by caller", "original", paths.Original)
		return failed(StatusCancelled, ctx.Err())
	case <-task.Done():
	}

	res, err := task.Wait()
	if err != nil {
		return failed(StatusIOFailed, fmt.Errorf("image worker pool: %w", err))
	}
	return res
}

// submit hands the derive stage to the pool, waiting for a queue slot for as
// long as ctx allows.
func (p *Pipeline) submit(ctx context.Context, paths Paths) (pond.Result[Result], error) {
	ticker := time.NewTicker(submitRetryInterval)
	defer ticker.Stop()

	for {
		task, ok := p.pool.TrySubmit(func() Result {
			return p.derive(paths)
		})
		if ok {
			return task, nil
		}
		if _, err := task.Wait(); !errors.Is(err, pond.ErrQueueFull) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			p.log.Warn("ingestion abandoned while waiting for a worker", "original", paths.Original)
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// sourceReader stops reading once ctx ends and remembers the first error of
// the underlying reader.
type sourceReader struct {
	ctx context.Context
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF && s.err == nil {
		s.err = err
	}
	return n, err
}

func writeOriginal(ctx context.Context, r io.Reader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	// hide ReadFrom so the copy goes through our fixed-size buffer
	dst := struct{ io.Writer }{f}
	src := &sourceReader{ctx: ctx, r: r}
	_, err = io.CopyBuffer(dst, src, make([]byte, copyChunkSize))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if src.err != nil {
		return fmt.Errorf("%w: %w", ErrReadFailed, src.err)
	}
	if err != nil {
		return fmt.Errorf("failed to write original: %w", err)
	}
	return nil
}

// derive runs on a pool worker. Panics from decoders are reported as decode
// failures.
func (p *Pipeline) derive(paths Paths) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = failed(StatusDecodeFailed, fmt.Errorf("decoder panic: %v", rec))
		}
	}()

	f, err := os.Open(paths.Original)
	if err != nil {
		return failed(StatusIOFailed, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return failed(StatusDecodeFailed, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return failed(StatusDecodeFailed, errors.New("image has no pixels"))
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(p.cfg.MaxPixels) {
		return failed(StatusDecodeFailed, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return failed(StatusIOFailed, err)
	}
	src, _, err := image.Decode(f)
	if err != nil {
		return failed(StatusDecodeFailed, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return failed(StatusIOFailed, err)
	}
	orientation := readOrientation(f)

	upright := applyOrientation(flattenOnWhite(src), orientation)
	width, height := upright.Rect.Dx(), upright.Rect.Dy()

	derivatives := []struct {
		path    string
		maxEdge int
		quality int
	}{
		{paths.Thumb, p.cfg.ThumbMaxEdge, p.cfg.ThumbQuality},
		{paths.Preview, p.cfg.PreviewMaxEdge, p.cfg.PreviewQuality},
	}
	for _, d := range derivatives {
		if err := writeJPEG(d.path, fitWithin(upright, d.maxEdge), d.quality); err != nil {
			var encErr *encodeError
			if errors.As(err, &encErr) {
				return failed(StatusDecodeFailed, err)
			}
			return failed(StatusIOFailed, err)
		}
	}

	return Result{
		Status: StatusOK,
		Width:  width,
		Height: height,
		Paths:  paths,
	}
}
