// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp" // BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/gogpu/gg3d/internal/cache"
)

// DefaultMaxTextureSize is the largest texture edge kept as decoded.
// Bigger images are downscaled preserving aspect ratio.
const DefaultMaxTextureSize = 4096

// DefaultMaxTextureBytes is the most bytes read from one texture source.
const DefaultMaxTextureBytes = 64 << 20

// DefaultTextureCacheSize is how many decoded images a loader keeps.
const DefaultTextureCacheSize = 16

// Poster runs a function on the goroutine that owns scene state.
// Hosts implement it; see runner.Host.
type Poster interface {
	Post(fn func())
}

// LoadResult is the single outcome of an asynchronous texture load:
// either Loaded (Err == nil) or Failed.
type LoadResult struct {
	Texture *Texture
	Err     error
}

// Loaded reports whether the load succeeded.
func (r LoadResult) Loaded() bool {
	return r.Err == nil
}

// LoaderOption configures a TextureLoader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	fsys      fs.FS
	client    *http.Client
	maxSize   int
	maxBytes  int64
	filter    Filter
	cacheSize int
}

func defaultLoaderOptions() loaderOptions {
	return loaderOptions{
		fsys:      os.DirFS("."),
		client:    http.DefaultClient,
		maxSize:   DefaultMaxTextureSize,
		maxBytes:  DefaultMaxTextureBytes,
		filter:    FilterLinear,
		cacheSize: DefaultTextureCacheSize,
	}
}

// WithFS sets the file system relative paths are resolved in.
// The default is the process working directory.
func WithFS(fsys fs.FS) LoaderOption {
	return func(o *loaderOptions) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithHTTPClient sets the client used for http:// and https:// paths.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(o *loaderOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// WithMaxSize sets the largest texture edge. Values <= 0 disable downscaling.
func WithMaxSize(n int) LoaderOption {
	return func(o *loaderOptions) {
		o.maxSize = n
	}
}

// WithMaxBytes sets the most bytes read from a texture source. Values <= 0
// restore DefaultMaxTextureBytes.
func WithMaxBytes(n int64) LoaderOption {
	return func(o *loaderOptions) {
		if n <= 0 {
			n = DefaultMaxTextureBytes
		}
		o.maxBytes = n
	}
}

// WithCacheSize sets how many decoded images the loader keeps by path.
// 0 disables caching.
func WithCacheSize(n int) LoaderOption {
	return func(o *loaderOptions) {
		o.cacheSize = n
	}
}

// WithFilter sets the filter of textures created by the loader.
func WithFilter(f Filter) LoaderOption {
	return func(o *loaderOptions) {
		o.filter = f
	}
}

// TextureLoader fetches and decodes images into Textures.
type TextureLoader struct {
	poster Poster
	opts   loaderOptions
	cache  *cache.LRU[string, *image.NRGBA]
}

// NewTextureLoader creates a loader that delivers asynchronous results
// through poster. With a nil poster, results are delivered on the
// loading goroutine.
func NewTextureLoader(poster Poster, opts ...LoaderOption) *TextureLoader {
	o := defaultLoaderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	l := &TextureLoader{poster: poster, opts: o}
	if o.cacheSize > 0 {
		l.cache = cache.New[string, *image.NRGBA](o.cacheSize)
	}
	return l
}

// TextureCacheStats are the counters of a loader's decoded-image cache.
type TextureCacheStats = cache.Stats

// CacheStats returns the decoded-image cache counters. All are zero when
// caching is disabled.
func (l *TextureLoader) CacheStats() TextureCacheStats {
	if l.cache == nil {
		return TextureCacheStats{}
	}
	return l.cache.Stats()
}

// Load starts loading path and returns its texture handle immediately.
// The handle stays empty until the image arrives. done, if non-nil, is
// called exactly once with the outcome, on the poster's goroutine.
func (l *TextureLoader) Load(ctx context.Context, path string, done func(LoadResult)) *Texture {
	tex := &Texture{Name: path, Filter: l.opts.filter}

	var once sync.Once
	deliver := func(img image.Image, err error) {
		once.Do(func() {
			if err == nil {
				tex.SetImage(img)
			}
			if done != nil {
				done(LoadResult{Texture: tex, Err: err})
			}
		})
	}

	go func() {
		img, err := l.read(ctx, path)
		if l.poster == nil {
			deliver(img, err)
			return
		}
		l.poster.Post(func() { deliver(img, err) })
	}()
	return tex
}

// LoadSync loads path and blocks until the texture is ready.
func (l *TextureLoader) LoadSync(ctx context.Context, path string) (*Texture, error) {
	img, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}
	tex := &Texture{Name: path, Filter: l.opts.filter}
	tex.SetImage(img)
	return tex, nil
}

func (l *TextureLoader) read(ctx context.Context, path string) (*image.NRGBA, error) {
	if l.cache != nil {
		if img, ok := l.cache.Get(path); ok {
			return img, nil
		}
	}
	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lr := &limitReader{r: rc, n: l.opts.maxBytes + 1}
	img, format, err := image.Decode(lr)
	if lr.n <= 0 {
		return nil, fmt.Errorf("%w: %s: over %d bytes", ErrTextureTooLarge, path, l.opts.maxBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureDecode, path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureFetch, path, err)
	}
	Logger().Debug("texture decoded", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	out := toNRGBA(fitTexture(img, l.opts.maxSize))
	if l.cache != nil {
		l.cache.Set(path, out)
	}
	return out, nil
}

func (l *TextureLoader) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTextureFetch, path, err)
		}
		resp, err := l.opts.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTextureFetch, path, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s: status %s", ErrTextureFetch, path, resp.Status)
		}
		if resp.ContentLength > l.opts.maxBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s: %d bytes", ErrTextureTooLarge, path, resp.ContentLength)
		}
		return resp.Body, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureFetch, path, err)
	}
	f, err := l.opts.fsys.Open(strings.TrimPrefix(path, "./"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureFetch, path, err)
	}
	return f, nil
}

// fitTexture downscales img so that neither edge exceeds maxSize.
func fitTexture(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	scale := float64(maxSize) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// limitReader fails with ErrTextureTooLarge once n bytes have been read.
type limitReader struct {
	r io.Reader
	n int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, ErrTextureTooLarge
	}
	if int64(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n <= 0 && err == nil {
		err = ErrTextureTooLarge
	}
	return n, err
}
