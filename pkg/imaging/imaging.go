// Package imaging turns an uploaded profile picture into an embeddable data
// URI. The content type is sniffed and the declared dimensions are bounded
// before the image is fully decoded. Oversized images are scaled down and
// formats browsers cannot embed are re-encoded as PNG.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	ErrEmpty       = errors.New("imaging: no image data")
	ErrTooLarge    = errors.New("imaging: image exceeds size limit")
	ErrUnsupported = errors.New("imaging: unsupported image type")
	ErrDecode      = errors.New("imaging: image could not be decoded")
)

// Defaults for Options.
const (
	DefaultMaxBytes     = 5 << 20
	DefaultMaxPixels    = 24_000_000
	DefaultMaxDimension = 640
	DefaultJPEGQuality  = 85
)

// Options bound the accepted input and the embedded output.
type Options struct {
	MaxBytes int `yaml:"max_bytes"`
	// MaxPixels bounds width*height as declared in the image header, checked
	// before any pixel data is decoded.
	MaxPixels    int `yaml:"max_pixels"`
	MaxDimension int `yaml:"max_dimension"`
	JPEGQuality  int `yaml:"jpeg_quality"`
}

func (o Options) withDefaults() Options {
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	return o
}

// Image is a decoded, embeddable picture.
type Image struct {
	DataURI string
	MIME    string
	Width   int
	Height  int
}

type format struct {
	config func(io.Reader) (image.Config, error)
	decode func([]byte) (image.Image, error)
	// embeddable formats are kept as-is unless they need scaling.
	embeddable bool
}

var formats = map[string]format{
	"image/png":  {config: png.DecodeConfig, decode: decodeWith(png.Decode), embeddable: true},
	"image/jpeg": {config: jpeg.DecodeConfig, decode: decodeWith(jpeg.Decode), embeddable: true},
	"image/gif":  {config: gif.DecodeConfig, decode: decodeWith(gif.Decode), embeddable: true},
	"image/webp": {config: webp.DecodeConfig, decode: decodeWith(webp.Decode), embeddable: true},
	"image/bmp":  {config: bmp.DecodeConfig, decode: decodeWith(bmp.Decode)},
	"image/tiff": {config: tiff.DecodeConfig, decode: decodeWith(tiff.Decode)},
}

func decodeWith(fn func(r io.Reader) (image.Image, error)) func([]byte) (image.Image, error) {
	return func(data []byte) (image.Image, error) {
		return fn(bytes.NewReader(data))
	}
}

// Decoder converts raw uploads. The zero value uses the defaults.
type Decoder struct {
	Options Options
}

// Decode is Decoder{}.Decode.
func Decode(ctx context.Context, data []byte) (Image, error) {
	return Decoder{}.Decode(ctx, data)
}

// Decode validates data and returns it as a data URI.
func (d Decoder) Decode(ctx context.Context, data []byte) (Image, error) {
	opts := d.Options.withDefaults()

	if len(data) == 0 {
		return Image{}, ErrEmpty
	}
	if len(data) > opts.MaxBytes {
		return Image{}, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), opts.MaxBytes)
	}

	mime := mimetype.Detect(data)
	kind := mime.String()
	f, ok := formats[kind]
	if !ok {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}

	cfg, err := f.config(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Image{}, fmt.Errorf("%w: empty bounds", ErrDecode)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(opts.MaxPixels) {
		return Image{}, fmt.Errorf("%w: %dx%d pixels (max %d)", ErrTooLarge, cfg.Width, cfg.Height, opts.MaxPixels)
	}

	img, err := f.decode(data)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return Image{}, fmt.Errorf("%w: empty bounds", ErrDecode)
	}

	scaled, resized := fit(img, opts.MaxDimension)
	if !resized && f.embeddable {
		return Image{
			DataURI: dataURI(kind, data),
			MIME:    kind,
			Width:   bounds.Dx(),
			Height:  bounds.Dy(),
		}, nil
	}

	var buf bytes.Buffer
	outKind := "image/png"
	if kind == "image/jpeg" {
		outKind = kind
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: opts.JPEGQuality})
	} else {
		err = png.Encode(&buf, scaled)
	}
	if err != nil {
		return Image{}, fmt.Errorf("imaging: encode %s: %w", outKind, err)
	}

	b := scaled.Bounds()
	return Image{
		DataURI: dataURI(outKind, buf.Bytes()),
		MIME:    outKind,
		Width:   b.Dx(),
		Height:  b.Dy(),
	}, nil
}

// fit scales img down so neither side exceeds limit.
func fit(img image.Image, limit int) (image.Image, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img, false
	}
	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst, true
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
