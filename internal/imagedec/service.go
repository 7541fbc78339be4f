// Package imagedec decodes image files into raw pixel buffers at a
// requested target size. The rest of the program never sees an image
// format, only PixelBuffers.
package imagedec

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"github.com/every-moment-special/pixel-perfect/internal/cells"
)

// DecodeError wraps any failure to produce pixels for a path:
// unsupported format, corrupt data, or plain I/O trouble. Always
// recoverable; the affected tile or gallery slot shows a fallback.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Service is the decoding collaborator. A zero targetW or targetH is
// derived from the source aspect ratio; both zero means native size.
type Service interface {
	Decode(path string, targetW, targetH int) (*cells.PixelBuffer, error)
	Dimensions(path string) (w, h int, err error)
}

// FileService decodes from the filesystem using the registered image
// formats (jpeg, png, gif, webp, bmp, tiff).
type FileService struct{}

func (FileService) Decode(path string, targetW, targetH int) (*cells.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw <= 0 || sh <= 0 {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("empty image %dx%d", sw, sh)}
	}
	tw, th := fitTarget(sw, sh, targetW, targetH)

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	buf, err := cells.NewPixelBuffer(tw, th, 4)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	rowBytes := tw * 4
	for y := 0; y < th; y++ {
		copy(buf.Pix[y*rowBytes:(y+1)*rowBytes], dst.Pix[y*dst.Stride:y*dst.Stride+rowBytes])
	}
	return buf, nil
}

func (FileService) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, &DecodeError{Path: path, Err: err}
	}
	return cfg.Width, cfg.Height, nil
}

func fitTarget(sw, sh, tw, th int) (int, int) {
	switch {
	case tw <= 0 && th <= 0:
		return sw, sh
	case th <= 0:
		th = (sh*tw + sw/2) / sw
	case tw <= 0:
		tw = (sw*th + sh/2) / sh
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	return tw, th
}
