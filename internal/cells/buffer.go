package cells

import "fmt"

// PixelBuffer is a raw decoded image: row-major, interleaved channels,
// 8 bits per channel. C is 3 (RGB) or 4 (RGBA).
type PixelBuffer struct {
	W, H int
	C    int
	Pix  []byte
}

func NewPixelBuffer(w, h, c int) (*PixelBuffer, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d", w, h)
	}
	if c != 3 && c != 4 {
		return nil, fmt.Errorf("channel count %d (want 3 or 4)", c)
	}
	return &PixelBuffer{W: w, H: h, C: c, Pix: make([]byte, w*h*c)}, nil
}

// At returns the pixel at (x, y). Alpha is 255 for 3-channel buffers.
func (b *PixelBuffer) At(x, y int) (r, g, bl, a byte) {
	i := (y*b.W + x) * b.C
	r, g, bl = b.Pix[i], b.Pix[i+1], b.Pix[i+2]
	if b.C == 4 {
		a = b.Pix[i+3]
	} else {
		a = 255
	}
	return
}

func (b *PixelBuffer) Set(x, y int, r, g, bl, a byte) {
	i := (y*b.W + x) * b.C
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
	if b.C == 4 {
		b.Pix[i+3] = a
	}
}
