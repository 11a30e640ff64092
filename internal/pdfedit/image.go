package pdfedit

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/wudi/pdfkit/ir/semantic"
)

// MaxImagePixels bounds decoded overlay images.
var MaxImagePixels = 64 << 20

// Image is an image resource ready to be drawn on pages of the document
// that embedded it.
type Image struct {
	name   string
	xobj   semantic.XObject
	Width  int
	Height int
}

// EmbedPNG decodes a PNG into an image resource. Color goes to an 8-bit
// DeviceRGB image; alpha, when present, to a DeviceGray soft mask.
func (d *Document) EmbedPNG(data []byte) (*Image, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxImagePixels {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidImage, cfg.Width, cfg.Height)
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		b := src.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}
	rgb, alpha, opaque := splitAlpha(nrgba)

	d.images++
	xobj := semantic.XObject{
		Subtype:          "Image",
		Width:            nrgba.Rect.Dx(),
		Height:           nrgba.Rect.Dy(),
		ColorSpace:       semantic.DeviceColorSpace{Name: "DeviceRGB"},
		BitsPerComponent: 8,
		Data:             rgb,
		Interpolate:      true,
	}
	if !opaque {
		xobj.SMask = &semantic.XObject{
			Subtype:          "Image",
			Width:            xobj.Width,
			Height:           xobj.Height,
			ColorSpace:       semantic.DeviceColorSpace{Name: "DeviceGray"},
			BitsPerComponent: 8,
			Data:             alpha,
		}
	}
	return &Image{
		name:   fmt.Sprintf("AnnotIm%d", d.images),
		xobj:   xobj,
		Width:  xobj.Width,
		Height: xobj.Height,
	}, nil
}

// splitAlpha separates straight-alpha pixels into packed RGB and alpha
// planes, reporting whether every pixel is opaque.
func splitAlpha(img *image.NRGBA) (rgb, alpha []byte, opaque bool) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rgb = make([]byte, 0, w*h*3)
	alpha = make([]byte, 0, w*h)
	opaque = true
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			rgb = append(rgb, row[x], row[x+1], row[x+2])
			alpha = append(alpha, row[x+3])
			if row[x+3] != 0xff {
				opaque = false
			}
		}
	}
	return rgb, alpha, opaque
}
