package lenscomplex

import (
	"image/png"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// SavePreviewPNG writes the first preview frame as a 16-bit PNG.
func SavePreviewPNG(c *Complex, path string, opts PreviewOpts) error {
	return saveFile(path, func(w io.Writer) error { return EncodePreviewPNG(c, w, opts) })
}

func EncodePreviewPNG(c *Complex, w io.Writer, opts PreviewOpts) error {
	p, err := newPreview(c, opts)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, p.frame64(0))
}

// SavePreviewWebP writes the first preview frame as a lossless WebP.
func SavePreviewWebP(c *Complex, path string, opts PreviewOpts) error {
	return saveFile(path, func(w io.Writer) error { return EncodePreviewWebP(c, w, opts) })
}

func EncodePreviewWebP(c *Complex, w io.Writer, opts PreviewOpts) error {
	p, err := newPreview(c, opts)
	if err != nil {
		return err
	}
	return nativewebp.Encode(w, p.frame(0), nil)
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
