package lenscomplex

import (
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"runtime"
	"sync"

	"golang.org/x/image/draw"
)

// SavePreviewGIF writes one full turn of the rotating wireframe: physical edges in grey,
// the same edges as seen from outside in orange. The complex must be calibrated.
func SavePreviewGIF(c *Complex, path string, opts PreviewOpts) error {
	return saveFile(path, func(w io.Writer) error { return EncodePreviewGIF(c, w, opts) })
}

// EncodePreviewGIF is SavePreviewGIF writing to w.
func EncodePreviewGIF(c *Complex, w io.Writer, opts PreviewOpts) error {
	p, err := newPreview(c, opts)
	if err != nil {
		return err
	}
	n := p.opts.Frames
	out := &gif.GIF{
		Image:     make([]*image.Paletted, n),
		Delay:     make([]int, n),
		LoopCount: 0,
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for wi := 0; wi < workers; wi++ {
		go func() {
			defer wg.Done()
			// Frames wi, wi+workers, ... each land in their own slot.
			for k := wi; k < n; k += workers {
				rgba := p.frame(2 * math.Pi * float64(k) / float64(n))
				// Quantize to paletted for GIF
				pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
				draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})
				out.Image[k] = pimg
				out.Delay[k] = p.opts.Delay
			}
		}()
	}
	wg.Wait()
	DebugLog("Encoded preview GIF: %d frames %dx%d", n, p.opts.Size, p.opts.Size)
	return gif.EncodeAll(w, out)
}
