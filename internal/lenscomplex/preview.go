package lenscomplex

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r3"
)

// PreviewOpts controls the rotating wireframe preview. Zero fields take defaults.
type PreviewOpts struct {
	Size        int     // output width and height in pixels
	Supersample int     // render at Size*Supersample, then downscale
	Frames      int     // frames per full turn (GIF)
	Delay       int     // 100ths of a second per frame (GIF)
	Samples     int     // samples per edge for the apparent wireframe
	TiltDeg     float64 // view elevation
	Gamma       float64
}

func (o PreviewOpts) withDefaults() PreviewOpts {
	if o.Size <= 0 {
		o.Size = PreviewSize
	}
	if o.Supersample <= 0 {
		o.Supersample = PreviewSupersample
	}
	if o.Frames <= 0 {
		o.Frames = PreviewFrames
	}
	if o.Delay <= 0 {
		o.Delay = PreviewDelay
	}
	if o.Samples <= 1 {
		o.Samples = PreviewSamples
	}
	if o.TiltDeg == 0 {
		o.TiltDeg = PreviewTiltDeg
	}
	if o.Gamma <= 0 {
		o.Gamma = Gamma
	}
	return o
}

var (
	physicalColor = RGB{0.55, 0.55, 0.6}
	apparentColor = RGB{1, 0.55, 0.1}
)

// preview holds the wireframe of a complex in physical space and as seen from outside.
type preview struct {
	opts     PreviewOpts
	physical [][]r3.Vec
	apparent [][]r3.Vec
	center   r3.Vec
	radius   float64
}

// newPreview samples every edge and maps the samples through a cell containing the edge.
func newPreview(c *Complex, opts PreviewOpts) (*preview, error) {
	opts = opts.withDefaults()
	p := &preview{opts: opts}
	p.center, p.radius = c.boundingSphere()
	for _, e := range c.edges {
		a, b := c.vertices[e[0]].Position, c.vertices[e[1]].Position
		p.physical = append(p.physical, []r3.Vec{a, b})
		cell := c.cellWithEdge(e)
		line := make([]r3.Vec, opts.Samples+1)
		for s := range line {
			q, err := c.MapToOutside(cell, lerp(a, b, float64(s)/float64(opts.Samples)))
			switch {
			case errors.Is(err, ErrImagingDegenerate):
				// Breaks the line; stroke skips segments touching it.
				q = r3.Vec{X: math.NaN()}
			case err != nil:
				return nil, err
			}
			line[s] = q
		}
		p.apparent = append(p.apparent, line)
	}
	DebugLog("Preview: %d edges, %d samples per edge", len(c.edges), opts.Samples)
	return p, nil
}

// render draws the view at spin angle (radians) at supersampled resolution.
func (p *preview) render(spin float64) *Canvas {
	n := p.opts.Size * p.opts.Supersample
	cv := NewCanvas(n, n)
	R := viewRotation(spin, p.opts.TiltDeg*math.Pi/180)
	half := 1.25 * p.radius
	px := func(q r3.Vec) (float64, float64) {
		v := R.MulVec(r3.Sub(q, p.center))
		return (v.X/half + 1) * 0.5 * float64(n), (v.Y/half + 1) * 0.5 * float64(n)
	}
	stroke := func(lines [][]r3.Vec, col RGB) {
		for _, l := range lines {
			for k := 1; k < len(l); k++ {
				if !finiteVec(l[k-1]) || !finiteVec(l[k]) {
					continue
				}
				ax, ay := px(l[k-1])
				bx, by := px(l[k])
				cv.Line(ax, ay, bx, by, col)
			}
		}
	}
	stroke(p.physical, physicalColor)
	stroke(p.apparent, apparentColor)
	return cv
}

func (p *preview) frame(spin float64) *image.NRGBA {
	src := p.render(spin).NRGBA(p.opts.Gamma)
	if p.opts.Supersample == 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, p.opts.Size, p.opts.Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func (p *preview) frame64(spin float64) *image.NRGBA64 {
	src := p.render(spin).NRGBA64(p.opts.Gamma)
	if p.opts.Supersample == 1 {
		return src
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, p.opts.Size, p.opts.Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
