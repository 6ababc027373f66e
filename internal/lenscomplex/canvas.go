package lenscomplex

import (
	"image"
	"math"
)

// Canvas is a flat RGB accumulation buffer; lines are splatted with bilinear weights
// and the buffer is normalized by its peak when converted to an image.
type Canvas struct {
	Nx, Ny int
	Buf    []float64 // flat: (j*Nx + i)*3 + c
	Stride int
}

// NewCanvas allocates a zero-initialized buffer.
func NewCanvas(nx, ny int) *Canvas {
	if nx <= 0 || ny <= 0 {
		panic("canvas resolution must be positive")
	}
	DebugLogOnce("Created canvas %dx%d", nx, ny)
	return &Canvas{Nx: nx, Ny: ny, Buf: make([]float64, nx*ny*3), Stride: nx * 3}
}

func (cv *Canvas) idx(i, j, c int) int {
	return j*cv.Stride + i*3 + c
}

func (cv *Canvas) add(i, j int, col RGB, w float64) {
	if i < 0 || j < 0 || i >= cv.Nx || j >= cv.Ny || w <= 0 {
		return
	}
	p := cv.idx(i, j, 0)
	cv.Buf[p+0] += col.R * w
	cv.Buf[p+1] += col.G * w
	cv.Buf[p+2] += col.B * w
}

// splat deposits col around the continuous pixel position (x, y).
func (cv *Canvas) splat(x, y float64, col RGB) {
	if !isFinite(x) || !isFinite(y) {
		return
	}
	x -= 0.5
	y -= 0.5
	i0, j0 := int(math.Floor(x)), int(math.Floor(y))
	fx, fy := x-float64(i0), y-float64(j0)
	cv.add(i0, j0, col, (1-fx)*(1-fy))
	cv.add(i0+1, j0, col, fx*(1-fy))
	cv.add(i0, j0+1, col, (1-fx)*fy)
	cv.add(i0+1, j0+1, col, fx*fy)
}

// Line splats samples at most half a pixel apart from a to b (pixel coordinates).
func (cv *Canvas) Line(ax, ay, bx, by float64, col RGB) {
	l := math.Hypot(bx-ax, by-ay)
	if !isFinite(l) || l > 4*float64(cv.Nx+cv.Ny) {
		return
	}
	n := int(math.Ceil(2*l)) + 1
	col = col.clamp01()
	for s := 0; s <= n; s++ {
		t := float64(s) / float64(n)
		cv.splat(ax+t*(bx-ax), ay+t*(by-ay), col)
	}
}

func (cv *Canvas) peak() float64 {
	m := 0.0
	for _, v := range cv.Buf {
		if v > m {
			m = v
		}
	}
	if m == 0 {
		m = 1 // empty canvas stays black
	}
	return m
}

// tone maps v to [0,1] with scale and gamma.
func tone(v, scale, gamma float64) float64 {
	if v <= 0 {
		return 0
	}
	n := v * scale
	if n > 1 {
		n = 1
	}
	if gamma != 1 {
		n = math.Pow(n, 1.0/gamma)
	}
	return n
}

// NRGBA converts to 8 bits per channel (flip Y so up is up).
func (cv *Canvas) NRGBA(gamma float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cv.Nx, cv.Ny))
	scale := 1.0 / cv.peak()
	for j := 0; j < cv.Ny; j++ {
		rowOff := (cv.Ny - 1 - j) * img.Stride
		for i := 0; i < cv.Nx; i++ {
			b := cv.idx(i, j, 0)
			p := rowOff + i*4
			img.Pix[p+0] = uint8(math.Round(tone(cv.Buf[b+0], scale, gamma) * 255))
			img.Pix[p+1] = uint8(math.Round(tone(cv.Buf[b+1], scale, gamma) * 255))
			img.Pix[p+2] = uint8(math.Round(tone(cv.Buf[b+2], scale, gamma) * 255))
			img.Pix[p+3] = 255
		}
	}
	return img
}

// NRGBA64 converts to 16 bits per channel (flip Y so up is up).
func (cv *Canvas) NRGBA64(gamma float64) *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, cv.Nx, cv.Ny))
	scale := 1.0 / cv.peak()
	const pxBytes = 8
	for j := 0; j < cv.Ny; j++ {
		rowOff := (cv.Ny - 1 - j) * img.Stride
		for i := 0; i < cv.Nx; i++ {
			b := cv.idx(i, j, 0)
			p := rowOff + i*pxBytes
			for c := 0; c < 3; c++ {
				v := uint16(math.Round(tone(cv.Buf[b+c], scale, gamma) * 65535))
				img.Pix[p+2*c] = uint8(v >> 8)
				img.Pix[p+2*c+1] = uint8(v)
			}
			img.Pix[p+6] = 0xFF
			img.Pix[p+7] = 0xFF
		}
	}
	return img
}
