package lenscomplex

// Exterior is the cell index standing for the space outside the complex.
const Exterior = -1

const (
	Tolerance          = 1e-9  // relative tolerance for consistency checks
	DegenerateEps      = 1e-12 // relative threshold below which an imaging map is singular
	Transmission       = 0.96  // default transmission coefficient for renderable surfaces
	ReportFormat       = "yaml"
	PreviewSize        = 384
	PreviewSupersample = 2
	PreviewFrames      = 36
	PreviewDelay       = 8 // 100ths of a second per frame
	PreviewSamples     = 24
	PreviewTiltDeg     = 20
	Gamma              = 0.8
)
