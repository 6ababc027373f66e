package lenscomplex

var (
	Debug = false // set to true to print event statistics after a run
	// Compile time checks to ensure the closed set of imaging elements and observers
	_ ImagingElement = (*IdealThinLens)(nil)
	_ ImagingElement = (*PlanarHomogeneousSurface)(nil)
	_ Observer       = (*EventLog)(nil)
	_ Observer       = SlogObserver{}
	_ Observer       = MultiObserver(nil)
	_ Observer       = ObserverFunc(nil)
)
