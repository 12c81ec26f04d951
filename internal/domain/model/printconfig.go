package model

// ColorMode selects black-and-white or color printing.
type ColorMode string

const (
	ColorModeBW    ColorMode = "bw"
	ColorModeColor ColorMode = "color"
)

func (m ColorMode) Valid() bool { return m == ColorModeBW || m == ColorModeColor }

// PaperType selects the paper stock.
type PaperType string

const (
	PaperTypeNormal PaperType = "normal"
	PaperTypePhoto  PaperType = "photopaper"
)

func (p PaperType) Valid() bool { return p == PaperTypeNormal || p == PaperTypePhoto }

// PrintSides selects single or double sided printing.
type PrintSides string

const (
	PrintSidesSingle PrintSides = "single"
	PrintSidesDouble PrintSides = "double"
)

func (s PrintSides) Valid() bool { return s == PrintSidesSingle || s == PrintSidesDouble }

// PageSize selects the sheet format.
type PageSize string

const (
	PageSizeA4 PageSize = "A4"
	PageSizeA3 PageSize = "A3"
)

func (s PageSize) Valid() bool { return s == PageSizeA4 || s == PageSizeA3 }

// Binding selects the finishing option.
type Binding string

const (
	BindingNone   Binding = "none"
	BindingSpiral Binding = "spiral"
	BindingSoft   Binding = "soft"
)

func (b Binding) Valid() bool { return b == BindingNone || b == BindingSpiral || b == BindingSoft }

// PrintConfig is the full print configuration of an order. It is immutable
// once the order cost has been computed at submission.
type PrintConfig struct {
	ColorMode  ColorMode
	PaperType  PaperType
	PrintSides PrintSides
	PageSize   PageSize
	Copies     int
	Binding    Binding
}
