// Package pricing computes the estimated cost of a print job. The function is
// pure: identical inputs always produce identical costs.
package pricing

import "github.com/printq/printq/internal/domain/model"

// All amounts are rupees.
const (
	FrontPageCost = 2.0

	xeroxRateBW    = 1.5
	xeroxRateColor = 5.0

	spiralBindingCost = 25.0
	softBindingCost   = 100.0
)

// PricePerPage returns the per-page print rate for the paper/size/color
// combination. Photo paper is priced regardless of color mode.
func PricePerPage(paper model.PaperType, size model.PageSize, color model.ColorMode) float64 {
	if paper == model.PaperTypePhoto {
		if size == model.PageSizeA4 {
			return 20.0
		}
		return 40.0
	}
	if size == model.PageSizeA4 {
		if color == model.ColorModeBW {
			return 2.0
		}
		return 5.0
	}
	if color == model.ColorModeBW {
		return 4.0
	}
	return 20.0
}

// XeroxRate returns the flat per-page photocopy rate for extra copies. It
// depends only on color mode.
func XeroxRate(color model.ColorMode) float64 {
	if color == model.ColorModeColor {
		return xeroxRateColor
	}
	return xeroxRateBW
}

// BindingCost returns the finishing surcharge.
func BindingCost(binding model.Binding) float64 {
	switch binding {
	case model.BindingSpiral:
		return spiralBindingCost
	case model.BindingSoft:
		return softBindingCost
	default:
		return 0
	}
}

// ComputeCost prices totalPages of uploaded documents under the given
// configuration.
//
// Double-sided jobs are billed in full sheet pairs, so the page count rounds
// up to the nearest even number. The first copy is a print at the table rate;
// each additional copy is a xerox at the flat rate. The cover page costs a
// flat FrontPageCost, is excluded from totalPages, and is never duplicated
// for extra copies.
func ComputeCost(totalPages int, cfg model.PrintConfig) float64 {
	pages := totalPages
	if cfg.PrintSides == model.PrintSidesDouble {
		pages = (pages + 1) / 2 * 2
	}

	cost := FrontPageCost + float64(pages)*PricePerPage(cfg.PaperType, cfg.PageSize, cfg.ColorMode)

	if cfg.Copies > 1 {
		cost += float64(pages) * XeroxRate(cfg.ColorMode) * float64(cfg.Copies-1)
	}

	return cost + BindingCost(cfg.Binding)
}
