// Package progress maps a 0-100 progress value and action state onto a
// deterministic fill color and contrasting text color.
package progress

import (
	"fmt"

	"github.com/samprox/tally/internal/domain/model"
)

// RGB is a plain 8-bit color triple handed across the rendering boundary.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex renders the color as "#rrggbb" for style attributes.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Anchor colors for the progress gradient, plus the fixed colors for
// deleted records and text contrast.
var (
	colorRed   = RGB{R: 255, G: 0, B: 0}
	colorAmber = RGB{R: 255, G: 191, B: 0}
	colorGreen = RGB{R: 0, G: 255, B: 0}
	colorGray  = RGB{R: 158, G: 158, B: 158}
	colorWhite = RGB{R: 255, G: 255, B: 255}
	colorInk   = RGB{R: 33, G: 33, B: 33}
)

// whiteTextThreshold is the progress value from which the fill is dark
// enough to need white text.
const whiteTextThreshold = 45

// ColorFor returns the fill color for a progress value: a piecewise-linear
// blend from red at 0 through amber at 50 to green at 100, linear in each
// RGB channel within each half. Deleted records get a fixed neutral gray
// regardless of progress. Out-of-range pct values are clamped first.
func ColorFor(pct int, state model.ActionState) RGB {
	if state == model.ActionDeleted {
		return colorGray
	}
	pct = model.ClampProgress(pct)
	if pct <= 50 {
		return lerp(colorRed, colorAmber, float64(pct)/50)
	}
	return lerp(colorAmber, colorGreen, float64(pct-50)/50)
}

// TextColorFor returns white once the fill darkens past the threshold and
// near-black otherwise. Deleted records always use near-black.
func TextColorFor(pct int, state model.ActionState) RGB {
	if state == model.ActionDeleted {
		return colorInk
	}
	if model.ClampProgress(pct) >= whiteTextThreshold {
		return colorWhite
	}
	return colorInk
}

// lerp blends two colors channel-wise; t is in [0, 1].
func lerp(from, to RGB, t float64) RGB {
	return RGB{
		R: channel(from.R, to.R, t),
		G: channel(from.G, to.G, t),
		B: channel(from.B, to.B, t),
	}
}

func channel(from, to uint8, t float64) uint8 {
	v := float64(from) + (float64(to)-float64(from))*t
	return uint8(v + 0.5)
}
