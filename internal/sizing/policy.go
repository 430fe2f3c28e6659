// Package sizing computes output dimensions for image resizing and
// thumbnailing. The policy is an intentionally asymmetric UI-fitting
// heuristic: portrait and landscape sources take different branches, and the
// thumbnail and screen-bound clamps apply at fixed thresholds.
package sizing

import (
	"errors"
	"fmt"
)

// ThumbnailMax is the longest edge allowed for thumbnail output.
const ThumbnailMax = 250

// Size is a pixel dimension pair.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// ErrInvalidSize is returned when an input size has a non-positive edge.
var ErrInvalidSize = errors.New("sizing: invalid size")

// ComputeOutputSize derives the output size for resampling an image of size
// original toward desired.
//
// The aspect ratio is always max(w,h)/min(w,h) of the original, so it is >= 1.
// Portrait sources either clamp into the ThumbnailMax box (thumbnail mode) or
// fit the desired height. Landscape and square sources scale the desired
// height by the aspect ratio; if that overflows screenBound the output fits
// the desired width instead, and in thumbnail mode it clamps into the
// ThumbnailMax box. The branch structure and thresholds are contractual; do
// not fold the cases together.
func ComputeOutputSize(original, desired Size, thumbnail bool, screenBound int) (Size, error) {
	if original.Width <= 0 || original.Height <= 0 {
		return Size{}, fmt.Errorf("%w: original %s", ErrInvalidSize, original)
	}
	if desired.Width <= 0 || desired.Height <= 0 {
		return Size{}, fmt.Errorf("%w: desired %s", ErrInvalidSize, desired)
	}

	longEdge := float64(max(original.Width, original.Height))
	shortEdge := float64(min(original.Width, original.Height))
	aspect := longEdge / shortEdge

	if original.Height > original.Width {
		heightCandidate := float64(desired.Width) * aspect
		if thumbnail && heightCandidate > ThumbnailMax {
			return Size{
				Width:  round(ThumbnailMax / aspect),
				Height: ThumbnailMax,
			}, nil
		}
		return Size{
			Width:  round(float64(desired.Height) / aspect),
			Height: desired.Height,
		}, nil
	}

	widthCandidate := float64(desired.Height) * aspect
	switch {
	case widthCandidate > float64(screenBound):
		return Size{
			Width:  desired.Width,
			Height: round(float64(desired.Width) / aspect),
		}, nil
	case thumbnail && widthCandidate > ThumbnailMax:
		return Size{
			Width:  ThumbnailMax,
			Height: round(ThumbnailMax / aspect),
		}, nil
	default:
		return Size{
			Width:  round(widthCandidate),
			Height: desired.Height,
		}, nil
	}
}

func round(v float64) int {
	return int(v + 0.5)
}
