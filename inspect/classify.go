package inspect

import "math"

// DiscardReason says why a candidate was dropped on its way through the
// pipeline.
type DiscardReason int

const (
	// DiscardTooSmall marks components not exceeding the minimum rod
	// area.
	DiscardTooSmall DiscardReason = iota + 1
	// DiscardNotCompact marks components whose outer-boundary compactness
	// falls outside the configured band, mostly screws and clutter.
	DiscardNotCompact
	// DiscardNotElongated marks separated rods rounder than a rod can be,
	// washers mostly.
	DiscardNotElongated
)

func (r DiscardReason) String() string {
	switch r {
	case DiscardTooSmall:
		return "below minimum rod area"
	case DiscardNotCompact:
		return "compactness outside rod band"
	case DiscardNotElongated:
		return "not elongated enough"
	default:
		return "unknown"
	}
}

// Compactness is 4πA/P², 1 for an ideal disk and falling toward 0 as the
// boundary stretches. Small digital shapes can exceed 1; a boundary with no
// length reads as +Inf.
func Compactness(area int, perimeter float64) float64 {
	if perimeter <= 0 {
		return math.Inf(1)
	}
	return 4 * math.Pi * float64(area) / (perimeter * perimeter)
}

// vetComponent applies the pre-separation distractor gates to a component.
func (ins *Inspector) vetComponent(area int, compactness float64) (DiscardReason, bool) {
	if area <= ins.cfg.MinRodArea {
		return DiscardTooSmall, false
	}
	if compactness < ins.cfg.CompactnessMin || compactness > ins.cfg.CompactnessMax {
		return DiscardNotCompact, false
	}
	return 0, true
}
