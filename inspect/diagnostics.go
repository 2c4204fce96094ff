package inspect

// DiscardedComponent records a candidate the distractor gates dropped.
type DiscardedComponent struct {
	// Component is the cleaned-mask label the candidate came from.
	Component   int32
	Area        int
	Compactness float64
	Reason      DiscardReason
}

// AmbiguousComponent records a component whose separation was not trusted
// and collapsed back to a single mask.
type AmbiguousComponent struct {
	Component int32
	// Seeds is how many peaks were found before the collapse.
	Seeds int
}

// DegenerateComponent records a rod candidate whose shape measurements came
// out undefined.
type DegenerateComponent struct {
	Component int32
	Reason    string
}

// Diagnostics collects everything about a frame that did not become a typed
// rod record. A clean frame of well-separated known rods leaves it empty.
type Diagnostics struct {
	// Discarded lists components and separated regions the gates dropped.
	Discarded []DiscardedComponent
	// Unknown lists structurally sound rods matching no model, with
	// ambiguous-separation leftovers among them.
	Unknown []RodRecord
	// Ambiguous lists components kept whole after an untrusted split.
	Ambiguous []AmbiguousComponent
	// Degenerate lists candidates with undefined geometry.
	Degenerate []DegenerateComponent
}

// Empty reports a frame with nothing flagged.
func (d *Diagnostics) Empty() bool {
	return len(d.Discarded) == 0 && len(d.Unknown) == 0 &&
		len(d.Ambiguous) == 0 && len(d.Degenerate) == 0
}
