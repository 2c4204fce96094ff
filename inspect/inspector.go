package inspect

import (
	"image"
	"math"
	"sort"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"go.rodworks.dev/rodvision/inspect/separation"
	"go.rodworks.dev/rodvision/raster"
)

// Inspector measures connecting rods in backlit grayscale frames. It is
// stateless across frames and safe for concurrent use.
type Inspector struct {
	cfg    Config
	logger golog.Logger
}

// NewInspector validates cfg and builds an Inspector logging through logger.
func NewInspector(cfg Config, logger golog.Logger) (*Inspector, error) {
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.NewLogger("inspect")
	}
	return &Inspector{cfg: cfg, logger: logger}, nil
}

// Config returns the configuration the inspector runs with.
func (ins *Inspector) Config() Config {
	return ins.cfg
}

// Result is everything inspection extracted from one frame.
type Result struct {
	// Rods are the typed rods, in discovery order or top to bottom when
	// configured.
	Rods []RodRecord
	// Threshold is the intensity cut segmentation settled on.
	Threshold uint8
	// Diagnostics collects what did not become a typed rod.
	Diagnostics Diagnostics
}

// Inspect runs the pipeline over one frame: median prefilter, automatic
// threshold, morphological opening, component labeling, then per component
// the distractor gates, touching-rod separation and rod measurement. The
// input raster is only read. A frame that cannot be segmented at all fails
// with a wrapped raster.DegenerateImageError; every other anomaly lands in
// the result diagnostics instead.
func (ins *Inspector) Inspect(img *image.Gray) (*Result, error) {
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, errors.New("empty frame")
	}

	smoothed := raster.MedianFilter3(img, ins.cfg.MedianPasses)
	threshold, err := raster.OtsuThreshold(raster.Histogram(smoothed), ins.cfg.MinContrast)
	if err != nil {
		return nil, errors.Wrap(err, "segmenting frame")
	}
	mask := raster.Binarize(smoothed, threshold, ins.cfg.DarkForeground)
	clean := raster.Open(mask, ins.cfg.MinFeatureRadius)

	labels := raster.LabelComponents(clean)
	contours := raster.FindContours(clean)
	enclosed := raster.FindEnclosedRegions(clean)

	// resolve each component's outer boundary and enclosed holes
	outerOf := make(map[int32]int, labels.Count())
	for i := range contours.Contours {
		if contours.Contours[i].Type != raster.Outer {
			continue
		}
		pts := contours.PointsOf(i)
		lab := labels.At(pts[0].X, pts[0].Y)
		if _, ok := outerOf[lab]; lab != 0 && !ok {
			outerOf[lab] = i
		}
	}
	holesOf := make(map[int32][]raster.Region)
	for _, reg := range enclosed {
		if lab := labels.At(reg.Touch.X, reg.Touch.Y); lab != 0 {
			holesOf[lab] = append(holesOf[lab], reg)
		}
	}

	res := &Result{Threshold: threshold}
	for _, st := range labels.Stats() {
		ins.inspectComponent(st, labels, contours, outerOf, holesOf[st.Label], res)
	}

	if ins.cfg.SortByPosition {
		sort.SliceStable(res.Rods, func(i, j int) bool {
			return ByPosition(&res.Rods[i], &res.Rods[j])
		})
	}

	ins.logger.Debugw("frame inspected",
		"threshold", threshold,
		"components", labels.Count(),
		"rods", len(res.Rods),
		"discarded", len(res.Diagnostics.Discarded),
		"unknown", len(res.Diagnostics.Unknown),
	)
	return res, nil
}

// inspectComponent takes one labeled component through gating, separation and
// measurement, appending rods and diagnostics to res.
func (ins *Inspector) inspectComponent(
	st raster.ComponentStat,
	labels *raster.Labels,
	contours *raster.ContourSet,
	outerOf map[int32]int,
	holes []raster.Region,
	res *Result,
) {
	compactness := math.Inf(1)
	if ci, ok := outerOf[st.Label]; ok {
		compactness = Compactness(st.Area, contours.Perimeter(ci))
	}
	if reason, ok := ins.vetComponent(st.Area, compactness); !ok {
		res.Diagnostics.Discarded = append(res.Diagnostics.Discarded, DiscardedComponent{
			Component:   st.Label,
			Area:        st.Area,
			Compactness: compactness,
			Reason:      reason,
		})
		return
	}

	compMask, origin := labels.ComponentMask(st.Label)
	var asg *separation.Assignment
	if ins.cfg.MaxRodArea > 0 && st.Area <= ins.cfg.MaxRodArea {
		asg = separation.Whole(compMask)
	} else {
		asg = separation.Split(compMask, separation.Params{
			MinSeedArea:       ins.cfg.MinSeedArea,
			MinPeakSeparation: ins.cfg.MinPeakSeparation,
			AmbiguityRatio:    ins.cfg.AmbiguityRatio,
		})
		if asg.Ambiguous {
			res.Diagnostics.Ambiguous = append(res.Diagnostics.Ambiguous, AmbiguousComponent{
				Component: st.Label,
				Seeds:     len(asg.Seeds),
			})
		}
	}

	for region := int32(1); region <= int32(asg.Regions); region++ {
		rec, err := describeRod(asg.RegionMask(region), origin)
		if err != nil {
			var degenerate *DegenerateShapeError
			if errors.As(err, &degenerate) {
				res.Diagnostics.Degenerate = append(res.Diagnostics.Degenerate, DegenerateComponent{
					Component: st.Label,
					Reason:    degenerate.Reason,
				})
				continue
			}
			ins.logger.Errorw("rod measurement failed", "component", st.Label, "error", err)
			continue
		}
		rec.Component = st.Label
		rec.Ambiguous = asg.Ambiguous

		for _, reg := range holes {
			if asg.At(reg.Touch.X-origin.X, reg.Touch.Y-origin.Y) != region {
				continue
			}
			rec.Holes = append(rec.Holes, Hole{
				Center:   reg.Centroid,
				Diameter: 2 * math.Sqrt(float64(reg.Area)/math.Pi),
				Area:     reg.Area,
			})
		}

		if rec.Elongation < ins.cfg.MinElongation {
			res.Diagnostics.Discarded = append(res.Diagnostics.Discarded, DiscardedComponent{
				Component:   st.Label,
				Area:        rec.Area,
				Compactness: compactness,
				Reason:      DiscardNotElongated,
			})
			continue
		}

		rec.Type = ClassifyHoleCount(len(rec.Holes))
		if rec.Type == TypeUnknown {
			res.Diagnostics.Unknown = append(res.Diagnostics.Unknown, *rec)
			continue
		}
		res.Rods = append(res.Rods, *rec)
	}
}
