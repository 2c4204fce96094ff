package inspect

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Config tunes the whole inspection pipeline. The zero value is not usable;
// start from DefaultConfig and override fields as needed.
type Config struct {
	// DarkForeground is set when parts image darker than the backlight.
	DarkForeground bool `json:"dark_foreground"`
	// MedianPasses is the number of 3x3 median prefilter passes run
	// before thresholding.
	MedianPasses int `json:"median_passes"`
	// MinContrast is the minimum occupied intensity spread for a frame to
	// count as segmentable at all.
	MinContrast int `json:"min_contrast"`
	// MinFeatureRadius is the radius of the opening disk, the size of
	// speckle and filament the noise filter erases.
	MinFeatureRadius int `json:"min_feature_radius"`
	// MinRodArea is the pixel area a component must strictly exceed to
	// stay a rod candidate.
	MinRodArea int `json:"min_rod_area"`
	// MaxRodArea, when positive, is the area above which a component gets
	// probed for touching rods; smaller components skip the probe. Zero
	// probes every candidate.
	MaxRodArea int `json:"max_rod_area"`
	// CompactnessMin and CompactnessMax bound 4πA/P² for rod candidates.
	CompactnessMin float64 `json:"compactness_min"`
	CompactnessMax float64 `json:"compactness_max"`
	// MinElongation is the slenderness below which a separated rod is
	// rejected as a washer-like distractor.
	MinElongation float64 `json:"min_elongation"`
	// MinSeedArea drops separation seeds with smaller peak plateaus.
	MinSeedArea int `json:"min_seed_area"`
	// MinPeakSeparation is the minimum pixel distance between separation
	// seeds.
	MinPeakSeparation int `json:"min_peak_separation"`
	// AmbiguityRatio is the saddle-to-peak fraction at which a split is
	// called ambiguous and collapsed.
	AmbiguityRatio float64 `json:"ambiguity_ratio"`
	// SortByPosition orders reported rods top to bottom instead of
	// discovery order.
	SortByPosition bool `json:"sort_by_position"`
}

// DefaultConfig is tuned for backlit rods a few thousand pixels in area.
func DefaultConfig() Config {
	return Config{
		DarkForeground:    true,
		MedianPasses:      4,
		MinContrast:       10,
		MinFeatureRadius:  2,
		MinRodArea:        300,
		MaxRodArea:        6000,
		CompactnessMin:    0.04,
		CompactnessMax:    0.8,
		MinElongation:     2,
		MinSeedArea:       4,
		MinPeakSeparation: 10,
		AmbiguityRatio:    0.8,
	}
}

// LoadConfiguration reads a Config from a JSON file, with absent fields kept
// at their defaults, and validates the result.
func LoadConfiguration(path string) (*Config, error) {
	cfg := DefaultConfig()
	cleaned := filepath.Clean(path)
	f, err := os.Open(cleaned)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", cleaned)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config invariants, reporting violations against path.
func (c *Config) Validate(path string) error {
	if c.MedianPasses < 0 {
		return utils.NewConfigValidationError(path, errors.New("median_passes must be >= 0"))
	}
	if c.MinContrast < 1 || c.MinContrast > 255 {
		return utils.NewConfigValidationError(path, errors.New("min_contrast must be within [1, 255]"))
	}
	if c.MinFeatureRadius < 0 {
		return utils.NewConfigValidationError(path, errors.New("min_feature_radius must be >= 0"))
	}
	if c.MinRodArea < 1 {
		return utils.NewConfigValidationError(path, errors.New("min_rod_area must be >= 1"))
	}
	if c.MaxRodArea < 0 {
		return utils.NewConfigValidationError(path, errors.New("max_rod_area must be >= 0"))
	}
	if c.MaxRodArea > 0 && c.MaxRodArea <= c.MinRodArea {
		return utils.NewConfigValidationError(path, errors.New("max_rod_area must exceed min_rod_area"))
	}
	if c.CompactnessMin < 0 || c.CompactnessMax <= c.CompactnessMin {
		return utils.NewConfigValidationError(path, errors.New("compactness band must satisfy 0 <= min < max"))
	}
	if c.MinElongation < 1 {
		return utils.NewConfigValidationError(path, errors.New("min_elongation must be >= 1"))
	}
	if c.MinSeedArea < 1 {
		return utils.NewConfigValidationError(path, errors.New("min_seed_area must be >= 1"))
	}
	if c.MinPeakSeparation < 1 {
		return utils.NewConfigValidationError(path, errors.New("min_peak_separation must be >= 1"))
	}
	if c.AmbiguityRatio <= 0 || c.AmbiguityRatio > 1 {
		return utils.NewConfigValidationError(path, errors.New("ambiguity_ratio must be within (0, 1]"))
	}
	return nil
}
