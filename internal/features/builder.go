// Package features derives fixed-schema feature vectors from pre-match
// rating snapshots. Builders are pure functions of their inputs, so
// training and prediction compute identical features.
package features

import (
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/rating"
)

// SchemaVersion identifies the feature layout; model artifacts record
// the schema they were trained against and refuse mismatched vectors
const SchemaVersion = "v2"

// Feature names, in schema order
const (
	FeatEloDiff     = "elo_diff"
	FeatEloSurfDiff = "elo_surf_diff"
	FeatFormDiff    = "form_diff"
	FeatH2HDiff     = "h2h_diff"
	FeatFatigueDiff = "fatigue_diff"
	FeatRestDiff    = "rest_diff"
	FeatSurfHard    = "surface_hard"
	FeatSurfClay    = "surface_clay"
	FeatSurfGrass   = "surface_grass"
)

// Config holds feature derivation parameters
type Config struct {
	Fatigue FatigueParams
	// RestCapDays bounds the days-since-last-match difference so one
	// long layoff cannot dominate the feature
	RestCapDays int
}

// DefaultConfig returns the parameters the models are tuned with
func DefaultConfig() Config {
	return Config{
		Fatigue:     DefaultFatigueParams(),
		RestCapDays: 60,
	}
}

// Builder derives feature vectors. Stateless and safe for concurrent
// use.
type Builder struct {
	cfg    Config
	schema []string
}

// NewBuilder creates a feature builder
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg: cfg,
		schema: []string{
			FeatEloDiff,
			FeatEloSurfDiff,
			FeatFormDiff,
			FeatH2HDiff,
			FeatFatigueDiff,
			FeatRestDiff,
			FeatSurfHard,
			FeatSurfClay,
			FeatSurfGrass,
		},
	}
}

// Schema returns the feature names in vector order
func (b *Builder) Schema() []string {
	out := make([]string, len(b.schema))
	copy(out, b.schema)
	return out
}

// Build derives the feature vector for a replayed match from its
// pre-match snapshots
func (b *Builder) Build(snap rating.MatchSnapshot) *models.FeatureVector {
	return b.BuildPair(snap.PlayerA, snap.PlayerB, snap.Match.Result.Surface)
}

// BuildPair derives features for any A-versus-B pairing, used for both
// historical matches and upcoming fixtures
func (b *Builder) BuildPair(a, p rating.Snapshot, surface models.Surface) *models.FeatureVector {
	restA := capInt(a.DaysSinceLast, b.cfg.RestCapDays)
	restB := capInt(p.DaysSinceLast, b.cfg.RestCapDays)

	values := []float64{
		a.Rating - p.Rating,
		a.SurfaceRating - p.SurfaceRating,
		a.Form - p.Form,
		a.H2HScore - p.H2HScore,
		b.cfg.Fatigue.Penalty(a) - b.cfg.Fatigue.Penalty(p),
		float64(restA - restB),
		boolFeature(surface == models.SurfaceHard),
		boolFeature(surface == models.SurfaceClay),
		boolFeature(surface == models.SurfaceGrass),
	}

	fv, _ := models.NewFeatureVector(b.Schema(), values)
	return fv
}

// Label returns the training label for a replayed match: 1 when player
// A won. The second return is false for matches without a definite
// winner, which carry no label.
func Label(snap rating.MatchSnapshot) (float64, bool) {
	if !snap.Match.Result.HasWinner() {
		return 0, false
	}
	if snap.Match.Result.Winner == models.WinnerA {
		return 1, true
	}
	return 0, true
}

func capInt(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
