package rating

import (
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/normalize"
)

// Snapshot captures one player's state as it stood immediately before
// a match. FeatureBuilder consumes snapshots only, never live state,
// so no post-match information can leak into features.
type Snapshot struct {
	Player        string
	Rating        float64
	SurfaceRating float64
	MatchesPlayed int
	Form          float64
	H2HScore      float64
	DaysSinceLast int
	Matches7d     int
	Matches14d    int
	Matches30d    int
}

// MatchSnapshot pairs a merged match with both players' pre-match
// snapshots
type MatchSnapshot struct {
	Match     models.MergedMatch
	PlayerA   Snapshot
	PlayerB   Snapshot
	ExpectedA float64
	// Skipped is set when the match had no definite winner and so
	// could not update ratings
	Skipped bool
}

// Engine replays match history in chronological order, maintaining the
// single mutable rating state in the system. Not safe for concurrent
// use; replay is inherently sequential.
type Engine struct {
	cfg        Config
	players    map[string]*PlayerState
	normalizer *normalize.Normalizer
	logger     *logrus.Logger
	skipped    int
}

// NewEngine creates an engine with empty state
func NewEngine(cfg Config, normalizer *normalize.Normalizer, logger *logrus.Logger) *Engine {
	if normalizer == nil {
		normalizer = normalize.New()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		cfg:        cfg,
		players:    make(map[string]*PlayerState),
		normalizer: normalizer,
		logger:     logger,
	}
}

// Reset discards all rating state so history can be replayed from
// scratch
func (e *Engine) Reset() {
	e.players = make(map[string]*PlayerState)
	e.skipped = 0
}

// SkippedMatches reports how many matches were skipped for lacking a
// definite winner
func (e *Engine) SkippedMatches() int {
	return e.skipped
}

// Players returns the number of players with state
func (e *Engine) Players() int {
	return len(e.players)
}

// Replay processes matches strictly in chronological order and returns
// one MatchSnapshot per input match, in replay order. Input arriving
// out of date order is stably re-sorted by date first; within a date,
// input order is preserved.
func (e *Engine) Replay(matches []models.MergedMatch) []MatchSnapshot {
	ordered := make([]models.MergedMatch, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Result.Date.Before(ordered[j].Result.Date)
	})

	snapshots := make([]MatchSnapshot, 0, len(ordered))
	for i := range ordered {
		snapshots = append(snapshots, e.step(&ordered[i]))
	}

	e.logger.WithFields(logrus.Fields{
		"matches": len(ordered),
		"players": len(e.players),
		"skipped": e.skipped,
	}).Info("Rating replay complete")

	return snapshots
}

// SnapshotPair exposes the current pre-match view for an upcoming
// fixture between two players without mutating state. Names the replay
// has never seen read as base-rated and are not inserted.
func (e *Engine) SnapshotPair(playerA, playerB string, surface models.Surface, date time.Time) (Snapshot, Snapshot) {
	keyA := e.normalizer.Normalize(playerA)
	keyB := e.normalizer.Normalize(playerB)
	a := e.peek(keyA, playerA)
	b := e.peek(keyB, playerB)
	return e.snapshot(a, keyB, surface, date), e.snapshot(b, keyA, surface, date)
}

// step advances state by one match and returns the pre-match view
func (e *Engine) step(m *models.MergedMatch) MatchSnapshot {
	res := &m.Result
	keyA := e.normalizer.Normalize(res.PlayerA)
	keyB := e.normalizer.Normalize(res.PlayerB)
	a := e.lookup(keyA, res.PlayerA)
	b := e.lookup(keyB, res.PlayerB)

	snap := MatchSnapshot{
		Match:   *m,
		PlayerA: e.snapshot(a, keyB, res.Surface, res.Date),
		PlayerB: e.snapshot(b, keyA, res.Surface, res.Date),
	}
	snap.ExpectedA = ExpectedScore(snap.PlayerA.Rating, snap.PlayerB.Rating, e.cfg.ScaleConstant)

	if !res.HasWinner() {
		snap.Skipped = true
		e.skipped++
		e.logger.WithFields(logrus.Fields{
			"player_a": res.PlayerA,
			"player_b": res.PlayerB,
			"date":     res.Date.Format("2006-01-02"),
		}).Warn("Match without definite winner, ratings unchanged")
		return snap
	}

	scoreA := 0.0
	if res.Winner == models.WinnerA {
		scoreA = 1.0
	}

	e.applyUpdate(a, b, keyA, keyB, res.Surface, res.Date, scoreA)
	return snap
}

func (e *Engine) applyUpdate(a, b *PlayerState, keyA, keyB string, surface models.Surface, date time.Time, scoreA float64) {
	scoreB := 1.0 - scoreA

	expA := ExpectedScore(a.Overall, b.Overall, e.cfg.ScaleConstant)
	surfA := a.SurfaceRating(surface, e.cfg.BaseRating)
	surfB := b.SurfaceRating(surface, e.cfg.BaseRating)
	expSurfA := ExpectedScore(surfA, surfB, e.cfg.ScaleConstant)

	kA := e.kFactor(a.MatchesPlayed, false)
	kB := e.kFactor(b.MatchesPlayed, false)
	kSurfA := e.kFactor(a.MatchesPlayed, true)
	kSurfB := e.kFactor(b.MatchesPlayed, true)

	a.Overall += kA * (scoreA - expA)
	b.Overall += kB * (scoreB - (1.0 - expA))
	a.Surface[surface] = surfA + kSurfA*(scoreA-expSurfA)
	b.Surface[surface] = surfB + kSurfB*(scoreB-(1.0-expSurfA))

	a.MatchesPlayed++
	b.MatchesPlayed++
	a.RecentResults = append(a.RecentResults, int(scoreA))
	b.RecentResults = append(b.RecentResults, int(scoreB))
	a.MatchDates = append(a.MatchDates, date)
	b.MatchDates = append(b.MatchDates, date)
	a.LastMatchDate = date
	b.LastMatchDate = date

	updateH2H(a, keyB, scoreA > 0.5, e.cfg.H2HDecay)
	updateH2H(b, keyA, scoreB > 0.5, e.cfg.H2HDecay)
}

func (e *Engine) snapshot(p *PlayerState, opponentKey string, surface models.Surface, date time.Time) Snapshot {
	return Snapshot{
		Player:        p.Name,
		Rating:        p.Overall,
		SurfaceRating: p.SurfaceRating(surface, e.cfg.BaseRating),
		MatchesPlayed: p.MatchesPlayed,
		Form:          p.Form(e.cfg.FormWindow),
		H2HScore:      p.H2HScore(opponentKey),
		DaysSinceLast: p.DaysSinceLast(date),
		Matches7d:     p.MatchesWithin(date, 7),
		Matches14d:    p.MatchesWithin(date, 14),
		Matches30d:    p.MatchesWithin(date, 30),
	}
}

func (e *Engine) lookup(key, name string) *PlayerState {
	if p, ok := e.players[key]; ok {
		return p
	}
	p := newPlayerState(name, e.cfg.BaseRating)
	e.players[key] = p
	return p
}

// peek reads a player's state without creating it
func (e *Engine) peek(key, name string) *PlayerState {
	if p, ok := e.players[key]; ok {
		return p
	}
	return newPlayerState(name, e.cfg.BaseRating)
}

// kFactor derives the update step from experience and track
// specificity. Ratings of players below the rookie threshold move
// faster; surface tracks see fewer matches and get their own boost.
func (e *Engine) kFactor(matchesPlayed int, surfaceSpecific bool) float64 {
	k := e.cfg.KFactor
	if matchesPlayed < e.cfg.RookieMatches {
		k *= e.cfg.RookieKMultiplier
	}
	if surfaceSpecific {
		k *= e.cfg.SurfaceKBoost
	}
	return k
}

// ExpectedScore is the standard Elo expectation curve: the probability
// that a player rated ra beats a player rated rb
func ExpectedScore(ra, rb, scale float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (rb-ra)/scale))
}

func updateH2H(p *PlayerState, opponentKey string, won bool, decay float64) {
	rec := p.HeadToHead[opponentKey]
	if won {
		rec.Wins++
	} else {
		rec.Losses++
	}
	rec.Weight = rec.Weight*decay + 1.0
	p.HeadToHead[opponentKey] = rec
}
