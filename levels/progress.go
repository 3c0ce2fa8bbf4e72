package levels

import (
	"slices"

	"github.com/katalvlaran/circuitq/analysis"
)

// Progress is a player's standing in a level set.
type Progress struct {
	CurrentLevel    int      `yaml:"currentLevel" json:"currentLevel"`
	CompletedLevels int      `yaml:"completedLevels" json:"completedLevels"`
	Badges          []string `yaml:"badges,omitempty" json:"badges,omitempty"`
}

// NewProgress starts at level 1 with nothing completed.
func NewProgress() Progress {
	return Progress{CurrentLevel: 1}
}

// Advance checks res against the current level. On completion the player
// moves past both the current level and the furthest level completed so far,
// capped at the last level, and ok is true. Otherwise p is returned unchanged.
func (s *Set) Advance(p Progress, res analysis.Result) (next Progress, ok bool) {
	l, err := s.Level(p.CurrentLevel)
	if err != nil || !l.Complete(res) {
		return p, false
	}

	reached := max(p.CurrentLevel+1, p.CompletedLevels+1)
	next = p
	next.CompletedLevels = min(reached-1, s.Len())
	next.CurrentLevel = min(reached, s.Len())

	return next, true
}

// Badge is an achievement earned by building a circuit with some property.
type Badge struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Badges in award order.
var (
	FirstLight  = Badge{ID: "first-light", Name: "First Light"}
	ParallelPro = Badge{ID: "parallel-pro", Name: "Parallel Pro"}
	SafetyFirst = Badge{ID: "safety-first", Name: "Safety First"}
)

// EarnedBadges returns the badges res earns that are not already in have.
func EarnedBadges(res analysis.Result, have []string) []Badge {
	var out []Badge
	award := func(b Badge, cond bool) {
		if cond && !slices.Contains(have, b.ID) {
			out = append(out, b)
		}
	}
	award(FirstLight, res.BulbsOn > 0)
	award(ParallelPro, res.HasParallel)
	award(SafetyFirst, res.ShortCircuit)

	return out
}

// Record applies res to p: newly earned badges are appended and the level
// advances if res completes it. It returns the updated progress and the
// badges just earned.
func (s *Set) Record(p Progress, res analysis.Result) (Progress, []Badge) {
	earned := EarnedBadges(res, p.Badges)
	next, _ := s.Advance(p, res)
	next.Badges = slices.Clone(p.Badges)
	for _, b := range earned {
		next.Badges = append(next.Badges, b.ID)
	}

	return next, earned
}
