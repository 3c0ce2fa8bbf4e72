// Package levels holds the builder's guided levels, the rules that decide
// when a level is complete, the badges an analysis can earn, and the
// progress arithmetic between levels. Persisting progress is the caller's job.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/circuitq/analysis"
)

//go:embed levels.yaml
var builtin []byte

// Sentinel errors.
var (
	ErrLevelNotFound = errors.New("levels: level not found")
	ErrInvalidSet    = errors.New("levels: invalid level set")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Requirements are the completion rule of a level: every set condition must
// hold for the analysis result.
type Requirements struct {
	BulbsOn  int  `yaml:"bulbsOn" json:"bulbsOn" validate:"gte=0"`
	Switch   bool `yaml:"switch,omitempty" json:"switch,omitempty"`
	Resistor bool `yaml:"resistor,omitempty" json:"resistor,omitempty"`
	Parallel bool `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	Series   bool `yaml:"series,omitempty" json:"series,omitempty"`
}

// Met reports whether res satisfies r.
func (r Requirements) Met(res analysis.Result) bool {
	return res.BulbsOn >= r.BulbsOn &&
		(!r.Switch || res.HasSwitch) &&
		(!r.Resistor || res.HasResistor) &&
		(!r.Parallel || res.HasParallel) &&
		(!r.Series || res.HasSeries)
}

// Level is one guided exercise.
type Level struct {
	ID                  int          `yaml:"id" json:"id" validate:"gte=1"`
	Title               string       `yaml:"title" json:"title" validate:"required"`
	Description         string       `yaml:"description" json:"description"`
	Objectives          []string     `yaml:"objectives" json:"objectives" validate:"min=1,dive,required"`
	AvailableComponents []string     `yaml:"availableComponents" json:"availableComponents" validate:"min=1,dive,oneof=battery bulb resistor switch wire"`
	Requires            Requirements `yaml:"requires" json:"requires"`
	Hint                string       `yaml:"hint" json:"hint"`
}

// Complete reports whether res completes l.
func (l Level) Complete(res analysis.Result) bool {
	return l.Requires.Met(res)
}

// Set is an ordered list of levels numbered 1..Len().
type Set struct {
	levels []Level
}

type setFile struct {
	Levels []Level `yaml:"levels" validate:"min=1,dive"`
}

// Default returns the built-in five levels.
func Default() *Set {
	s, err := decode(builtin)
	if err != nil {
		panic(fmt.Sprintf("levels: built-in set: %v", err))
	}

	return s
}

// Load reads a level set from YAML.
func Load(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("levels: read: %w", err)
	}

	return decode(data)
}

// LoadFile reads a level set from the YAML file at path.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}

	return decode(data)
}

func decode(data []byte) (*Set, error) {
	var f setFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSet, err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSet, err)
	}
	for i, l := range f.Levels {
		if l.ID != i+1 {
			return nil, fmt.Errorf("%w: level %d has id %d", ErrInvalidSet, i+1, l.ID)
		}
	}

	return &Set{levels: f.Levels}, nil
}

// Len returns the number of levels.
func (s *Set) Len() int { return len(s.levels) }

// All returns every level in order.
func (s *Set) All() []Level {
	out := make([]Level, len(s.levels))
	copy(out, s.levels)

	return out
}

// Level returns the level with the given 1-based id.
func (s *Set) Level(id int) (Level, error) {
	if id < 1 || id > len(s.levels) {
		return Level{}, fmt.Errorf("%w: %d", ErrLevelNotFound, id)
	}

	return s.levels[id-1], nil
}

// Next returns the id after current, clamped to the last level.
func (s *Set) Next(current int) int {
	return max(1, min(current+1, len(s.levels)))
}

// Prev returns the id before current, clamped to the first level.
func (s *Set) Prev(current int) int {
	return max(current-1, 1)
}

// Completed returns the ids of every level res would complete.
func (s *Set) Completed(res analysis.Result) []int {
	var ids []int
	for _, l := range s.levels {
		if l.Complete(res) {
			ids = append(ids, l.ID)
		}
	}

	return ids
}
