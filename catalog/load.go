package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// File is the on-disk catalog shape.
//
//	components:
//	  bulb:
//	    name: Light Bulb
//	    resistance: 12
//	    terminals: [terminal1, terminal2]
//	wire:
//	  resistance: 0.02
//	thresholds:
//	  lighting: 0.15
//
// Every component entry present in a file replaces the built-in entry for that
// type as a whole. Wire, grid and threshold fields override field by field.
type File struct {
	Components map[Type]Spec `yaml:"components" json:"components" validate:"required,dive"`
	Wire       WireSpec      `yaml:"wire" json:"wire"`
	Grid       Grid          `yaml:"grid" json:"grid"`
	Thresholds Thresholds    `yaml:"thresholds" json:"thresholds"`
}

// File returns a deep copy of c in file form.
func (c *Catalog) File() File {
	f := File{
		Components: make(map[Type]Spec, len(c.specs)),
		Wire:       c.wire,
		Grid:       c.grid,
		Thresholds: c.thresholds,
	}
	for t := range c.specs {
		f.Components[t], _ = c.Spec(t)
	}

	return f
}

// Encode writes c as YAML.
func (c *Catalog) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.File()); err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}

	return enc.Close()
}

// New builds a Catalog from f after validating it.
func New(f File) (*Catalog, error) {
	// 1. Only the four known types, all of them present
	for t := range f.Components {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
		}
	}
	for _, t := range Types() {
		if _, ok := f.Components[t]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingType, t)
		}
	}

	// 2. Struct tags
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, formatValidationError(err))
	}

	// 3. The analyzer walks battery positive to negative
	bat := f.Components[Battery]
	if !contains(bat.Terminals, TerminalPositive) || !contains(bat.Terminals, TerminalNegative) {
		return nil, ErrBatteryTerminals
	}

	c := &Catalog{
		specs:      make(map[Type]Spec, len(f.Components)),
		wire:       f.Wire,
		grid:       f.Grid,
		thresholds: f.Thresholds,
	}
	for t, s := range f.Components {
		s.Terminals = append([]string(nil), s.Terminals...)
		s.States = append([]string(nil), s.States...)
		c.specs[t] = s
	}

	return c, nil
}

// Load reads a YAML catalog from r and overlays it on Default.
// An empty document yields the default catalog.
func Load(r io.Reader) (*Catalog, error) {
	f := Default().File()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	return New(f)
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer fh.Close()

	return Load(fh)
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", e.Namespace())
	case "len":
		return fmt.Errorf("%s: must have exactly %s entries", e.Namespace(), e.Param())
	case "gt", "gte":
		return fmt.Errorf("%s: must be %s %s", e.Namespace(), e.Tag(), e.Param())
	default:
		return fmt.Errorf("%s: validation failed (%s)", e.Namespace(), e.Tag())
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
