package circuit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/circuitq/catalog"
)

var validate = newValidator()

// newValidator adds the component_type tag, which accepts exactly the types
// listed by catalog.Types.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// RegisterValidation fails only for an empty tag or nil func.
	_ = v.RegisterValidation("component_type", func(fl validator.FieldLevel) bool {
		return catalog.Type(fl.Field().String()).Valid()
	})

	return v
}

// ValidateComponent checks field-level constraints on c.
func ValidateComponent(c Component) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: component %q: %w", ErrInvalid, c.ID, formatValidationError(err))
	}

	return nil
}

// CheckWire verifies that w is well formed and lands on existing terminals
// of two distinct components.
func CheckWire(cat *catalog.Catalog, components []Component, w Wire) error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("%w: wire %q: %w", ErrInvalid, w.ID, formatValidationError(err))
	}
	if w.From.ComponentID == w.To.ComponentID {
		return fmt.Errorf("%w: %q", ErrSameComponent, w.From.ComponentID)
	}
	for _, end := range []Endpoint{w.From, w.To} {
		c, ok := Find(components, end.ComponentID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownComponent, end.ComponentID)
		}
		if !cat.HasTerminal(c.Type, end.Terminal) {
			return fmt.Errorf("%w: %s has no terminal %q", ErrUnknownTerminal, c.Type, end.Terminal)
		}
	}

	return nil
}

// Validate checks a whole document: every component valid, IDs unique,
// every wire well formed between distinct components. References to missing
// components are tolerated here because analysis ignores them; use CheckWire
// to reject them at edit time.
func Validate(d Document) error {
	seen := make(map[string]struct{}, len(d.Components))
	for _, c := range d.Components {
		if err := ValidateComponent(c); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: component %q", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	wires := make(map[string]struct{}, len(d.Wires))
	for _, w := range d.Wires {
		if err := validate.Struct(w); err != nil {
			return fmt.Errorf("%w: wire %q: %w", ErrInvalid, w.ID, formatValidationError(err))
		}
		if w.From.ComponentID == w.To.ComponentID {
			return fmt.Errorf("%w: wire %q", ErrSameComponent, w.ID)
		}
		if _, dup := wires[w.ID]; dup {
			return fmt.Errorf("%w: wire %q", ErrDuplicateID, w.ID)
		}
		wires[w.ID] = struct{}{}
	}

	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", e.Namespace())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %v", e.Namespace(), e.Param(), e.Value())
	case "component_type":
		names := make([]string, 0, len(catalog.Types()))
		for _, t := range catalog.Types() {
			names = append(names, string(t))
		}
		return fmt.Errorf("%s: must be one of [%s], got %v", e.Namespace(), strings.Join(names, " "), e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", e.Namespace(), e.Tag())
	}
}
