package circuit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a saved circuit: the component and wire lists the UI holds.
//
//	components:
//	  - {id: bat, type: battery, position: {x: 90, y: 90}}
//	  - {id: sw, type: switch, state: closed}
//	wires:
//	  - id: w1
//	    from: {componentId: bat, terminal: positive}
//	    to: {componentId: sw, terminal: terminal1}
type Document struct {
	Components []Component `yaml:"components" json:"components"`
	Wires      []Wire      `yaml:"wires" json:"wires"`
}

// Decode reads a YAML (or JSON, which is valid YAML) document from r.
func Decode(r io.Reader) (Document, error) {
	var d Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("circuit: decode: %w", err)
	}

	return d, nil
}

// DecodeFile opens path and calls Decode.
func DecodeFile(path string) (Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("circuit: open %q: %w", path, err)
	}
	defer fh.Close()

	return Decode(fh)
}

// Encode writes d as YAML.
func (d Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("circuit: encode: %w", err)
	}

	return enc.Close()
}
