package mjcf

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// DefaultTimestep is the engine default when <option> omits one.
const DefaultTimestep = 0.002

// Decode reads an MJCF document. Document-level defaults (compiler angle
// and coordinate, option timestep) are filled in; per-element defaults
// stay unset so the <default> section can be applied during compilation.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("mjcf: decode: %w", err)
	}
	doc.fillDefaults()
	if err := doc.validateEnums(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func DecodeFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) fillDefaults() {
	if d.Compiler == nil {
		d.Compiler = &Compiler{}
	}
	if d.Compiler.Angle == "" {
		d.Compiler.Angle = "degree"
	}
	if d.Compiler.Coordinate == "" {
		d.Compiler.Coordinate = "local"
	}
	if d.Option == nil {
		d.Option = &Option{}
	}
	if d.Option.Timestep == 0 {
		d.Option.Timestep = DefaultTimestep
	}
	if d.Option.Integrator == "" {
		d.Option.Integrator = "Euler"
	}
}
