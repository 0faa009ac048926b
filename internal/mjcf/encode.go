package mjcf

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Encode writes the document as indented XML. The output is a canonical
// form: attribute order follows the type definitions and vectors are
// re-formatted, so decode/encode round-trips are stable rather than
// byte-identical.
func Encode(w io.Writer, doc *Document) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("mjcf: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func EncodeFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Encode(f, doc)
}
