package scene

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/myolab/myolab/internal/mjcf"
)

//go:embed scenes/*.xml
var scenesFS embed.FS

// BuiltinNames lists the scene models shipped with the binary.
func BuiltinNames() []string {
	entries, err := scenesFS.ReadDir("scenes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".xml"))
	}
	sort.Strings(names)
	return names
}

// Builtin returns the raw MJCF source of a shipped scene.
func Builtin(name string) ([]byte, error) {
	data, err := scenesFS.ReadFile("scenes/" + name + ".xml")
	if err != nil {
		return nil, fmt.Errorf("scene: unknown builtin %q (available: %v)", name, BuiltinNames())
	}
	return data, nil
}

// LoadBuiltin decodes and compiles a shipped scene.
func LoadBuiltin(name string) (*Model, error) {
	data, err := Builtin(name)
	if err != nil {
		return nil, err
	}
	doc, err := mjcf.Decode(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}
