package scene

import (
	"fmt"
	"sort"
)

// Builder creates a built-in scene at the given resolution
type Builder func(width, height int) *Scene

var builtins = map[string]Builder{
	"cornell": NewCornellScene,
	"default": NewDefaultScene,
	"empty":   NewEmptyScene,
}

// Builtin returns the named built-in scene
func Builtin(name string, width, height int) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, BuiltinNames())
	}
	return build(width, height), nil
}

// BuiltinNames lists the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
