package fiducial

import (
	"fmt"
	"sort"
)

// DefaultDictionary is the dictionary used when none is configured.
const DefaultDictionary = "GEN_4X4_250"

// BuiltinInfo describes a built-in dictionary.
type BuiltinInfo struct {
	Name       string
	MarkerSize int
	Count      int
}

var builtins = func() map[string]BuiltinInfo {
	m := make(map[string]BuiltinInfo)
	for _, size := range []int{4, 5, 6} {
		for _, count := range []int{50, 100, 250} {
			name := fmt.Sprintf("GEN_%dX%d_%d", size, size, count)
			m[name] = BuiltinInfo{Name: name, MarkerSize: size, Count: count}
		}
	}
	return m
}()

// Builtins lists the built-in dictionaries ordered by marker size, then count.
func Builtins() []BuiltinInfo {
	out := make([]BuiltinInfo, 0, len(builtins))
	for _, b := range builtins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MarkerSize != out[j].MarkerSize {
			return out[i].MarkerSize < out[j].MarkerSize
		}
		return out[i].Count < out[j].Count
	})
	return out
}

// Builtin returns the description of a built-in dictionary.
func Builtin(name string) (BuiltinInfo, bool) {
	b, ok := builtins[name]
	return b, ok
}
