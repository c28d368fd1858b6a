// Package codec selects the JSON encoder used for clustering reports.
//
// Reports record the codec name they were written with, so a report can be
// decoded with the same implementation that produced it.
package codec

import (
	"fmt"
	"sort"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case JSON{}.Name():
		return JSON{}, true
	case GoJSON{}.Name():
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Lookup is like ByName but returns an error naming the known codecs.
func Lookup(name string) (Codec, error) {
	if c, ok := ByName(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("codec: unknown codec %q (known: %v)", name, Names())
}

// Names returns the names of the built-in codecs in sorted order.
func Names() []string {
	names := []string{JSON{}.Name(), GoJSON{}.Name()}
	sort.Strings(names)
	return names
}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
