package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	K     int          `json:"k"`
	Means [][2]float64 `json:"means"`
	Name  string       `json:"name,omitempty"`
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	c, err := Lookup("json")
	require.NoError(t, err)
	assert.IsType(t, JSON{}, c)

	_, err = Lookup("gob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "go-json")
}

func TestCodecsAgree(t *testing.T) {
	in := payload{K: 2, Means: [][2]float64{{1, 0.5}, {10.25, -3}}}

	std := MustMarshal(JSON{}, in)
	fast := MustMarshal(GoJSON{}, in)
	assert.JSONEq(t, string(std), string(fast))

	var out payload
	require.NoError(t, GoJSON{}.Unmarshal(std, &out))
	assert.Equal(t, in, out)
}

func TestIndenter(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		ind, ok := c.(Indenter)
		require.True(t, ok, c.Name())
		b, err := ind.MarshalIndent(payload{K: 1}, "", "  ")
		require.NoError(t, err)
		assert.Contains(t, string(b), "\n  \"k\": 1")
	}
}

func TestMustMarshalDefault(t *testing.T) {
	assert.Equal(t, `{"k":3,"means":null}`, string(MustMarshal(nil, payload{K: 3})))
}

func TestMustMarshalPanics(t *testing.T) {
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
