package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	product   string
	origin    string
	footprint *float64
	strength  *float64
}

func ptr(v float64) *float64 { return &v }

func fromPtr(p func(sample) *float64) Field[sample] {
	return func(s sample) (float64, bool) {
		v := p(s)
		if v == nil {
			return 0, false
		}
		return *v, true
	}
}

func TestBuild(t *testing.T) {
	items := []sample{
		{product: "cement", origin: "local", footprint: ptr(600), strength: ptr(42.5)},
		{product: "cement", origin: "local", footprint: ptr(700)},
		{product: "cement", origin: "import", footprint: ptr(820)},
		{product: "concrete", origin: "local", footprint: ptr(250), strength: ptr(28)},
		{product: "concrete", origin: "local", footprint: ptr(350), strength: ptr(35)},
		{product: "mortar", origin: "local"},
	}

	groups := Build(items,
		func(s sample) []string { return []string{s.product, s.origin} },
		map[string]Field[sample]{
			"footprint": fromPtr(func(s sample) *float64 { return s.footprint }),
			"strength":  fromPtr(func(s sample) *float64 { return s.strength }),
		},
	)

	require.Len(t, groups, 3, "a group without values is never emitted")

	assert.Equal(t, []string{"cement", "import"}, groups[0].Key)
	assert.Equal(t, Stats{Mean: 820, Min: 820, Max: 820, Count: 1}, groups[0].Fields["footprint"])
	_, hasStrength := groups[0].Fields["strength"]
	assert.False(t, hasStrength)

	assert.Equal(t, []string{"cement", "local"}, groups[1].Key)
	assert.Equal(t, Stats{Mean: 650, Min: 600, Max: 700, Count: 2}, groups[1].Fields["footprint"])
	assert.Equal(t, Stats{Mean: 42.5, Min: 42.5, Max: 42.5, Count: 1}, groups[1].Fields["strength"])

	assert.Equal(t, []string{"concrete", "local"}, groups[2].Key)
	assert.Equal(t, 300.0, groups[2].Fields["footprint"].Mean)
	assert.Equal(t, 31.5, groups[2].Fields["strength"].Mean)
}

func TestBuild_Empty(t *testing.T) {
	groups := Build[sample](nil, func(s sample) []string { return nil }, nil)
	assert.Empty(t, groups)
}

func TestSummarize(t *testing.T) {
	values := []float64{3, 1, 2}
	got := Summarize(values)
	assert.Equal(t, Stats{Mean: 2, Min: 1, Max: 3, Count: 3}, got)
	assert.Equal(t, []float64{3, 1, 2}, values)
}
