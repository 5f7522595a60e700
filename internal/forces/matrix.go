package forces

type pairKey struct{ a, b int }

func keyFor(a, b int) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// Matrix maps unordered species pairs to their active force laws.
// Pairs without an entry fall back to the default list, so lookups are
// always defined.
type Matrix struct {
	interactions map[pairKey][]Law
	defaults     []Law
}

func NewMatrix() *Matrix {
	return &Matrix{
		interactions: make(map[pairKey][]Law),
		defaults: []Law{
			Damping{Coefficient: 0.01},
			Brownian{Intensity: 0.1},
		},
	}
}

// Add appends a law to the list for the unordered pair (a, b).
func (m *Matrix) Add(a, b int, law Law) {
	key := keyFor(a, b)
	m.interactions[key] = append(m.interactions[key], law)
}

// SetDefaults replaces the fallback list used for unlisted pairs.
func (m *Matrix) SetDefaults(laws ...Law) {
	m.defaults = laws
}

// LawsFor returns the ordered laws active between species a and b.
func (m *Matrix) LawsFor(a, b int) []Law {
	if laws, ok := m.interactions[keyFor(a, b)]; ok {
		return laws
	}
	return m.defaults
}

// BoundedCutoff returns the largest finite cutoff of any bounded law
// that can involve the given species, including the defaults. The
// accumulator uses it to size spatial candidate queries.
func (m *Matrix) BoundedCutoff(species int) float64 {
	max := 0.0
	scan := func(laws []Law) {
		for _, law := range laws {
			if c := law.Cutoff(); c > max {
				max = c
			}
		}
	}
	scan(m.defaults)
	for key, laws := range m.interactions {
		if key.a == species || key.b == species {
			scan(laws)
		}
	}
	return max
}

// UnboundedFor reports whether any law reachable from the given
// species has no cutoff. Unbounded laws force a full pairwise pass.
func (m *Matrix) UnboundedFor(species int) bool {
	has := func(laws []Law) bool {
		for _, law := range laws {
			if law.Cutoff() == 0 {
				return true
			}
		}
		return false
	}
	if has(m.defaults) {
		return true
	}
	for key, laws := range m.interactions {
		if (key.a == species || key.b == species) && has(laws) {
			return true
		}
	}
	return false
}
