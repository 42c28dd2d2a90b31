package cloning

import "strconv"

// NewStem creates a name generator producing stem1, stem2, … and skipping
// every name already present in taken. The nil namespace is treated as a free
// namespace, meaning all names are available.
func NewStem(stem string, taken map[string]struct{}) *Stem {
	return &Stem{
		taken: taken,
		stem:  stem,
		last:  0,
	}
}

// Stem hands out collision-free method names for synthesized helpers.
type Stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

// Next returns the next free name and reserves it.
func (s *Stem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
