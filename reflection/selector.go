package reflection

import (
	"fmt"
	"regexp"
)

// Selector picks the classes to reflect: by exact fully qualified name, or
// by a regular expression that must match the whole name.
type Selector struct {
	names    []string
	exact    map[string]bool
	patterns []*regexp.Regexp
}

func NewSelector(names, patterns []string) (*Selector, error) {
	s := &Selector{exact: make(map[string]bool, len(names))}
	for _, name := range names {
		if !s.exact[name] {
			s.exact[name] = true
			s.names = append(s.names, name)
		}
	}
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("invalid class pattern %q: %w", p, err)
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

func (s *Selector) Match(name string) bool {
	if s.exact[name] {
		return true
	}
	for _, re := range s.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Names returns the exact names in the order given.
func (s *Selector) Names() []string {
	return s.names
}
