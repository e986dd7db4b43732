package spec

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const identifierPattern = `[A-Za-z][0-9A-Za-z]*(_[0-9A-Za-z]+)*`

var identifierRE = regexp.MustCompile("^" + identifierPattern + "$")

func validateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("identifier doesn't allow to be the empty string")
	}
	if !identifierRE.MatchString(id) {
		return fmt.Errorf("identifier must be %v; id: %v", identifierPattern, id)
	}
	return nil
}

// SnakeCaseToUpperCamelCase converts a snake_case identifier into UpperCamelCase.
// Leading, trailing, and repeated underscores are ignored.
func SnakeCaseToUpperCamelCase(snake string) string {
	elems := strings.Split(snake, "_")
	var b strings.Builder
	for _, e := range elems {
		if e == "" {
			continue
		}
		b.WriteString(strings.ToUpper(e[:1]))
		b.WriteString(e[1:])
	}
	return b.String()
}

// FindSpellingInconsistencies returns the groups of distinct identifiers that convert to the same
// UpperCamelCase string. Each group and the returned list are sorted.
func FindSpellingInconsistencies(ids []string) [][]string {
	m := map[string][]string{}
	for _, id := range removeDuplicates(ids) {
		c := SnakeCaseToUpperCamelCase(id)
		m[c] = append(m[c], id)
	}

	var duplicated [][]string
	for _, camels := range m {
		if len(camels) == 1 {
			continue
		}
		sort.Strings(camels)
		duplicated = append(duplicated, camels)
	}
	sort.Slice(duplicated, func(i, j int) bool {
		return duplicated[i][0] < duplicated[j][0]
	})
	return duplicated
}

func removeDuplicates(s []string) []string {
	m := map[string]struct{}{}
	for _, v := range s {
		m[v] = struct{}{}
	}
	var unique []string
	for v := range m {
		unique = append(unique, v)
	}
	return unique
}

type LexKindName string

const LexKindNameNil = LexKindName("")

func (k LexKindName) String() string {
	return string(k)
}

func (k LexKindName) validate() error {
	err := validateIdentifier(k.String())
	if err != nil {
		return fmt.Errorf("invalid kind name: %w", err)
	}
	return nil
}

type LexPattern string

func (p LexPattern) validate() error {
	if p == "" {
		return fmt.Errorf("pattern doesn't allow to be the empty string")
	}
	return nil
}

type LexModeName string

const (
	LexModeNameNil     = LexModeName("")
	LexModeNameDefault = LexModeName("default")
)

func (m LexModeName) String() string {
	return string(m)
}

func (m LexModeName) validate() error {
	err := validateIdentifier(m.String())
	if err != nil {
		return fmt.Errorf("invalid mode name: %w", err)
	}
	return nil
}

type LexModeNum int

const (
	LexModeNumNil     = LexModeNum(0)
	LexModeNumDefault = LexModeNum(1)
)

func (n LexModeNum) Int() int {
	return int(n)
}

func (n LexModeNum) Succ() LexModeNum {
	return n + 1
}

func (n LexModeNum) IsNil() bool {
	return n == LexModeNumNil
}

type LexEntry struct {
	Kind    LexKindName   `json:"kind" toml:"kind"`
	Pattern LexPattern    `json:"pattern" toml:"pattern"`
	Modes   []LexModeName `json:"modes,omitempty" toml:"modes,omitempty"`
	Push    LexModeName   `json:"push,omitempty" toml:"push,omitempty"`
	Pop     bool          `json:"pop,omitzero" toml:"pop,omitempty"`

	// Skip entries are recognized but never handed to the caller of the lexer.
	Skip bool `json:"skip,omitzero" toml:"skip,omitempty"`
}

func NewLexEntry(kind string, pattern string) *LexEntry {
	return &LexEntry{
		Kind:    LexKindName(kind),
		Pattern: LexPattern(pattern),
	}
}

// EntryModes returns the modes the entry belongs to. An entry without modes belongs to the default mode.
func (e *LexEntry) EntryModes() []LexModeName {
	if len(e.Modes) == 0 {
		return []LexModeName{
			LexModeNameDefault,
		}
	}
	return e.Modes
}

func (e *LexEntry) validate() error {
	err := e.Kind.validate()
	if err != nil {
		return err
	}
	err = e.Pattern.validate()
	if err != nil {
		return err
	}
	for _, mode := range e.Modes {
		err = mode.validate()
		if err != nil {
			return err
		}
	}
	if e.Push != "" {
		err = e.Push.validate()
		if err != nil {
			return err
		}
		if e.Pop {
			return fmt.Errorf("push and pop cannot be specified together")
		}
	}
	return nil
}

type LexSpec struct {
	Name    string      `json:"name" toml:"name"`
	Entries []*LexEntry `json:"entries" toml:"entries"`
}

func (s *LexSpec) Validate() error {
	err := validateIdentifier(s.Name)
	if err != nil {
		return fmt.Errorf("invalid specification name: %w", err)
	}
	if len(s.Entries) <= 0 {
		return fmt.Errorf("the lexical specification must have at least one entry")
	}
	{
		var errs []error
		for i, e := range s.Entries {
			err := e.validate()
			if err != nil {
				errs = append(errs, fmt.Errorf("entry #%v: %w", i+1, err))
			}
		}
		if len(errs) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "%v", errs[0])
			for _, err := range errs[1:] {
				fmt.Fprintf(&b, "\n%v", err)
			}
			return fmt.Errorf("%s", b.String())
		}
	}
	{
		modes := map[LexModeName]struct{}{
			LexModeNameDefault: {},
		}
		ks := map[LexModeName]map[LexKindName]struct{}{}
		for _, e := range s.Entries {
			for _, mode := range e.EntryModes() {
				modes[mode] = struct{}{}
				if ks[mode] == nil {
					ks[mode] = map[LexKindName]struct{}{}
				}
				if _, exist := ks[mode][e.Kind]; exist {
					return fmt.Errorf("kinds `%v` are duplicates in %v mode", e.Kind, mode)
				}
				ks[mode][e.Kind] = struct{}{}
			}
		}
		for _, e := range s.Entries {
			if e.Push == "" {
				continue
			}
			if _, ok := modes[e.Push]; !ok {
				return fmt.Errorf("kind `%v` pushes an undefined mode `%v`", e.Kind, e.Push)
			}
		}

		var ids []string
		for mode := range modes {
			ids = append(ids, mode.String())
		}
		for _, e := range s.Entries {
			ids = append(ids, e.Kind.String())
		}
		dups := FindSpellingInconsistencies(ids)
		if len(dups) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "spelling inconsistencies: %v", strings.Join(dups[0], ", "))
			for _, dup := range dups[1:] {
				fmt.Fprintf(&b, "; %v", strings.Join(dup, ", "))
			}
			return fmt.Errorf("%s", b.String())
		}
	}
	return nil
}
