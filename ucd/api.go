package ucd

import (
	"fmt"
	"strings"
	"unicode"
)

type CodePointRange struct {
	From rune
	To   rune
}

var (
	generalCategoryTables = map[string]*unicode.RangeTable{}
	scriptTables          = map[string]*unicode.RangeTable{}
	propertyTables        = map[string]*unicode.RangeTable{}
)

func init() {
	for name, tab := range unicode.Categories {
		generalCategoryTables[NormalizeSymbolicValue(name)] = tab
	}
	for name, tab := range unicode.Scripts {
		scriptTables[NormalizeSymbolicValue(name)] = tab
	}
	for name, tab := range unicode.Properties {
		propertyTables[NormalizeSymbolicValue(name)] = tab
	}
}

var symValReplacer = strings.NewReplacer("_", "", "-", "", "\x20", "")

// NormalizeSymbolicValue applies the loose matching rule UAX44-LM3: case, whitespace, underscores, hyphens,
// and a leading "is" are ignored.
func NormalizeSymbolicValue(original string) string {
	v := strings.ToLower(symValReplacer.Replace(original))
	if strings.HasPrefix(v, "is") && v != "is" {
		return v[2:]
	}
	return v
}

// FindCodePointRanges returns the code points matching a character property expression `\p{propName=propVal}`.
// propName may be empty, in which case propVal names a general category, a script, or a binary property.
// When the second return value is true, the expression matches the complement of the returned ranges.
func FindCodePointRanges(propName, propVal string) ([]*CodePointRange, bool, error) {
	if propName == "" {
		v := NormalizeSymbolicValue(propVal)
		if rs, ok := findGeneralCategory(v); ok {
			return rs, false, nil
		}
		if tab, ok := scriptTables[v]; ok {
			return rangeTableToCodePointRanges(tab), false, nil
		}
		if rs, ok := findBinaryProperty(v); ok {
			return rs, false, nil
		}
		return nil, false, fmt.Errorf("unsupported character property value: %v", propVal)
	}

	n := NormalizeSymbolicValue(propName)
	name, ok := propertyNameAbbs[n]
	if !ok {
		if _, ok := propertyTables[n]; !ok {
			return nil, false, fmt.Errorf("unsupported character property name: %v", propName)
		}
		name = n
	}
	switch name {
	case "gc":
		rs, ok := findGeneralCategory(NormalizeSymbolicValue(propVal))
		if !ok {
			return nil, false, fmt.Errorf("unsupported character property value: %v", propVal)
		}
		return rs, false, nil
	case "sc":
		tab, ok := scriptTables[NormalizeSymbolicValue(propVal)]
		if !ok {
			return nil, false, fmt.Errorf("unsupported character property value: %v", propVal)
		}
		return rangeTableToCodePointRanges(tab), false, nil
	}

	yes, ok := binaryValues[NormalizeSymbolicValue(propVal)]
	if !ok {
		return nil, false, fmt.Errorf("unsupported character property value: %v", propVal)
	}
	rs, ok := findBinaryProperty(name)
	if !ok {
		// If the process reaches this code, it's a bug. We must handle all of the properties registered with
		// the `propertyNameAbbs`.
		return nil, false, fmt.Errorf("character property '%v' is unavailable", propName)
	}
	return rs, !yes, nil
}

func findGeneralCategory(val string) ([]*CodePointRange, bool) {
	if abb, ok := generalCategoryValueAbbs[val]; ok {
		val = abb
	}
	vals, ok := compositGeneralCategories[val]
	if !ok {
		vals = []string{val}
	}
	var ranges []*CodePointRange
	for _, v := range vals {
		tab, ok := generalCategoryTables[v]
		if !ok {
			return nil, false
		}
		ranges = append(ranges, rangeTableToCodePointRanges(tab)...)
	}
	return ranges, true
}

func findBinaryProperty(name string) ([]*CodePointRange, bool) {
	if abb, ok := propertyNameAbbs[name]; ok {
		name = abb
	}
	if p, ok := derivedCoreProperties[name]; ok {
		var ranges []*CodePointRange
		for _, c := range p.categories {
			rs, _ := findGeneralCategory(c)
			ranges = append(ranges, rs...)
		}
		for _, prop := range p.properties {
			ranges = append(ranges, rangeTableToCodePointRanges(propertyTables[prop])...)
		}
		return ranges, true
	}
	tab, ok := propertyTables[name]
	if !ok {
		return nil, false
	}
	return rangeTableToCodePointRanges(tab), true
}

func rangeTableToCodePointRanges(tab *unicode.RangeTable) []*CodePointRange {
	if tab == nil {
		return nil
	}
	var ranges []*CodePointRange
	add := func(lo, hi, stride rune) {
		if stride == 1 {
			ranges = append(ranges, &CodePointRange{From: lo, To: hi})
			return
		}
		for c := lo; c <= hi; c += stride {
			ranges = append(ranges, &CodePointRange{From: c, To: c})
		}
	}
	for _, r := range tab.R16 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range tab.R32 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return ranges
}
