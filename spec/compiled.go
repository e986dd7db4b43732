package spec

import "fmt"

// RowDisplacementTable is a sparse table where the non-empty cells of every row are overlaid
// onto a single entries array. Bounds records the row owning each cell.
type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

func (t *RowDisplacementTable) Lookup(row, col int) int {
	d := t.RowDisplacement[row]
	if t.Bounds[d+col] != row {
		return t.EmptyValue
	}
	return t.Entries[d+col]
}

// UniqueEntriesTable stores each distinct row once. RowNums maps an original row to its unique row.
// Exactly one of UniqueEntries and UncompressedUniqueEntries is set.
type UniqueEntriesTable struct {
	UniqueEntries             *RowDisplacementTable `json:"unique_entries,omitempty"`
	UncompressedUniqueEntries []int                 `json:"uncompressed_unique_entries,omitempty"`
	RowNums                   []int                 `json:"row_nums"`
	OriginalRowCount          int                   `json:"original_row_count"`
	OriginalColCount          int                   `json:"original_col_count"`
}

type TransitionTable struct {
	InitialState    int   `json:"initial_state"`
	AcceptingStates []int `json:"accepting_states"`
	RowCount        int   `json:"row_count"`
	ColCount        int   `json:"col_count"`

	// Either Transition or UncompressedTransition holds the table. State 0 is the dead state.
	Transition             *UniqueEntriesTable `json:"transition,omitempty"`
	UncompressedTransition []int               `json:"uncompressed_transition,omitempty"`
}

// Row decodes the transitions of a state into dst, which must have ColCount cells.
func (t *TransitionTable) Row(state int, dst []int) error {
	if state < 0 || state >= t.RowCount {
		return fmt.Errorf("state out of range; state: %v, row count: %v", state, t.RowCount)
	}
	if len(dst) < t.ColCount {
		return fmt.Errorf("destination too short; want: %v, got: %v", t.ColCount, len(dst))
	}
	if t.Transition == nil {
		copy(dst, t.UncompressedTransition[state*t.ColCount:(state+1)*t.ColCount])
		return nil
	}
	tab := t.Transition
	rowNum := tab.RowNums[state]
	if tab.UniqueEntries == nil {
		copy(dst, tab.UncompressedUniqueEntries[rowNum*t.ColCount:(rowNum+1)*t.ColCount])
		return nil
	}
	for col := 0; col < t.ColCount; col++ {
		dst[col] = tab.UniqueEntries.Lookup(rowNum, col)
	}
	return nil
}

type CompiledLexModeSpec struct {
	Kinds []LexKindName    `json:"kinds"`
	Push  []LexModeNum     `json:"push"`
	Pop   []int            `json:"pop"`
	Skip  []int            `json:"skip"`
	DFA   *TransitionTable `json:"dfa"`
}

type CompiledLexSpec struct {
	Name        string                 `json:"name"`
	InitialMode LexModeNum             `json:"initial_mode"`
	Modes       []LexModeName          `json:"modes"`
	Specs       []*CompiledLexModeSpec `json:"specs"`
}

// Validate checks the structural consistency that a lexer relies on, down to every index a lexer derives
// from the tables.
func (s *CompiledLexSpec) Validate() error {
	if len(s.Modes) != len(s.Specs) {
		return fmt.Errorf("the number of modes and mode specs differ; modes: %v, specs: %v", len(s.Modes), len(s.Specs))
	}
	if s.InitialMode.IsNil() || s.InitialMode.Int() < 0 || s.InitialMode.Int() >= len(s.Specs) {
		return fmt.Errorf("invalid initial mode: %v", s.InitialMode)
	}
	for i, ms := range s.Specs[1:] {
		num := i + 1
		err := ms.validate(len(s.Specs))
		if err != nil {
			return fmt.Errorf("mode %v: %w", s.Modes[num], err)
		}
	}
	return nil
}

func (ms *CompiledLexModeSpec) validate(modeCount int) error {
	if ms == nil || ms.DFA == nil {
		return fmt.Errorf("no DFA")
	}
	n := len(ms.Kinds)
	if n == 0 {
		return fmt.Errorf("no kinds")
	}
	if len(ms.Push) != n || len(ms.Pop) != n || len(ms.Skip) != n {
		return fmt.Errorf("inconsistent kind attributes")
	}
	for _, p := range ms.Push {
		if p.Int() < 0 || p.Int() >= modeCount {
			return fmt.Errorf("pushes an unknown mode: %v", p)
		}
	}
	return ms.DFA.validate(n)
}

func (t *TransitionTable) validate(kindCount int) error {
	if t.ColCount != 256 {
		return fmt.Errorf("a transition table must have 256 columns; got: %v", t.ColCount)
	}
	if t.InitialState <= 0 || t.InitialState >= t.RowCount {
		return fmt.Errorf("invalid initial state: %v", t.InitialState)
	}
	if len(t.AcceptingStates) != t.RowCount {
		return fmt.Errorf("accepting states don't match the row count")
	}
	for state, id := range t.AcceptingStates {
		if id < 0 || id >= kindCount {
			return fmt.Errorf("state %v accepts an unknown kind: %v", state, id)
		}
	}
	if t.Transition == nil {
		if len(t.UncompressedTransition) != t.RowCount*t.ColCount {
			return fmt.Errorf("the transition table is truncated")
		}
	} else {
		err := t.Transition.validate(t.RowCount, t.ColCount)
		if err != nil {
			return err
		}
	}

	row := make([]int, t.ColCount)
	for state := 0; state < t.RowCount; state++ {
		err := t.Row(state, row)
		if err != nil {
			return err
		}
		for col, next := range row {
			if next < 0 || next >= t.RowCount {
				return fmt.Errorf("state %v moves to an unknown state on %#02x: %v", state, col, next)
			}
		}
	}
	return nil
}

func (t *UniqueEntriesTable) validate(rowCount, colCount int) error {
	if len(t.RowNums) != rowCount {
		return fmt.Errorf("the transition table is truncated")
	}
	var uniqueRowCount int
	if t.UniqueEntries == nil {
		if len(t.UncompressedUniqueEntries) == 0 || len(t.UncompressedUniqueEntries)%colCount != 0 {
			return fmt.Errorf("unique entries must be a non-empty multiple of %v cells; got: %v", colCount, len(t.UncompressedUniqueEntries))
		}
		uniqueRowCount = len(t.UncompressedUniqueEntries) / colCount
	} else {
		rd := t.UniqueEntries
		if len(rd.Entries) != len(rd.Bounds) {
			return fmt.Errorf("entries and bounds differ in length; entries: %v, bounds: %v", len(rd.Entries), len(rd.Bounds))
		}
		uniqueRowCount = len(rd.RowDisplacement)
		for row, d := range rd.RowDisplacement {
			if d < 0 || d+colCount > len(rd.Bounds) {
				return fmt.Errorf("row %v is displaced out of the entries: %v", row, d)
			}
		}
	}
	for state, num := range t.RowNums {
		if num < 0 || num >= uniqueRowCount {
			return fmt.Errorf("state %v refers to an unknown unique row: %v", state, num)
		}
	}
	return nil
}
