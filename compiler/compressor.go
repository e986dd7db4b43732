package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samx-lang/samxlex/spec"
)

const (
	CompressionLevelMin     = 0
	CompressionLevelMax     = 2
	CompressionLevelDefault = CompressionLevelMax
)

// compressTransitionTable rewrites the uncompressed table of tab according to lv.
//
//	0: no compression
//	1: unique rows
//	2: unique rows, then row displacement over the unique rows
func compressTransitionTable(tab *spec.TransitionTable, lv int) (*spec.TransitionTable, error) {
	if lv < CompressionLevelMin || lv > CompressionLevelMax {
		return nil, fmt.Errorf("compression level must be %v to %v; got: %v", CompressionLevelMin, CompressionLevelMax, lv)
	}
	if lv == 0 {
		return tab, nil
	}

	ue := compressUniqueEntries(tab.UncompressedTransition, tab.RowCount, tab.ColCount)
	if lv >= 2 {
		ue.UniqueEntries = compressRowDisplacement(ue.UncompressedUniqueEntries, len(ue.UncompressedUniqueEntries)/tab.ColCount, tab.ColCount, 0)
		ue.UncompressedUniqueEntries = nil
	}

	return &spec.TransitionTable{
		InitialState:    tab.InitialState,
		AcceptingStates: tab.AcceptingStates,
		RowCount:        tab.RowCount,
		ColCount:        tab.ColCount,
		Transition:      ue,
	}, nil
}

func compressUniqueEntries(orig []int, rowCount, colCount int) *spec.UniqueEntriesTable {
	var uniqueEntries []int
	rowNums := make([]int, rowCount)
	row2Num := map[string]int{}
	for i := 0; i < rowCount; i++ {
		row := orig[i*colCount : (i+1)*colCount]
		key := rowKey(row)
		num, ok := row2Num[key]
		if !ok {
			num = len(row2Num)
			row2Num[key] = num
			uniqueEntries = append(uniqueEntries, row...)
		}
		rowNums[i] = num
	}
	return &spec.UniqueEntriesTable{
		UncompressedUniqueEntries: uniqueEntries,
		RowNums:                   rowNums,
		OriginalRowCount:          rowCount,
		OriginalColCount:          colCount,
	}
}

func rowKey(row []int) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// compressRowDisplacement overlays the rows so that their non-empty cells don't collide. A cell whose bound
// is -1 belongs to no row.
func compressRowDisplacement(orig []int, rowCount, colCount int, empty int) *spec.RowDisplacementTable {
	entries := make([]int, colCount)
	bounds := make([]int, colCount)
	for i := range entries {
		entries[i] = empty
		bounds[i] = -1
	}
	rowDisp := make([]int, rowCount)
	for row := 0; row < rowCount; row++ {
		cells := orig[row*colCount : (row+1)*colCount]
		var nonEmpty []int
		for col, v := range cells {
			if v != empty {
				nonEmpty = append(nonEmpty, col)
			}
		}

		d := 0
	SEARCH:
		for ; ; d++ {
			for _, col := range nonEmpty {
				if d+col < len(bounds) && bounds[d+col] != -1 {
					continue SEARCH
				}
			}
			break
		}

		for len(entries) < d+colCount {
			entries = append(entries, empty)
			bounds = append(bounds, -1)
		}
		for _, col := range nonEmpty {
			entries[d+col] = cells[col]
			bounds[d+col] = row
		}
		rowDisp[row] = d
	}

	return &spec.RowDisplacementTable{
		OriginalRowCount: rowCount,
		OriginalColCount: colCount,
		EmptyValue:       empty,
		Entries:          entries,
		Bounds:           bounds,
		RowDisplacement:  rowDisp,
	}
}
