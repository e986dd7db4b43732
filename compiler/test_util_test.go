package compiler

// Expected ASTs in tests carry positions already assigned, so they can be compared with the output of
// positionSymbols directly.

func symPos(n uint32) symbolPosition {
	pos, err := newSymbolPosition(n, false)
	if err != nil {
		panic(err)
	}
	return pos
}

func endPos(n uint32) symbolPosition {
	pos, err := newSymbolPosition(n, true)
	if err != nil {
		panic(err)
	}
	return pos
}

func newSymbolNodeWithPos(v byte, pos symbolPosition) *symbolNode {
	return newRangeSymbolNodeWithPos(v, v, pos)
}

func newRangeSymbolNodeWithPos(from, to byte, pos symbolPosition) *symbolNode {
	return &symbolNode{
		byteRange: byteRange{
			from: from,
			to:   to,
		},
		pos: pos,
	}
}

func newEndMarkerNodeWithPos(id int, pos symbolPosition) *endMarkerNode {
	return &endMarkerNode{
		id:  id,
		pos: pos,
	}
}
