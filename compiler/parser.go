package compiler

import (
	"fmt"
	"sort"

	"github.com/samx-lang/samxlex/ucd"
	"github.com/samx-lang/samxlex/utf8"
)

type symbolTable struct {
	symPos2Byte map[symbolPosition]byteRange
	endPos2ID   map[symbolPosition]int
}

func genSymbolTable(root astNode) *symbolTable {
	symTab := &symbolTable{
		symPos2Byte: map[symbolPosition]byteRange{},
		endPos2ID:   map[symbolPosition]int{},
	}
	return genSymTab(symTab, root)
}

func genSymTab(symTab *symbolTable, node astNode) *symbolTable {
	if node == nil {
		return symTab
	}

	switch n := node.(type) {
	case *symbolNode:
		symTab.symPos2Byte[n.pos] = n.byteRange
	case *endMarkerNode:
		symTab.endPos2ID[n.pos] = n.id
	default:
		left, right := node.children()
		genSymTab(symTab, left)
		genSymTab(symTab, right)
	}
	return symTab
}

// buildCombinedAST joins the patterns of a lexical mode into one tree. Each pattern is followed by an end
// marker carrying its ID, and the positions are numbered in ascending ID order.
func buildCombinedAST(asts map[int]astNode) (astNode, *symbolTable, error) {
	if len(asts) == 0 {
		return nil, nil, fmt.Errorf("at least one pattern is required")
	}
	ids := make([]int, 0, len(asts))
	for id := range asts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var root astNode
	for _, id := range ids {
		n := newConcatNode(copyAST(asts[id]), newEndMarkerNode(id))
		if root == nil {
			root = n
		} else {
			root = newAltNode(root, n)
		}
	}
	_, err := positionSymbols(root, symbolPositionMin)
	if err != nil {
		return nil, nil, err
	}
	return root, genSymbolTable(root), nil
}

func parse(pattern string) (astNode, error) {
	if pattern == "" {
		return nil, newSyntaxErrorWithDetail(synErrNullPattern, "")
	}
	p := &parser{
		lex: newLexer(pattern),
	}
	return p.parse()
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func (p *parser) parse() (ast astNode, retErr error) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		synErr, ok := err.(*syntaxErrorWithDetail)
		if !ok {
			panic(err)
		}
		ast = nil
		retErr = synErr
	}()

	alt := p.parseAlt()
	if alt == nil {
		switch p.peek() {
		case tokenKindGroupClose:
			raiseSyntaxError(synErrGroupNoInitiator, "")
		case tokenKindEOF:
			raiseSyntaxError(synErrNullPattern, "")
		}
		raiseSyntaxError(synErrUnexpectedToken, "%v", p.peekedTok)
	}
	if !p.consume(tokenKindEOF) {
		if p.peek() == tokenKindGroupClose {
			raiseSyntaxError(synErrGroupNoInitiator, "")
		}
		raiseSyntaxError(synErrUnexpectedToken, "%v", p.peekedTok)
	}
	return alt, nil
}

func raiseSyntaxError(synErr *SyntaxError, format string, a ...interface{}) {
	panic(newSyntaxErrorWithDetail(synErr, format, a...))
}

func (p *parser) parseAlt() astNode {
	left := p.parseConcat()
	if left == nil {
		if p.peek() == tokenKindAlt {
			raiseSyntaxError(synErrAltLackOfOperand, "")
		}
		return nil
	}
	for p.consume(tokenKindAlt) {
		right := p.parseConcat()
		if right == nil {
			raiseSyntaxError(synErrAltLackOfOperand, "")
		}
		left = newAltNode(left, right)
	}
	return left
}

func (p *parser) parseConcat() astNode {
	left := p.parseRepeat()
	if left == nil {
		return nil
	}
	for {
		right := p.parseRepeat()
		if right == nil {
			break
		}
		left = newConcatNode(left, right)
	}
	return left
}

func (p *parser) parseRepeat() astNode {
	group := p.parseGroup()
	if group == nil {
		switch p.peek() {
		case tokenKindRepeat, tokenKindRepeatOneOrMore, tokenKindOption:
			raiseSyntaxError(synErrRepNoTarget, "")
		}
		return nil
	}
	if p.consume(tokenKindRepeat) {
		return newRepeatNode(group)
	}
	if p.consume(tokenKindRepeatOneOrMore) {
		return newRepeatOneOrMoreNode(group)
	}
	if p.consume(tokenKindOption) {
		return newOptionNode(group)
	}
	return group
}

func (p *parser) parseGroup() astNode {
	if !p.consume(tokenKindGroupOpen) {
		return p.parseSingleChar()
	}
	alt := p.parseAlt()
	if alt == nil {
		switch p.peek() {
		case tokenKindGroupClose:
			raiseSyntaxError(synErrGroupNoElem, "")
		case tokenKindEOF:
			raiseSyntaxError(synErrGroupUnclosed, "")
		}
		raiseSyntaxError(synErrGroupInvalidForm, "%v", p.peekedTok)
	}
	if !p.consume(tokenKindGroupClose) {
		if p.peek() == tokenKindEOF {
			raiseSyntaxError(synErrGroupUnclosed, "")
		}
		raiseSyntaxError(synErrGroupInvalidForm, "%v", p.peekedTok)
	}
	return alt
}

func (p *parser) parseSingleChar() astNode {
	if p.consume(tokenKindAnyChar) {
		return genCharBlocksAST(utf8.AllCharBlocks())
	}
	if p.consume(tokenKindBExpOpen) {
		return p.parseBExp(false)
	}
	if p.consume(tokenKindInverseBExpOpen) {
		return p.parseBExp(true)
	}
	if p.consume(tokenKindCharProp) {
		return genCodePointRangesAST(p.findCharPropRanges(p.lastTok))
	}
	if p.consume(tokenKindChar) {
		c := p.lastTok.char
		return genCodePointRangesAST([]codePointRange{{from: c, to: c}})
	}
	return nil
}

func (p *parser) parseBExp(inverse bool) astNode {
	var ranges []codePointRange
	for {
		rs, ok := p.parseBExpElem()
		if !ok {
			break
		}
		ranges = append(ranges, rs...)
	}
	if !p.consume(tokenKindBExpClose) {
		if p.peek() == tokenKindEOF {
			raiseSyntaxError(synErrBExpUnclosed, "")
		}
		raiseSyntaxError(synErrBExpInvalidForm, "%v", p.peekedTok)
	}
	if len(ranges) == 0 {
		raiseSyntaxError(synErrBExpNoElem, "")
	}
	ranges = normalizeCodePointRanges(ranges)
	if inverse {
		ranges = complementCodePointRanges(ranges, 0, maxCodePoint)
	}
	return genCodePointRangesAST(ranges)
}

func (p *parser) parseBExpElem() ([]codePointRange, bool) {
	if p.consume(tokenKindCharProp) {
		rs := p.findCharPropRanges(p.lastTok)
		if p.peek() == tokenKindCharRange {
			raiseSyntaxError(synErrRangePropIsUnavailable, "")
		}
		return rs, true
	}
	if !p.consume(tokenKindChar) {
		return nil, false
	}
	from := p.lastTok.char
	if !p.consume(tokenKindCharRange) {
		return []codePointRange{{from: from, to: from}}, true
	}
	if p.consume(tokenKindCharProp) {
		raiseSyntaxError(synErrRangePropIsUnavailable, "")
	}
	if !p.consume(tokenKindChar) {
		if p.peek() == tokenKindEOF {
			raiseSyntaxError(synErrBExpUnclosed, "")
		}
		raiseSyntaxError(synErrBExpInvalidForm, "%v", p.peekedTok)
	}
	to := p.lastTok.char
	if from > to {
		raiseSyntaxError(synErrRangeInvalidOrder, "%U-%U", from, to)
	}
	return []codePointRange{{from: from, to: to}}, true
}

const maxCodePoint = rune(0x10ffff)

func (p *parser) findCharPropRanges(tok *token) []codePointRange {
	cpRanges, inverse, err := ucd.FindCodePointRanges(tok.propName, tok.propVal)
	if err != nil {
		raiseSyntaxError(synErrCharPropUnsupported, "%v", err)
	}
	ranges := make([]codePointRange, 0, len(cpRanges))
	for _, r := range cpRanges {
		ranges = append(ranges, codePointRange{from: r.From, to: r.To})
	}
	ranges = normalizeCodePointRanges(ranges)
	if inverse {
		ranges = complementCodePointRanges(ranges, 0, maxCodePoint)
	}
	return ranges
}

// genCodePointRangesAST converts normalized code point ranges into an alternation of byte sequences.
func genCodePointRangesAST(ranges []codePointRange) astNode {
	var blks []*utf8.CharBlock
	for _, r := range ranges {
		bs, err := utf8.GenCharBlocks(r.from, r.to)
		if err != nil {
			// The range contains only surrogate code points.
			continue
		}
		blks = append(blks, bs...)
	}
	if len(blks) == 0 {
		raiseSyntaxError(synErrCharClassEmpty, "")
	}
	return genCharBlocksAST(blks)
}

func genCharBlocksAST(blks []*utf8.CharBlock) astNode {
	alts := make([]astNode, 0, len(blks))
	for _, blk := range blks {
		seq := make([]astNode, 0, len(blk.From))
		for i := range blk.From {
			seq = append(seq, newRangeSymbolNode(blk.From[i], blk.To[i]))
		}
		alts = append(alts, genConcatNode(seq...))
	}
	return genAltNode(alts...)
}

func (p *parser) peek() tokenKind {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok.kind
}

func (p *parser) consume(expected tokenKind) bool {
	if p.peek() != expected {
		return false
	}
	p.lastTok = p.peekedTok
	p.peekedTok = nil
	return true
}
