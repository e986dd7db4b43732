package utf8

import (
	"fmt"
	goutf8 "unicode/utf8"
)

// CharBlock is a set of UTF-8 byte sequences of the same length. The i-th byte of every sequence in the block
// lies within From[i]..To[i].
type CharBlock struct {
	From []byte
	To   []byte
}

func (b *CharBlock) String() string {
	return fmt.Sprintf("%X..%X", b.From, b.To)
}

const (
	surrogateMin = rune(0xd800)
	surrogateMax = rune(0xdfff)
)

// Refelences:
// * https://www.unicode.org/versions/Unicode13.0.0/ch03.pdf#G7404
//   - Table 3-6.  UTF-8 Bit Distribution
//   - Table 3-7.  Well-Formed UTF-8 Byte Sequences
var maxRunesByLen = []rune{
	0x7f,
	0x7ff,
	0xffff,
}

func AllCharBlocks() []*CharBlock {
	return genCharBlocks(0, goutf8.MaxRune)
}

// GenCharBlocks converts a code point range into char blocks. Surrogate code points are excluded because
// they have no well-formed UTF-8 encoding.
func GenCharBlocks(from, to rune) ([]*CharBlock, error) {
	if from < 0 || to > goutf8.MaxRune || from > to {
		return nil, fmt.Errorf("invalid range; From: U+%04X, To: U+%04X", from, to)
	}
	blks := genCharBlocks(from, to)
	if len(blks) == 0 {
		return nil, fmt.Errorf("the range contains only surrogate code points; From: U+%04X, To: U+%04X", from, to)
	}
	return blks, nil
}

func genCharBlocks(from, to rune) []*CharBlock {
	if from > to {
		return nil
	}
	if from <= surrogateMax && to >= surrogateMin {
		var blks []*CharBlock
		if from < surrogateMin {
			blks = append(blks, genCharBlocks(from, surrogateMin-1)...)
		}
		if to > surrogateMax {
			blks = append(blks, genCharBlocks(surrogateMax+1, to)...)
		}
		return blks
	}
	for _, max := range maxRunesByLen {
		if from <= max && max < to {
			return append(genCharBlocks(from, max), genCharBlocks(max+1, to)...)
		}
	}
	if to <= maxRunesByLen[0] {
		return []*CharBlock{
			{From: []byte{byte(from)}, To: []byte{byte(to)}},
		}
	}
	// Split the range until every continuation byte either stays the same or covers a full 80..BF range.
	for i := 1; i < goutf8.UTFMax; i++ {
		m := rune(1)<<(6*i) - 1
		if from&^m == to&^m {
			continue
		}
		if from&m != 0 {
			return append(genCharBlocks(from, from|m), genCharBlocks((from|m)+1, to)...)
		}
		if to&m != m {
			return append(genCharBlocks(from, (to&^m)-1), genCharBlocks(to&^m, to)...)
		}
	}
	return []*CharBlock{
		{From: encode(from), To: encode(to)},
	}
}

func encode(c rune) []byte {
	b := make([]byte, goutf8.UTFMax)
	n := goutf8.EncodeRune(b, c)
	return b[:n]
}
