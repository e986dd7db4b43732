package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/samx-lang/samxlex/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		Caption string
		Spec    string
		Err     bool
	}{
		{
			Caption: "a specification with a single entry can be compiled",
			Spec: `
{
    "name": "test",
    "entries": [
        {
            "kind": "a2z",
            "pattern": "[a-z]+"
        }
    ]
}
`,
		},
		{
			Caption: "don't allow duplicates names in the same mode",
			Spec: `
{
    "name": "test",
    "entries": [
        {
            "kind": "a2z",
            "pattern": "a|b|c|d|e|f|g|h|i|j|k|l|m|n|o|p|q|r|s|t|u|v|w|x|y|z"
        },
        {
            "kind": "a2z",
            "pattern": "[a-z]"
        }
    ]
}
`,
			Err: true,
		},
		{
			Caption: "allow duplicates names in different modes",
			Spec: `
{
    "name": "test",
    "entries": [
        {
            "kind": "a2z",
            "pattern": "[a-z]"
        },
        {
            "kind": "a2z",
            "pattern": "[a-z]",
            "modes": ["other"]
        }
    ]
}
`,
		},
		{
			Caption: "don't allow an undefined mode to be pushed",
			Spec: `
{
    "name": "test",
    "entries": [
        {
            "kind": "a2z",
            "pattern": "[a-z]",
            "push": "undefined"
        }
    ]
}
`,
			Err: true,
		},
		{
			Caption: "don't allow a pattern matching the empty string",
			Spec: `
{
    "name": "test",
    "entries": [
        {
            "kind": "a2z",
            "pattern": "[a-z]*"
        }
    ]
}
`,
			Err: true,
		},
		{
			Caption: "a mode containing no entry in the default mode is an error",
			Spec: `
{
    "name": "test",
    "entries": [
        {
            "kind": "a2z",
            "pattern": "[a-z]",
            "modes": ["other"]
        }
    ]
}
`,
			Err: true,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %s", i, tt.Caption), func(t *testing.T) {
			lspec, err := spec.ParseLexSpecJSON([]byte(tt.Spec))
			if err != nil {
				t.Fatalf("%v", err)
			}
			clspec, err := Compile(lspec)
			if tt.Err {
				if err == nil {
					t.Fatalf("expected an error")
				}
				if clspec != nil {
					t.Fatalf("Compile function mustn't return a compiled specification")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if clspec == nil {
					t.Fatalf("Compile function must return a compiled specification")
				}
			}
		})
	}
}

func TestCompile_CollectsSyntaxErrors(t *testing.T) {
	lspec := &spec.LexSpec{
		Name: "test",
		Entries: []*spec.LexEntry{
			spec.NewLexEntry("unclosed", "(a"),
			spec.NewLexEntry("ok", "b"),
			spec.NewLexEntry("invalid_range", "[z-a]"),
		},
	}
	_, err := Compile(lspec)
	require.Error(t, err)

	var cErrs CompileErrors
	require.True(t, errors.As(err, &cErrs))
	require.Len(t, cErrs, 2)
	assert.Equal(t, spec.LexKindName("unclosed"), cErrs[0].Kind)
	assert.ErrorIs(t, cErrs[0], synErrGroupUnclosed)
	assert.Equal(t, spec.LexKindName("invalid_range"), cErrs[1].Kind)
	assert.ErrorIs(t, cErrs[1], synErrRangeInvalidOrder)
	assert.Equal(t, "U+007A-U+0061", cErrs[1].Detail)
	assert.ErrorIs(t, err, synErrRangeInvalidOrder)
}

func TestCompile_Modes(t *testing.T) {
	lspec := &spec.LexSpec{
		Name: "test",
		Entries: []*spec.LexEntry{
			{
				Kind:    "white_space",
				Pattern: "[ \\t]+",
				Skip:    true,
			},
			{
				Kind:    "string_open",
				Pattern: "\"",
				Push:    "string",
			},
			{
				Kind:    "char_seq",
				Pattern: "[^\"\\\\]+",
				Modes:   []spec.LexModeName{"string"},
			},
			{
				Kind:    "string_close",
				Pattern: "\"",
				Modes:   []spec.LexModeName{"string"},
				Pop:     true,
			},
		},
	}
	clspec, err := Compile(lspec)
	require.NoError(t, err)
	require.NoError(t, clspec.Validate())

	assert.Equal(t, "test", clspec.Name)
	assert.Equal(t, spec.LexModeNumDefault, clspec.InitialMode)
	assert.Equal(t, []spec.LexModeName{spec.LexModeNameNil, spec.LexModeNameDefault, "string"}, clspec.Modes)
	require.Len(t, clspec.Specs, 3)
	assert.Nil(t, clspec.Specs[0])

	def := clspec.Specs[1]
	assert.Equal(t, []spec.LexKindName{spec.LexKindNameNil, "white_space", "string_open"}, def.Kinds)
	assert.Equal(t, []spec.LexModeNum{spec.LexModeNumNil, spec.LexModeNumNil, 2}, def.Push)
	assert.Equal(t, []int{0, 0, 0}, def.Pop)
	assert.Equal(t, []int{0, 1, 0}, def.Skip)

	str := clspec.Specs[2]
	assert.Equal(t, []spec.LexKindName{spec.LexKindNameNil, "char_seq", "string_close"}, str.Kinds)
	assert.Equal(t, []spec.LexModeNum{spec.LexModeNumNil, spec.LexModeNumNil, spec.LexModeNumNil}, str.Push)
	assert.Equal(t, []int{0, 0, 1}, str.Pop)
	assert.Equal(t, []int{0, 0, 0}, str.Skip)
}

func TestCompile_EarlierEntryWins(t *testing.T) {
	lspec := &spec.LexSpec{
		Name: "test",
		Entries: []*spec.LexEntry{
			spec.NewLexEntry("kw_if", "if"),
			spec.NewLexEntry("id", "[a-z]+"),
		},
	}
	clspec, err := Compile(lspec, CompressionLevel(0))
	require.NoError(t, err)

	dfa := clspec.Specs[spec.LexModeNumDefault].DFA
	accepted := func(s string) int {
		state := dfa.InitialState
		for _, b := range []byte(s) {
			state = dfa.UncompressedTransition[state*dfa.ColCount+int(b)]
			require.NotZero(t, state, "%q must be a valid prefix", s)
		}
		return dfa.AcceptingStates[state]
	}
	assert.Equal(t, 1, accepted("if"))
	assert.Equal(t, 2, accepted("i"))
	assert.Equal(t, 2, accepted("iff"))
	assert.Equal(t, 2, accepted("x"))
}

func TestCompile_CompressionLevels(t *testing.T) {
	lspec := &spec.LexSpec{
		Name: "test",
		Entries: []*spec.LexEntry{
			spec.NewLexEntry("integer", "0|[1-9][0-9]*"),
			spec.NewLexEntry("name", "[A-Za-z_][0-9A-Za-z_]*"),
			spec.NewLexEntry("kana", "\\p{Katakana}+"),
			spec.NewLexEntry("any", "."),
		},
	}
	var tabs []*spec.TransitionTable
	for lv := CompressionLevelMin; lv <= CompressionLevelMax; lv++ {
		clspec, err := Compile(lspec, CompressionLevel(lv))
		require.NoError(t, err, "level %v", lv)
		require.NoError(t, clspec.Validate(), "level %v", lv)
		tabs = append(tabs, clspec.Specs[spec.LexModeNumDefault].DFA)
	}
	assert.NotNil(t, tabs[0].UncompressedTransition)
	assert.Nil(t, tabs[0].Transition)
	assert.NotNil(t, tabs[1].Transition.UncompressedUniqueEntries)
	assert.Nil(t, tabs[1].Transition.UniqueEntries)
	assert.NotNil(t, tabs[2].Transition.UniqueEntries)
	assert.Nil(t, tabs[2].Transition.UncompressedUniqueEntries)

	for _, tab := range tabs[1:] {
		require.Equal(t, tabs[0].RowCount, tab.RowCount)
		assert.Equal(t, tabs[0].InitialState, tab.InitialState)
		assert.Equal(t, tabs[0].AcceptingStates, tab.AcceptingStates)
		want := make([]int, tabs[0].ColCount)
		got := make([]int, tab.ColCount)
		for state := 0; state < tab.RowCount; state++ {
			require.NoError(t, tabs[0].Row(state, want))
			require.NoError(t, tab.Row(state, got))
			assert.Equal(t, want, got, "state %v", state)
		}
	}
}

func TestCompile_InvalidCompressionLevel(t *testing.T) {
	lspec := &spec.LexSpec{
		Name: "test",
		Entries: []*spec.LexEntry{
			spec.NewLexEntry("a", "a"),
		},
	}
	for _, lv := range []int{-1, 3} {
		clspec, err := Compile(lspec, CompressionLevel(lv))
		assert.Error(t, err, "level %v", lv)
		assert.Nil(t, clspec)
	}
}

func TestCompile_EnableLogging(t *testing.T) {
	lspec := &spec.LexSpec{
		Name: "test",
		Entries: []*spec.LexEntry{
			spec.NewLexEntry("a", "a"),
		},
	}
	var b bytes.Buffer
	_, err := Compile(lspec, EnableLogging(&b))
	require.NoError(t, err)
	assert.Contains(t, b.String(), `msg="Compile default mode:"`)
	assert.Contains(t, b.String(), "Compression level: 2")
}

func TestCompressRowDisplacement(t *testing.T) {
	orig := []int{
		0, 0, 0, 0,
		1, 0, 2, 0,
		0, 3, 0, 4,
		5, 0, 0, 6,
	}
	tab := compressRowDisplacement(orig, 4, 4, 0)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			assert.Equal(t, orig[row*4+col], tab.Lookup(row, col), "row %v, col %v", row, col)
		}
	}
	// The second and the third rows interleave without any displacement.
	assert.Equal(t, 0, tab.RowDisplacement[1])
	assert.Equal(t, 0, tab.RowDisplacement[2])
	assert.Len(t, tab.Entries, len(tab.Bounds))
}
