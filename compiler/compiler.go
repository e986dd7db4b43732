package compiler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samx-lang/samxlex/log"
	"github.com/samx-lang/samxlex/spec"
)

var errNullablePattern = errors.New("a pattern must not match the empty string")

type CompileError struct {
	Kind   spec.LexKindName
	Cause  error
	Detail string
}

func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %v", e.Kind, e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}
	return b.String()
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// CompileErrors holds every entry that failed to compile, in the order the entries appear.
type CompileErrors []*CompileError

func (es CompileErrors) Error() string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

func (es CompileErrors) Unwrap() []error {
	errs := make([]error, 0, len(es))
	for _, e := range es {
		errs = append(errs, e)
	}
	return errs
}

type CompilerOption func(c *compilerConfig) error

func EnableLogging(w io.Writer) CompilerOption {
	return func(c *compilerConfig) error {
		logger, err := log.NewLogger(w)
		if err != nil {
			return err
		}
		c.logger = logger
		return nil
	}
}

func CompressionLevel(lv int) CompilerOption {
	return func(c *compilerConfig) error {
		if lv < CompressionLevelMin || lv > CompressionLevelMax {
			return fmt.Errorf("compression level must be %v to %v; got: %v", CompressionLevelMin, CompressionLevelMax, lv)
		}
		c.compLv = lv
		return nil
	}
}

type compilerConfig struct {
	logger log.Logger
	compLv int
}

func Compile(lexspec *spec.LexSpec, opts ...CompilerOption) (*spec.CompiledLexSpec, error) {
	err := lexspec.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid lexical specification:\n%w", err)
	}

	config := &compilerConfig{
		logger: log.NewNopLogger(),
		compLv: CompressionLevelDefault,
	}
	for _, opt := range opts {
		err := opt(config)
		if err != nil {
			return nil, err
		}
	}

	asts, err := parsePatterns(lexspec.Entries)
	if err != nil {
		return nil, err
	}

	modeEntries, modes, modeNums := groupEntriesByLexMode(lexspec.Entries)

	modeSpecs := []*spec.CompiledLexModeSpec{
		nil,
	}
	for i, es := range modeEntries[1:] {
		modeName := modes[i+1]
		config.logger.Log("Compile %v mode:", modeName)
		modeSpec, err := compile(es, asts, modeNums, config)
		if err != nil {
			return nil, fmt.Errorf("failed to compile in %v mode: %w", modeName, err)
		}
		modeSpecs = append(modeSpecs, modeSpec)
	}

	return &spec.CompiledLexSpec{
		Name:        lexspec.Name,
		InitialMode: spec.LexModeNumDefault,
		Modes:       modes,
		Specs:       modeSpecs,
	}, nil
}

// parsePatterns parses the pattern of every entry once, whatever modes the entry belongs to.
func parsePatterns(entries []*spec.LexEntry) (map[*spec.LexEntry]astNode, error) {
	asts := map[*spec.LexEntry]astNode{}
	var errs CompileErrors
	for _, e := range entries {
		ast, err := parse(string(e.Pattern))
		if err != nil {
			cErr := &CompileError{
				Kind:  e.Kind,
				Cause: err,
			}
			var synErr *syntaxErrorWithDetail
			if errors.As(err, &synErr) {
				cErr.Cause = synErr.cause
				cErr.Detail = synErr.detail
			}
			errs = append(errs, cErr)
			continue
		}
		if ast.nullable() {
			errs = append(errs, &CompileError{
				Kind:   e.Kind,
				Cause:  errNullablePattern,
				Detail: string(e.Pattern),
			})
			continue
		}
		asts[e] = ast
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return asts, nil
}

func groupEntriesByLexMode(entries []*spec.LexEntry) ([][]*spec.LexEntry, []spec.LexModeName, map[spec.LexModeName]spec.LexModeNum) {
	modes := []spec.LexModeName{
		spec.LexModeNameNil,
		spec.LexModeNameDefault,
	}
	modeNums := map[spec.LexModeName]spec.LexModeNum{
		spec.LexModeNameNil:     spec.LexModeNumNil,
		spec.LexModeNameDefault: spec.LexModeNumDefault,
	}
	lastModeNum := spec.LexModeNumDefault
	modeEntries := [][]*spec.LexEntry{
		nil,
		{},
	}
	for _, e := range entries {
		for _, mode := range e.EntryModes() {
			num, ok := modeNums[mode]
			if !ok {
				num = lastModeNum.Succ()
				lastModeNum = num
				modeNums[mode] = num
				modes = append(modes, mode)
				modeEntries = append(modeEntries, []*spec.LexEntry{})
			}
			modeEntries[num] = append(modeEntries[num], e)
		}
	}
	return modeEntries, modes, modeNums
}

func compile(entries []*spec.LexEntry, asts map[*spec.LexEntry]astNode, modeNums map[spec.LexModeName]spec.LexModeNum, config *compilerConfig) (*spec.CompiledLexModeSpec, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a lexical mode must have at least one entry")
	}

	kinds := []spec.LexKindName{
		spec.LexKindNameNil,
	}
	push := []spec.LexModeNum{
		spec.LexModeNumNil,
	}
	pop := []int{
		0,
	}
	skip := []int{
		0,
	}
	modeASTs := map[int]astNode{}
	config.logger.Log("Patterns:")
	for i, e := range entries {
		id := i + 1
		kinds = append(kinds, e.Kind)
		modeASTs[id] = asts[e]
		config.logger.Log("  #%v %v: %v", id, e.Kind, e.Pattern)

		pushV := spec.LexModeNumNil
		if e.Push != "" {
			pushV = modeNums[e.Push]
		}
		push = append(push, pushV)
		popV := 0
		if e.Pop {
			popV = 1
		}
		pop = append(pop, popV)
		skipV := 0
		if e.Skip {
			skipV = 1
		}
		skip = append(skip, skipV)
	}

	root, symTab, err := buildCombinedAST(modeASTs)
	if err != nil {
		return nil, err
	}
	{
		var b strings.Builder
		printAST(&b, root, "", "", false)
		config.logger.Log("AST:\n%v", b.String())
	}

	dfa := genDFA(root, symTab)
	tranTab := genTransitionTable(dfa)
	config.logger.Log(`DFA:
  States: %v states
  Initial State: %v`, tranTab.RowCount, tranTab.InitialState)
	config.logger.Log("  Accepting States:")
	for state, id := range tranTab.AcceptingStates {
		if id == 0 {
			continue
		}
		config.logger.Log("    %v: %v", state, kinds[id])
	}

	tranTab, err = compressTransitionTable(tranTab, config.compLv)
	if err != nil {
		return nil, err
	}
	config.logger.Log("Compression level: %v", config.compLv)

	return &spec.CompiledLexModeSpec{
		Kinds: kinds,
		Push:  push,
		Pop:   pop,
		Skip:  skip,
		DFA:   tranTab,
	}, nil
}
