package compiler

import (
	"sort"
	"strconv"

	"github.com/samx-lang/samxlex/spec"
)

type DFA struct {
	States               []string
	InitialState         string
	AcceptingStatesTable map[string]int
	TransitionTable      map[string][256]string
}

// genDFA builds a DFA by subset construction over the follow table. States are listed in the order they are
// discovered, so the result is the same for the same AST.
func genDFA(root astNode, symTab *symbolTable) *DFA {
	initialState := root.first()
	initialStateHash := initialState.hash()
	stateMap := map[string]symbolPositionSet{
		initialStateHash: initialState,
	}
	states := []string{
		initialStateHash,
	}
	tranTab := map[string][256]string{}
	{
		follow := newFollowSetIndex(genFollowTable(root))
		// A byte reached from the same combination of follow sets always moves to the same state.
		combo2Hash := map[string]string{}
		for i := 0; i < len(states); i++ {
			hash := states[i]
			state := stateMap[hash]
			followsOfState := [256][]int{}
			for _, pos := range state.sort() {
				if pos.isEndMark() {
					continue
				}
				id := follow.id(pos)
				valRange := symTab.symPos2Byte[pos]
				for symVal := int(valRange.from); symVal <= int(valRange.to); symVal++ {
					followsOfState[symVal] = append(followsOfState[symVal], id)
				}
			}
			tabOfState := [256]string{}
			for v, ids := range followsOfState {
				if len(ids) == 0 {
					continue
				}
				key := followComboKey(ids)
				h, ok := combo2Hash[key]
				if !ok {
					t := follow.union(ids)
					h = t.hash()
					combo2Hash[key] = h
					if h != "" {
						if _, ok := stateMap[h]; !ok {
							stateMap[h] = t
							states = append(states, h)
						}
					}
				}
				tabOfState[v] = h
			}
			tranTab[hash] = tabOfState
		}
	}

	accTab := map[string]int{}
	{
		for h, s := range stateMap {
			for pos := range s {
				if !pos.isEndMark() {
					continue
				}
				id := symTab.endPos2ID[pos]
				priorID, ok := accTab[h]
				if !ok || id < priorID {
					accTab[h] = id
				}
			}
		}
	}

	return &DFA{
		States:               states,
		InitialState:         initialStateHash,
		AcceptingStatesTable: accTab,
		TransitionTable:      tranTab,
	}
}

// followSetIndex numbers the distinct follow sets. Positions at the end of a large character class all
// share one follow set, so unions are taken over far fewer sets than positions.
type followSetIndex struct {
	follow  followTable
	pos2ID  map[symbolPosition]int
	hash2ID map[string]int
	sets    []symbolPositionSet
}

func newFollowSetIndex(follow followTable) *followSetIndex {
	return &followSetIndex{
		follow:  follow,
		pos2ID:  map[symbolPosition]int{},
		hash2ID: map[string]int{},
	}
}

func (x *followSetIndex) id(pos symbolPosition) int {
	if id, ok := x.pos2ID[pos]; ok {
		return id
	}
	set := x.follow[pos]
	h := set.hash()
	id, ok := x.hash2ID[h]
	if !ok {
		id = len(x.sets)
		x.hash2ID[h] = id
		x.sets = append(x.sets, set)
	}
	x.pos2ID[pos] = id
	return id
}

func (x *followSetIndex) union(ids []int) symbolPositionSet {
	s := newSymbolPositionSet()
	for _, id := range ids {
		s.merge(x.sets[id])
	}
	return s
}

// followComboKey identifies a combination of follow sets regardless of order and repetition. ids is sorted in
// place.
func followComboKey(ids []int) string {
	sort.Ints(ids)
	b := make([]byte, 0, len(ids)*4)
	for i, id := range ids {
		if i > 0 && id == ids[i-1] {
			continue
		}
		b = strconv.AppendInt(b, int64(id), 16)
		b = append(b, ':')
	}
	return string(b)
}

func genTransitionTable(dfa *DFA) *spec.TransitionTable {
	state2Num := map[string]int{}
	for i, s := range dfa.States {
		// Since 0 represents an invalid value in a transition table,
		// assign a number greater than or equal to 1 to states.
		state2Num[s] = i + 1
	}

	acc := make([]int, len(dfa.States)+1)
	for _, s := range dfa.States {
		id, ok := dfa.AcceptingStatesTable[s]
		if !ok {
			continue
		}
		acc[state2Num[s]] = id
	}

	rowCount := len(dfa.States) + 1
	colCount := 256
	tran := make([]int, rowCount*colCount)
	for s, tab := range dfa.TransitionTable {
		for v, to := range tab {
			if to == "" {
				continue
			}
			tran[state2Num[s]*colCount+v] = state2Num[to]
		}
	}

	return &spec.TransitionTable{
		InitialState:           state2Num[dfa.InitialState],
		AcceptingStates:        acc,
		UncompressedTransition: tran,
		RowCount:               rowCount,
		ColCount:               colCount,
	}
}
