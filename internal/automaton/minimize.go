package automaton

import "github.com/NadavKahlon/syntax-parser-generator/internal/handle"

// Minimize returns a DFA equivalent to d with as few states as possible,
// using Hopcroft-style partition refinement. States are first partitioned by
// label (two states with different labels, or one labeled and one not, can
// never be merged); partitions are then refined until no refinement splits
// any class further, and finally one DFA state is emitted per surviving
// class.
//
// Partition refinement needs a *complete* transition function to compare
// classes on every symbol, but the input DFA is typically partial (lexer
// DFAs have no transition out of most states on most symbols). So Minimize
// first completes d by adding a single synthetic dead state absorbing every
// missing transition (dead-state completion), runs refinement on the
// completed automaton, and then drops the dead state's class from the result
// entirely (dead-state elimination) — unless it turns out to have merged
// with a labeled, live class, which cannot happen since the dead state is
// deliberately given no label and thus starts in its own class.
func Minimize[Sigma comparable, L comparable](d *DFA[Sigma, L]) *DFA[Sigma, L] {
	states := d.States()
	symbols := allSymbols(d, states)

	dead := handle.Mock(states)
	next := func(s handle.Handle[DFAState], sym Sigma) handle.Handle[DFAState] {
		if s == dead {
			return dead
		}
		if n, ok := d.Step(s, sym); ok {
			return n
		}
		return dead
	}

	allStates := append(append([]handle.Handle[DFAState]{}, states...), dead)

	// initial partition: group by label; unlabeled states (including dead)
	// form their own class together.
	classOf := map[handle.Handle[DFAState]]int{}
	labelClass := map[L]int{}
	noLabelClass := -1
	classes := [][]handle.Handle[DFAState]{}

	classIndex := func(s handle.Handle[DFAState]) int {
		if s == dead {
			if noLabelClass == -1 {
				noLabelClass = len(classes)
				classes = append(classes, nil)
			}
			return noLabelClass
		}
		if lbl, ok := d.GetLabel(s); ok {
			idx, seen := labelClass[lbl]
			if !seen {
				idx = len(classes)
				labelClass[lbl] = idx
				classes = append(classes, nil)
			}
			return idx
		}
		if noLabelClass == -1 {
			noLabelClass = len(classes)
			classes = append(classes, nil)
		}
		return noLabelClass
	}

	for _, s := range allStates {
		idx := classIndex(s)
		classes[idx] = append(classes[idx], s)
		classOf[s] = idx
	}

	// refine until stable
	for {
		changed := false
		var newClasses [][]handle.Handle[DFAState]
		newClassOf := map[handle.Handle[DFAState]]int{}

		for _, cls := range classes {
			groups := map[string][]handle.Handle[DFAState]{}
			var order []string
			for _, s := range cls {
				key := make([]byte, 0, len(symbols)*4)
				for _, sym := range symbols {
					target := classOf[next(s, sym)]
					key = appendInt(key, target)
				}
				k := string(key)
				if _, ok := groups[k]; !ok {
					order = append(order, k)
				}
				groups[k] = append(groups[k], s)
			}
			if len(groups) > 1 {
				changed = true
			}
			for _, k := range order {
				idx := len(newClasses)
				newClasses = append(newClasses, groups[k])
				for _, s := range groups[k] {
					newClassOf[s] = idx
				}
			}
		}

		classes = newClasses
		classOf = newClassOf
		if !changed {
			break
		}
	}

	out := &DFA[Sigma, L]{}
	classState := make([]handle.Handle[DFAState], len(classes))
	deadClass := classOf[dead]
	for i, cls := range classes {
		if i == deadClass {
			continue
		}
		classState[i] = out.NewState()
		if lbl, ok := d.GetLabel(cls[0]); ok {
			out.Label(classState[i], lbl)
		}
	}
	for i, cls := range classes {
		if i == deadClass {
			continue
		}
		rep := cls[0]
		for _, sym := range symbols {
			tgt := classOf[next(rep, sym)]
			if tgt == deadClass {
				continue
			}
			out.Link(classState[i], classState[tgt], sym)
		}
	}
	startClass := classOf[d.start]
	out.SetInitialState(classState[startClass])
	return out
}

func allSymbols[Sigma comparable, L any](d *DFA[Sigma, L], states []handle.Handle[DFAState]) []Sigma {
	seen := map[Sigma]bool{}
	var out []Sigma
	for _, s := range states {
		for sym := range d.Transitions(s) {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	return out
}

func appendInt(b []byte, v int) []byte {
	// encodes v as 4 little-endian bytes preceded by a separator byte, so
	// classification keys can't collide across different symbol positions.
	b = append(b, 0xFF)
	b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return b
}
