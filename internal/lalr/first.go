package lalr

import "github.com/NadavKahlon/syntax-parser-generator/internal/grammar"

// FirstSets holds the FIRST sets of every nonterminal in a grammar, and
// which nonterminals are nullable (can derive the empty string), computed by
// the standard fixed-point algorithm (Dragon Book Algorithm 4.28).
type FirstSets struct {
	nullable map[grammar.Nonterminal]bool
	first    map[grammar.Nonterminal]map[grammar.Terminal]bool
}

// ComputeFirst computes the FIRST sets for every nonterminal in g.
func ComputeFirst(g *grammar.Grammar) *FirstSets {
	fs := &FirstSets{
		nullable: map[grammar.Nonterminal]bool{},
		first:    map[grammar.Nonterminal]map[grammar.Terminal]bool{},
	}
	for _, nt := range g.Nonterminals() {
		fs.first[nt] = map[grammar.Terminal]bool{}
	}

	for {
		changed := false
		for _, r := range g.Rules() {
			if !fs.nullable[r.LHS] {
				allNullable := true
				for _, sym := range r.RHS {
					if sym.IsTerminal() || !fs.nullable[sym.NT] {
						allNullable = false
						break
					}
				}
				if allNullable {
					fs.nullable[r.LHS] = true
					changed = true
				}
			}

			for _, sym := range r.RHS {
				if sym.IsTerminal() {
					if !fs.first[r.LHS][sym.T] {
						fs.first[r.LHS][sym.T] = true
						changed = true
					}
					break
				}
				for t := range fs.first[sym.NT] {
					if !fs.first[r.LHS][t] {
						fs.first[r.LHS][t] = true
						changed = true
					}
				}
				if !fs.nullable[sym.NT] {
					break
				}
			}
		}
		if !changed {
			break
		}
	}

	return fs
}

// Nullable reports whether nt can derive the empty string.
func (fs *FirstSets) Nullable(nt grammar.Nonterminal) bool {
	return fs.nullable[nt]
}

// Of returns the FIRST set of a single nonterminal.
func (fs *FirstSets) Of(nt grammar.Nonterminal) map[grammar.Terminal]bool {
	return fs.first[nt]
}

// OfSequence computes FIRST(seq), folding in trailing whenever every symbol
// in seq is nullable (including the empty sequence) — this is exactly
// FIRST(beta a) from Dragon Book Algorithm 4.62, used to generate lookaheads
// during LR(1) closure.
func (fs *FirstSets) OfSequence(seq []grammar.Symbol, trailing grammar.Terminal) map[grammar.Terminal]bool {
	out := map[grammar.Terminal]bool{}
	allNullable := true
	for _, sym := range seq {
		if sym.IsTerminal() {
			out[sym.T] = true
			allNullable = false
			break
		}
		for t := range fs.first[sym.NT] {
			out[t] = true
		}
		if !fs.nullable[sym.NT] {
			allNullable = false
			break
		}
	}
	if allNullable {
		out[trailing] = true
	}
	return out
}
