package lalr

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// String renders the table as a grid of state rows against terminal/
// nonterminal columns, in the same shape as the teacher's
// parse.lalr1Table.String (also rosed-backed).
func (t *Table) String() string {
	terms := t.Grammar.Terminals()
	nts := t.Grammar.Nonterminals()

	headers := []string{"state", "|"}
	for _, term := range terms {
		headers = append(headers, t.Grammar.TerminalName(term))
	}
	headers = append(headers, "|")
	for _, nt := range nts {
		headers = append(headers, t.Grammar.NonterminalName(nt))
	}

	data := [][]string{headers}

	for i, st := range t.States {
		row := []string{fmt.Sprintf("%d", i), "|"}
		for _, term := range terms {
			cell := ""
			if act, ok := st.Action[term]; ok {
				switch act.Kind {
				case Shift:
					cell = fmt.Sprintf("s%d", act.Target.Index())
				case Reduce:
					cell = fmt.Sprintf("r%d", act.RuleTag)
				case Accept:
					cell = "acc"
				}
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nts {
			cell := ""
			if target, ok := st.Goto[nt]; ok {
				cell = fmt.Sprintf("%d", target.Index())
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
