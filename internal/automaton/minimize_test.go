package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildRedundantDFA recognizes strings over {a,b} ending in 'a', built with
// two equivalent accepting states (s1 and an unreachable twin s2) so
// minimization has something real to merge — the handle-based analogue of
// the worked 6-state-to-2-state example this package is grounded on.
func buildRedundantDFA() (dfa *DFA[byte, bool], start, s1, s2 interface{}) {
	d := &DFA[byte, bool]{}
	s0 := d.NewState()
	st1 := d.NewState()
	st2 := d.NewState()

	d.SetInitialState(s0)
	d.Link(s0, st1, 'a')
	d.Link(s0, s0, 'b')
	d.Link(st1, st1, 'a')
	d.Link(st1, s0, 'b')
	d.Link(st2, st2, 'a')
	d.Link(st2, s0, 'b')
	d.Label(st1, true)
	d.Label(st2, true)

	return d, s0, st1, st2
}

func TestMinimize_MergesEquivalentStates(t *testing.T) {
	assert := assert.New(t)

	d, _, _, _ := buildRedundantDFA()
	assert.Equal(3, len(d.States()))

	min := Minimize[byte, bool](d)
	assert.Equal(2, len(min.States()))
}

func TestMinimize_PreservesLanguage(t *testing.T) {
	assert := assert.New(t)

	d, _, _, _ := buildRedundantDFA()
	min := Minimize[byte, bool](d)

	cases := map[string]bool{
		"":     false,
		"a":    true,
		"b":    false,
		"ba":   true,
		"ab":   false,
		"aaab": false,
		"aaba": true,
	}
	for input, want := range cases {
		assert.Equal(want, runDFA(min, input), "input %q", input)
	}
}

func TestMinimize_DropsDeadState(t *testing.T) {
	assert := assert.New(t)

	// a DFA with an explicit missing transition (no 'b' from s1) should not
	// gain a visible trap state in the minimized output.
	d := &DFA[byte, bool]{}
	s0 := d.NewState()
	s1 := d.NewState()
	d.SetInitialState(s0)
	d.Link(s0, s1, 'a')
	d.Label(s1, true)

	min := Minimize[byte, bool](d)
	start, ok := min.InitialState()
	assert.True(ok)

	accepting, isAccepting := min.Step(start, 'a')
	assert.True(isAccepting)
	lbl, has := min.GetLabel(accepting)
	assert.True(has)
	assert.True(lbl)

	_, missing := min.Step(accepting, 'b')
	assert.False(missing)
}
