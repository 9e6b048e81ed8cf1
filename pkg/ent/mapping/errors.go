package mapping

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
)

// AmbiguousEquivalenceError is returned when one subject has two
// representatives.
func AmbiguousEquivalenceError(subj, obj1, obj2 curie.Reference) error {
	msg := "Ambiguous equivalence: <em>%s</em> maps to both %s and %s"
	vars := []any{subj.Curie(), obj1.Curie(), obj2.Curie()}
	return &gn.Error{
		Code: errcode.AmbiguousEquivalenceError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("subject %s has more than one object: %s, %s",
			subj, obj1, obj2),
	}
}

// EquivalenceChainError is returned when a representative is itself
// rewritten to another entity.
func EquivalenceChainError(subj string, obj, next curie.Reference) error {
	msg := "Equivalence chain: <em>%s</em> -> %s -> %s"
	vars := []any{subj, obj.Curie(), next.Curie()}
	return &gn.Error{
		Code: errcode.EquivalenceChainError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("object %s of subject %s is also a subject",
			obj, subj),
	}
}
