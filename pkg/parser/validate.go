package parser

import (
	"fmt"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
)

// knownMachineProperties is the closed set of `with name: expr` keys this
// grammar accepts. The acceptance set is domain-defined and is not fully
// specified by the grammar alone (an Open Question — see DESIGN.md): rather
// than invent an unbounded list, this keeps the handful of property names
// that actually appear in this language's worked examples (machine degree,
// the block-machine latch/operation-id pair, and call-selector columns) and
// rejects anything else, so a typo in a property name is still caught.
var knownMachineProperties = map[string]bool{
	"degree":         true,
	"latch":          true,
	"operation_id":   true,
	"call_selectors": true,
}

// validateMachineProperties is the TryFromPropList post-parse normalizer
// (spec.md §4.4): it rejects duplicate keys and keys outside
// knownMachineProperties before constructing the validated MachineProperties
// value.
func validateMachineProperties(order []string, entries map[string]ast.Expression) (ast.MachineProperties, error) {
	seen := map[string]bool{}
	for _, key := range order {
		if !knownMachineProperties[key] {
			return ast.MachineProperties{}, fmt.Errorf("unknown machine property %q", key)
		}
		if seen[key] {
			return ast.MachineProperties{}, fmt.Errorf("duplicate machine property %q", key)
		}
		seen[key] = true
	}
	return ast.NewMachineProperties(order, entries), nil
}

// validateMachineParams is the TryFromParams post-parse normalizer
// (spec.md §4.4): it rejects a machine parameter list with a repeated name.
func validateMachineParams(raw []ast.MachineParam) (ast.MachineParams, error) {
	seen := map[string]bool{}
	for _, p := range raw {
		if seen[p.Name] {
			return ast.MachineParams{}, fmt.Errorf("duplicate machine parameter %q", p.Name)
		}
		seen[p.Name] = true
	}
	return ast.MachineParams{Params: raw}, nil
}

// linkTargetFromExpression lifts a parsed link right-hand-side Expression
// into a call-shaped LinkTarget (spec.md §4.4, "Expression::try_into a
// LinkTarget"): the expression must be a FunctionCall whose callee is a
// plain path reference, e.g. `sub_machine::operation(arg, arg)`.
func linkTargetFromExpression(e ast.Expression) (ast.LinkTarget, error) {
	call, ok := e.(*ast.FunctionCall)
	if !ok {
		return ast.LinkTarget{}, fmt.Errorf("link target must be a call-shaped submachine operation reference")
	}
	ref, ok := call.Function.(*ast.NamespacedPolynomialReference)
	if !ok {
		return ast.LinkTarget{}, fmt.Errorf("link target callee must be a plain path reference")
	}
	return ast.LinkTarget{Instance: ref.Path.Path, Args: call.Arguments, Ref: call.Ref}, nil
}
