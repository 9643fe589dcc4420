package ast

import "github.com/0xEigenLabs/powdr-pilcom/pkg/source"

// ModuleStatement is any statement at ASM module level (spec.md §4.3,
// "Grammar" — "Module statements").
type ModuleStatement interface {
	moduleStmtNode()
}

// Use is `use path (as alias)?;`. Alias defaults to the path's last segment
// when no "as" clause is present (spec.md §4.3).
type Use struct {
	Path  SymbolPath
	Alias string
	Ref   source.Ref
}

func (*Use) moduleStmtNode() {}

// Mod is `mod name;` (external, Body == nil) or `mod name { ... }` (local,
// Body holds the nested module tree).
type Mod struct {
	Name string
	Body *ASMModule // nil for the external form
	Ref  source.Ref
}

func (*Mod) moduleStmtNode() {}

// ModuleLet wraps a module-level `let` binding as a ModuleStatement.
type ModuleLet struct {
	Let LetStatement
	Ref source.Ref
}

func (*ModuleLet) moduleStmtNode() {}

// ModuleEnum wraps a module-level enum declaration as a ModuleStatement.
type ModuleEnum struct {
	Enum EnumDeclaration
	Ref  source.Ref
}

func (*ModuleEnum) moduleStmtNode() {}

// ModuleTrait wraps a module-level trait declaration as a ModuleStatement.
type ModuleTrait struct {
	Trait TraitDeclaration
	Ref   source.Ref
}

func (*ModuleTrait) moduleStmtNode() {}

// MachineParam is one entry of a machine's parameter list:
// `name[index]? (: type)?` (spec.md §4.3, "Machines").
type MachineParam struct {
	Name        string
	ArrayLength Expression // non-nil for a "name[index]" parameter
	Type        *ExprType  // nil when no ": type" annotation was given
	Ref         source.Ref
}

// MachineParams is the validated parameter list of a machine declaration,
// produced by the TryFromParams post-parse normalizer (spec.md §4.4).
type MachineParams struct {
	Params []MachineParam
}

// MachineProperties is the validated `with name: expr, ...` property list
// of a machine declaration, produced by the TryFromPropList post-parse
// normalizer (spec.md §4.4). Entries preserve declaration order so that
// diagnostics and any later re-serialization see properties in the order
// the user wrote them, while Lookup gives O(1) access by key.
type MachineProperties struct {
	order   []string
	entries map[string]Expression
}

// NewMachineProperties wraps an already-deduplicated, already-validated set
// of (key, value) property entries. Called by the TryFromPropList
// normalizer, which is responsible for rejecting duplicates and unknown
// keys before constructing this value, and by the machine parser with an
// empty set when a machine has no `with` clause.
func NewMachineProperties(order []string, entries map[string]Expression) MachineProperties {
	return MachineProperties{order: order, entries: entries}
}

// Lookup returns the expression bound to key and whether it was present.
func (p MachineProperties) Lookup(key string) (Expression, bool) {
	v, ok := p.entries[key]
	return v, ok
}

// Keys returns the property keys in declaration order.
func (p MachineProperties) Keys() []string { return p.order }

// RegisterFlag is the optional flag on a register declaration:
// `reg id [flag];` with flag ∈ {@pc, <=, @r} (spec.md §4.3, "Machines").
type RegisterFlag int

const (
	RegisterNone RegisterFlag = iota
	RegisterPC                // "@pc"
	RegisterAssign            // "<="
	RegisterReadOnly          // "@r"
)

// LinkKind distinguishes the two link flavors (spec.md §4.3, "Machines").
type LinkKind int

const (
	LinkLookup      LinkKind = iota // "=>"
	LinkPermutation                 // "~>"
)

// LinkTarget is the result of lifting a link's right-hand-side Expression
// into a call-shaped submachine-operation reference, via the
// Expression::try_into normalizer (spec.md §4.4).
type LinkTarget struct {
	Instance SymbolPath
	Args     []Expression
	Ref      source.Ref
}

// LinkDeclaration is `link flag (=>|~>) target;`, usable standalone inside
// a machine body or embedded in an InstructionDeclaration.
type LinkDeclaration struct {
	Flag   Expression // the gating expression before "=>"/"~>"; nil if unconditional
	Kind   LinkKind
	Target LinkTarget
	Ref    source.Ref
}

// Param is a plain `name (: type)?` parameter, used by function and
// operation declarations (distinct from MachineParam, which additionally
// allows an array-length suffix used only in machine parameter lists).
type Param struct {
	Name string
	Type *ExprType
	Ref  source.Ref
}

// DebugKind discriminates the three debug-directive forms (spec.md §3,
// "Function-body statements").
type DebugKind int

const (
	DebugFile DebugKind = iota
	DebugLoc
	DebugOriginalInstruction
)

// DebugDirective is `.debug file|loc|insn ...;` inside a function body.
// Args holds the directive's positional arguments (e.g. file number,
// directory, file name for DebugFile; line, column for DebugLoc; the
// original source text for DebugOriginalInstruction).
type DebugDirective struct {
	Kind DebugKind
	Args []Expression
	Ref  source.Ref
}

func (*DebugDirective) functionStmtNode() {}

// AssignmentOp distinguishes a plain assignment from a submachine-call
// assignment (`x <=Y= f(...)`-style forms some ASM dialects support); kept
// as an enum of one variant today so the grammar can grow additional
// assignment operators without changing the Assignment struct shape.
type AssignmentOp int

const (
	AssignSimple AssignmentOp = iota
)

// FunctionStatement is one statement inside a machine FunctionDeclaration
// body (spec.md §3, "Function-body statements").
type FunctionStatement interface {
	functionStmtNode()
}

// Assignment is `id, id, ... op rhs;`.
type Assignment struct {
	Ids []string
	Op  AssignmentOp
	Rhs Expression
	Ref source.Ref
}

func (*Assignment) functionStmtNode() {}

// Label is `id:` inside a function body.
type Label struct {
	Id  string
	Ref source.Ref
}

func (*Label) functionStmtNode() {}

// Return is `return expr, expr, ...;`.
type Return struct {
	Exprs []Expression
	Ref   source.Ref
}

func (*Return) functionStmtNode() {}

// Instruction is a bare instruction invocation `id arg, arg, ...;` inside a
// function body (as opposed to an InstructionDeclaration, which defines
// one).
type Instruction struct {
	Id   string
	Args []Expression
	Ref  source.Ref
}

func (*Instruction) functionStmtNode() {}

// InstructionDeclaration is `instr id params (links)? ({ body } | ;)`
// (spec.md §4.3, "Machines"). Links may appear with or without a `{}` body;
// HasBody distinguishes "links, then an explicit body" from "links are the
// entire body, terminated by `;`".
type InstructionDeclaration struct {
	Id      string
	Params  []Param
	Links   []LinkDeclaration
	Body    []FunctionStatement
	HasBody bool
	Ref     source.Ref
}

// RegisterDeclaration is `reg id [flag];`.
type RegisterDeclaration struct {
	Id   string
	Flag RegisterFlag
	Ref  source.Ref
}

// Submachine is `path id(args);`, instantiating a submachine.
type Submachine struct {
	Path SymbolPath
	Id   string
	Args []Expression
	Ref  source.Ref
}

// FunctionDeclaration is `function id(params) { body }`.
type FunctionDeclaration struct {
	Id     string
	Params []Param
	Body   []FunctionStatement
	Ref    source.Ref
}

// OperationDeclaration is `operation id<opId> params;`, where opId is a
// single term such as a number.
type OperationDeclaration struct {
	Id     string
	OpId   Expression
	Params []Param
	Ref    source.Ref
}

// MachineStatement is any statement inside a machine body (spec.md §3,
// "Machine statements").
type MachineStatement interface {
	machineStmtNode()
}

func (*Submachine) machineStmtNode()              {}
func (*RegisterDeclaration) machineStmtNode()      {}
func (*InstructionDeclaration) machineStmtNode()   {}
func (*LinkDeclaration) machineStmtNode()          {}
func (*FunctionDeclaration) machineStmtNode()      {}
func (*OperationDeclaration) machineStmtNode()     {}

// PilInMachine wraps an embedded PIL statement as a MachineStatement.
type PilInMachine struct {
	Stmt PilStatement
	Ref  source.Ref
}

func (*PilInMachine) machineStmtNode() {}

// MachineDeclaration is `machine Name params? (with properties)? { stmt* }`
// (spec.md §4.3, "Machines").
type MachineDeclaration struct {
	Name       string
	Params     MachineParams
	Properties MachineProperties
	Statements []MachineStatement
	Ref        source.Ref
}

func (*MachineDeclaration) moduleStmtNode() {}

// ASMModule is the (possibly nested) module tree produced by the ASMModule
// grammar entry point (spec.md §6).
type ASMModule struct {
	Statements []ModuleStatement
	Ref        source.Ref
}
