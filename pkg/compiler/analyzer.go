package compiler

import "strings"

// unknownType is the analyzer-path miss sentinel: it is what Variable and
// FunctionCall resolve to when their name is undeclared, distinct from
// SymbolTable.GetType's "Double" miss default, which is reserved for the
// emitter path in codegen.go (spec.md §9). Every value the analyzer ever
// returns as unknownType is preceded by the diagnostic that explains why;
// downstream type checks skip an unknownType operand rather than compare
// against it, so one undefined name never cascades into a second,
// unrelated-looking diagnostic.
const unknownType = "Unknown"

// Analyzer walks a Program after parsing, populating a SymbolTable and
// checking the static rules spec.md §4.4 assigns to this stage: every
// call site resolves to a known callable with a compatible argument
// count, every if/for condition is Boolean, every arithmetic operand is
// Double, and every read resolves to a declared identifier. Like Lexer
// and Parser it never aborts: a failed check records a Diagnostic and
// analysis continues with best-effort types.
type Analyzer struct {
	symtab *SymbolTable
	diags  *diagnosticList
}

// Analyze runs semantic analysis over prog, returning the populated
// SymbolTable and any Diagnostics produced.
func Analyze(prog *Program, sink Sink) (*SymbolTable, []Diagnostic) {
	a := &Analyzer{symtab: NewSymbolTable(), diags: newDiagnosticList(sink)}
	a.registerFunctions(prog.Elements)
	a.registerTopLevelDecls(prog.Elements)
	for _, stmt := range prog.Elements {
		a.analyzeStmt(stmt)
	}
	return a.symtab, a.diags.items
}

// registerFunctions hoists every function's name, parameter types, and
// return type before any body is analyzed, so forward and mutually
// recursive calls resolve. Parameter type is the name-based heuristic
// (spec.md §4.4) applied uniformly to every parameter. Return type is
// the same heuristic when the name collides with a catalogue entry;
// otherwise it is left for analyzeReturnType to fill in once the body
// has been walked.
func (a *Analyzer) registerFunctions(elements []Stmt) {
	for _, stmt := range elements {
		fn, ok := stmt.(*Function)
		if !ok {
			continue
		}
		paramType := InferredParamType(fn.Name)
		params := make([]string, len(fn.Params))
		for i := range params {
			params[i] = paramType
		}
		a.symtab.AddFunctionParams(fn.Name, params)
		for _, p := range fn.Params {
			a.symtab.Add(p, paramType, 0, 0)
		}
		if retType, ok := InferredReturnType(fn.Name); ok {
			a.symtab.Add(fn.Name, retType, 0, 0)
		}
	}
}

// registerTopLevelDecls records every explicit top-level variable
// declaration's type ahead of analysis, the same forward-visibility
// rationale as registerFunctions.
func (a *Analyzer) registerTopLevelDecls(elements []Stmt) {
	for _, stmt := range elements {
		if decl, ok := stmt.(*VariableDeclaration); ok && decl.Name != "" {
			a.symtab.Add(decl.Name, decl.DeclaredType, 0, 0)
		}
	}
}

func (a *Analyzer) analyzeStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case nil:
		return
	case *Function:
		a.analyzeFunction(s)
	case *VariableDeclaration:
		if s.Name != "" {
			a.symtab.Add(s.Name, s.DeclaredType, 0, 0)
		}
	case *Assignment:
		a.analyzeAssignment(s)
	case *FunctionCall:
		a.analyzeCall(s)
	case *Return:
		if s.Value != nil {
			a.inferExprType(s.Value)
		}
	case *If:
		a.checkBoolean(s.Condition, "if condition", s.Line, s.Column)
		for _, inner := range s.Then {
			a.analyzeStmt(inner)
		}
		for _, inner := range s.Else {
			a.analyzeStmt(inner)
		}
	case *For:
		if s.Init != nil {
			a.analyzeAssignment(s.Init)
		}
		a.checkBoolean(s.Cond, "for condition", s.Line, s.Column)
		if s.Update != nil {
			a.analyzeAssignment(s.Update)
		}
		for _, inner := range s.Body {
			a.analyzeStmt(inner)
		}
	}
}

// analyzeFunction analyzes a function body and, when the function's
// return type was not settled by the name heuristic, infers it from
// the first return statement carrying a value (Void when there is
// none). This resolves the same-name-table ambiguity for functions
// whose name is not itself a catalogue entry.
func (a *Analyzer) analyzeFunction(fn *Function) {
	inferredReturn := ""
	for _, stmt := range fn.Body {
		if ret, ok := stmt.(*Return); ok && inferredReturn == "" && ret.Value != nil {
			inferredReturn = a.inferExprType(ret.Value)
			continue
		}
		a.analyzeStmt(stmt)
	}
	if _, ok := InferredReturnType(fn.Name); ok {
		return // already settled by registerFunctions
	}
	if inferredReturn == "" {
		inferredReturn = "Void"
	}
	a.symtab.Add(fn.Name, inferredReturn, 0, 0)
}

func (a *Analyzer) analyzeAssignment(asn *Assignment) {
	if asn == nil || asn.Target == "" {
		return
	}
	valueType := "Double"
	if asn.Value != nil {
		valueType = a.inferExprType(asn.Value)
	}
	if !a.symtab.Contains(asn.Target) {
		a.symtab.Add(asn.Target, valueType, asn.Line, asn.Column)
		return
	}
	declared := a.symtab.GetType(asn.Target)
	if valueType != unknownType && declared != unknownType && declared != valueType {
		a.diags.add(asn.Line, asn.Column, "type mismatch: cannot assign %s value to %s variable '%s'",
			valueType, declared, asn.Target)
	}
}

func (a *Analyzer) analyzeCall(call *FunctionCall) string {
	if call == nil {
		return unknownType
	}
	if !a.symtab.Contains(call.Callee) {
		a.diags.add(call.Line, call.Column, "Undefined function '%s'", call.Callee)
		for _, arg := range call.Args {
			a.inferExprType(arg)
		}
		return unknownType
	}
	if call.Callee != "print" {
		params := a.symtab.GetFunctionParams(call.Callee)
		if len(params) != len(call.Args) {
			a.diags.add(call.Line, call.Column, "function '%s' expects %d argument(s), got %d",
				call.Callee, len(params), len(call.Args))
		}
		for i, arg := range call.Args {
			argType := a.inferExprType(arg)
			if argType == unknownType {
				continue // already diagnosed at the source of the Unknown
			}
			if i < len(params) && params[i] != argType {
				a.diags.add(call.Line, call.Column, "argument %d to '%s' should be %s, got %s",
					i+1, call.Callee, params[i], argType)
			}
		}
	} else {
		for _, arg := range call.Args {
			a.inferExprType(arg)
		}
	}
	return a.symtab.GetType(call.Callee)
}

func (a *Analyzer) checkBoolean(expr Expr, context string, line, column int) {
	if expr == nil {
		return
	}
	typ := a.inferExprType(expr)
	if typ == unknownType {
		return // already diagnosed at the source of the Unknown
	}
	if typ != "Boolean" {
		a.diags.add(line, column, "%s must be Boolean, got %s", context, typ)
	}
}

// inferExprType computes expr's static type, recording diagnostics for
// undefined identifiers and non-Double arithmetic operands along the way.
func (a *Analyzer) inferExprType(expr Expr) string {
	switch e := expr.(type) {
	case nil:
		return "Double"

	case *Literal:
		if strings.HasPrefix(e.Raw, "\"") {
			return "String"
		}
		return "Double"

	case *Variable:
		if !a.symtab.Contains(e.Name) {
			a.diags.add(e.Line, e.Column, "Undefined variable '%s'", e.Name)
			return unknownType
		}
		return a.symtab.GetType(e.Name)

	case *BinaryOp:
		left := a.inferExprType(e.Left)
		right := a.inferExprType(e.Right)
		if left == unknownType || right == unknownType {
			return unknownType
		}
		// "+" also serves as string concatenation: if either side is
		// String the result is String and no operand diagnostic fires.
		// Every other arithmetic operator requires Double both sides.
		if e.Op == "+" {
			if left == "String" || right == "String" {
				return "String"
			}
			if left != "Double" || right != "Double" {
				a.diags.add(e.Line, e.Column, "operator '+' requires Double or String operands")
			}
			return "Double"
		}
		if left != "Double" {
			a.diags.add(e.Line, e.Column, "operator '%s' requires Double operands, left operand is %s", e.Op, left)
		}
		if right != "Double" {
			a.diags.add(e.Line, e.Column, "operator '%s' requires Double operands, right operand is %s", e.Op, right)
		}
		return "Double"

	case *Comparison:
		left := a.inferExprType(e.Left)
		right := a.inferExprType(e.Right)
		if left == unknownType || right == unknownType {
			return unknownType
		}
		if left != "Double" {
			a.diags.add(e.Line, e.Column, "comparison operator '%s' requires Double operands, left operand is %s", e.Op, left)
		}
		if right != "Double" {
			a.diags.add(e.Line, e.Column, "comparison operator '%s' requires Double operands, right operand is %s", e.Op, right)
		}
		return "Boolean"

	case *LogicalOp:
		a.checkBoolean(e.Left, "operand of "+e.Op, e.Line, e.Column)
		a.checkBoolean(e.Right, "operand of "+e.Op, e.Line, e.Column)
		return "Boolean"

	case *StringIndex:
		if e.Target != nil {
			targetType := a.inferExprType(e.Target)
			if targetType == unknownType {
				a.inferExprType(e.Index)
				return unknownType
			}
			if targetType != "String" {
				a.diags.add(e.Line, e.Column, "cannot index non-String variable '%s'", e.Target.Name)
			}
		}
		a.inferExprType(e.Index)
		return "String"

	case *FunctionCall:
		return a.analyzeCall(e)

	default:
		return "Double"
	}
}
