package compiler

import "strings"

// Result is the outcome of a full Compile run.
type Result struct {
	Output      string       // generated Java source, empty when diagnostics gated generation
	Diagnostics []Diagnostic // accumulated in stage order: lexical, syntactic, semantic
}

// Failed reports whether any stage produced a diagnostic. Generation
// only happens when this is false (spec.md §5: a program with any
// diagnostic never reaches the code generator).
func (r Result) Failed() bool {
	return len(r.Diagnostics) > 0
}

// Report renders the diagnostics as the compiler's failure report, the
// same "Compilation failed due to the following errors:" framing the
// reference compiler uses (original_source/Compiler/Compiler.java).
func (r Result) Report() string {
	if !r.Failed() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Compilation failed due to the following errors:\n")
	for _, d := range r.Diagnostics {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Compile runs the full Lex -> Parse -> Analyze -> Generate pipeline
// over src. Every stage's diagnostics are recorded to sink and
// concatenated, in stage order, into the returned Result; the
// generator only runs when the concatenation is empty.
func Compile(src string, sink Sink) Result {
	var all []Diagnostic

	tokens, lexDiags := Lex(src, sink)
	all = append(all, lexDiags...)

	prog, parseDiags := Parse(tokens, sink)
	all = append(all, parseDiags...)

	symtab, analysisDiags := Analyze(prog, sink)
	all = append(all, analysisDiags...)

	if len(all) > 0 {
		return Result{Diagnostics: all}
	}

	return Result{Output: Generate(prog, symtab), Diagnostics: all}
}
