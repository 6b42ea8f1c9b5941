package compiler

import (
	"os"
	"strings"
	"testing"
)

func TestCompileSuccess(t *testing.T) {
	result := Compile(`square(n) {
    return n * n;
}
x = call square(5);
call print(x);`, nil)
	if result.Failed() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if !strings.Contains(result.Output, "CompilerOutput") {
		t.Fatalf("expected generated Java source, got:\n%s", result.Output)
	}
}

func TestCompileGatesGenerationOnDiagnostics(t *testing.T) {
	result := Compile(`call mystery(1);`, nil)
	if !result.Failed() {
		t.Fatalf("expected calling an undefined function to fail compilation")
	}
	if result.Output != "" {
		t.Fatalf("expected no output when compilation fails, got:\n%s", result.Output)
	}
}

func TestCompileReportFormat(t *testing.T) {
	result := Compile(`call mystery(1);`, nil)
	report := result.Report()
	if !strings.HasPrefix(report, "Compilation failed due to the following errors:\n") {
		t.Fatalf("unexpected report header: %q", report)
	}
	if !strings.Contains(report, "mystery") {
		t.Fatalf("expected report to mention the offending name, got: %q", report)
	}
}

func TestCompileDiagnosticsAccumulateAcrossStages(t *testing.T) {
	// Lexical error ("@"), plus a semantic error (undefined function),
	// both must be present in the final diagnostic list.
	result := Compile(`@
call mystery(1);`, nil)
	if len(result.Diagnostics) < 2 {
		t.Fatalf("expected diagnostics from multiple stages, got: %v", result.Diagnostics)
	}
}

func TestCompileAccumulatesIntoFileSink(t *testing.T) {
	tmp := t.TempDir() + "/errors.txt"
	sink := NewFileSink(tmp)
	result := Compile(`call mystery(1);`, sink)
	if !result.Failed() {
		t.Fatalf("expected compilation to fail")
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "mystery") {
		t.Fatalf("expected the sink file to record the diagnostic, got: %q", string(data))
	}
}
