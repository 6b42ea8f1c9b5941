package compiler

import (
	"strings"
	"testing"
)

func generateSrc(src string) string {
	tokens, _ := Lex(src, nil)
	prog, _ := Parse(tokens, nil)
	symtab, _ := Analyze(prog, nil)
	return Generate(prog, symtab)
}

func TestGenerateEmitsCompilerOutputClass(t *testing.T) {
	out := generateSrc(`call print("hello");`)
	if !strings.Contains(out, "public class CompilerOutput") {
		t.Fatalf("expected a CompilerOutput class, got:\n%s", out)
	}
	if !strings.Contains(out, "public static void main(String[] args)") {
		t.Fatalf("expected a main method, got:\n%s", out)
	}
}

func TestGenerateCanonicalizesIntegerLiterals(t *testing.T) {
	out := generateSrc(`x = 5;
call print(x);`)
	if !strings.Contains(out, "5.0") {
		t.Fatalf("expected integer literal 5 to canonicalize to 5.0, got:\n%s", out)
	}
}

func TestGeneratePrintJoinsArguments(t *testing.T) {
	out := generateSrc(`call print("a", "b");`)
	if !strings.Contains(out, "System.out.println(") {
		t.Fatalf("expected println call, got:\n%s", out)
	}
	if !strings.Contains(out, `System.out.println("a" + " " + "b")`) {
		t.Fatalf("expected print arguments joined by a single space, got:\n%s", out)
	}
}

func TestGenerateHoistsLocalsOnce(t *testing.T) {
	out := generateSrc(`x = 1;
if (x > 0) {
    x = 2;
} else {
    x = 3;
}`)
	if strings.Count(out, "double x =") != 1 {
		t.Fatalf("expected exactly one hoisted declaration for x, got:\n%s", out)
	}
}

func TestGenerateUserFunctionAndBuiltinAdapterCall(t *testing.T) {
	out := generateSrc(`square(n) {
    return n * n;
}
x = call square(3);
y = call factorial(4);
call print(x, y);`)
	if !strings.Contains(out, "static double square(double n)") {
		t.Fatalf("expected a generated square method, got:\n%s", out)
	}
	if !strings.Contains(out, "CompilerHelpers.factorial(") {
		t.Fatalf("expected factorial to route through CompilerHelpers, got:\n%s", out)
	}
}

func TestGenerateStringConcatenationUsesNativePlus(t *testing.T) {
	out := generateSrc(`greeting = "hi " + "there";
call print(greeting);`)
	if !strings.Contains(out, `("hi " + "there")`) {
		t.Fatalf(`expected native Java "+" string concatenation, got:`+"\n%s", out)
	}
}

func TestGenerateHostInfoBuiltinsInlineAsDirectExpressions(t *testing.T) {
	out := generateSrc(`call print(call get_wd());
call print(call get_env("HOME"));`)
	if !strings.Contains(out, `System.getProperty("user.dir")`) {
		t.Fatalf("expected get_wd to inline System.getProperty, got:\n%s", out)
	}
	if !strings.Contains(out, "String.valueOf(System.getenv(") {
		t.Fatalf("expected get_env to inline System.getenv, got:\n%s", out)
	}
	if strings.Contains(out, "CompilerHelpers.getWd") || strings.Contains(out, "CompilerHelpers.getEnv") {
		t.Fatalf("expected no CompilerHelpers adapter for get_wd/get_env, got:\n%s", out)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	src := `total(a, b) {
    return a + b;
}
x = call total(1, 2);
call print(x);`
	if generateSrc(src) != generateSrc(src) {
		t.Fatalf("expected identical source to generate identical output")
	}
}
