package compiler

import "strings"

// CodeGenerator emits a single Java source file (class CompilerOutput)
// from an analyzed Program, grounded on original_source/Compiler/
// CodeGenerator.java's one-class-per-program shape. Built-ins are
// partitioned three ways (spec.md §7): most compile to a direct Java
// expression inline; a handful need a few lines of logic and compile
// to a call into the generated CompilerHelpers class; the filesystem
// built-ins, exec and change_dir always go through CompilerHelpers
// since they carry real side effects, while the read-only host-info
// built-ins (get_wd, get_username, get_user_home_dir, get_env) inline
// as direct expressions. Generation assumes the Program it is given
// is diagnostic-free; Driver never calls it otherwise.
type generator struct {
	symtab *SymbolTable
}

// Generate renders prog as a complete Java compilation unit.
func Generate(prog *Program, symtab *SymbolTable) string {
	g := &generator{symtab: symtab}
	var sb strings.Builder

	sb.WriteString("import java.util.Scanner;\n")
	sb.WriteString("import java.io.*;\n")
	sb.WriteString("import java.nio.file.*;\n\n")
	sb.WriteString("public class CompilerOutput {\n\n")

	var mainStmts []Stmt
	for _, elem := range prog.Elements {
		if fn, ok := elem.(*Function); ok {
			g.genFunction(fn, &sb)
		} else {
			mainStmts = append(mainStmts, elem)
		}
	}

	g.genMain(mainStmts, &sb)
	sb.WriteString(helpersClassSource)
	sb.WriteString("}\n")
	return sb.String()
}

func javaType(lType string) string {
	switch lType {
	case "String":
		return "String"
	case "Boolean":
		return "boolean"
	case "Void":
		return "void"
	default:
		return "double"
	}
}

func defaultLiteral(javaType string) string {
	switch javaType {
	case "String":
		return "\"\""
	case "boolean":
		return "false"
	default:
		return "0.0"
	}
}

func (g *generator) genFunction(fn *Function, sb *strings.Builder) {
	retType := javaType(g.symtab.GetType(fn.Name))
	params := g.symtab.GetFunctionParams(fn.Name)

	paramDecls := make([]string, len(fn.Params))
	declared := map[string]bool{}
	for i, p := range fn.Params {
		ptype := "Double"
		if i < len(params) {
			ptype = params[i]
		}
		paramDecls[i] = javaType(ptype) + " " + p
		declared[p] = true
	}

	sb.WriteString("    static " + retType + " " + fn.Name + "(" + strings.Join(paramDecls, ", ") + ") {\n")
	g.genHoistedLocals(fn.Body, declared, sb, 8)
	for _, stmt := range fn.Body {
		g.genStmt(stmt, sb, 8)
	}
	sb.WriteString("    }\n\n")
}

func (g *generator) genMain(stmts []Stmt, sb *strings.Builder) {
	sb.WriteString("    public static void main(String[] args) throws Exception {\n")
	g.genHoistedLocals(stmts, map[string]bool{}, sb, 8)
	for _, stmt := range stmts {
		g.genStmt(stmt, sb, 8)
	}
	sb.WriteString("    }\n\n")
}

// genHoistedLocals declares every name assigned anywhere in stmts (L
// has no block scoping, so Java needs exactly one declaration per
// name, emitted before the first use regardless of which nested if/for
// branch actually assigns it).
func (g *generator) genHoistedLocals(stmts []Stmt, exclude map[string]bool, sb *strings.Builder, indent int) {
	var names []string
	seen := map[string]bool{}
	collectLocalNames(stmts, &names, seen)
	pad := strings.Repeat(" ", indent)
	for _, name := range names {
		if exclude[name] {
			continue
		}
		jtype := javaType(g.symtab.GetType(name))
		if jtype == "void" {
			continue
		}
		sb.WriteString(pad + jtype + " " + name + " = " + defaultLiteral(jtype) + ";\n")
	}
}

func collectLocalNames(stmts []Stmt, names *[]string, seen map[string]bool) {
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			*names = append(*names, name)
		}
	}
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *VariableDeclaration:
			add(s.Name)
		case *Assignment:
			add(s.Target)
		case *If:
			collectLocalNames(s.Then, names, seen)
			collectLocalNames(s.Else, names, seen)
		case *For:
			if s.Init != nil {
				add(s.Init.Target)
			}
			if s.Update != nil {
				add(s.Update.Target)
			}
			collectLocalNames(s.Body, names, seen)
		}
	}
}

func (g *generator) genStmt(stmt Stmt, sb *strings.Builder, indent int) {
	pad := strings.Repeat(" ", indent)
	switch s := stmt.(type) {
	case nil:
		return

	case *VariableDeclaration:
		// Already hoisted; the declaration itself emits nothing.

	case *Assignment:
		if s == nil || s.Target == "" || s.Value == nil {
			return
		}
		sb.WriteString(pad + s.Target + " = " + g.genExpr(s.Value) + ";\n")

	case *FunctionCall:
		sb.WriteString(pad + g.genCall(s) + ";\n")

	case *Return:
		if s.Value == nil {
			sb.WriteString(pad + "return;\n")
		} else {
			sb.WriteString(pad + "return " + g.genExpr(s.Value) + ";\n")
		}

	case *If:
		sb.WriteString(pad + "if (" + g.genExpr(s.Condition) + ") {\n")
		for _, inner := range s.Then {
			g.genStmt(inner, sb, indent+4)
		}
		sb.WriteString(pad + "}\n")
		if len(s.Else) > 0 {
			sb.WriteString(pad + "else {\n")
			for _, inner := range s.Else {
				g.genStmt(inner, sb, indent+4)
			}
			sb.WriteString(pad + "}\n")
		}

	case *For:
		init, update := "", ""
		if s.Init != nil && s.Init.Value != nil {
			init = s.Init.Target + " = " + g.genExpr(s.Init.Value)
		}
		if s.Update != nil && s.Update.Value != nil {
			update = s.Update.Target + " = " + g.genExpr(s.Update.Value)
		}
		cond := g.genExpr(s.Cond)
		sb.WriteString(pad + "for (" + init + "; " + cond + "; " + update + ") {\n")
		for _, inner := range s.Body {
			g.genStmt(inner, sb, indent+4)
		}
		sb.WriteString(pad + "}\n")
	}
}

func canonicalizeNumber(raw string) string {
	if strings.Contains(raw, ".") {
		return raw
	}
	return raw + ".0"
}

func (g *generator) genExpr(expr Expr) string {
	switch e := expr.(type) {
	case nil:
		return "0.0"

	case *Literal:
		if strings.HasPrefix(e.Raw, "\"") {
			return e.Raw
		}
		return canonicalizeNumber(e.Raw)

	case *Variable:
		return e.Name

	case *BinaryOp:
		return "(" + g.genExpr(e.Left) + " " + e.Op + " " + g.genExpr(e.Right) + ")"

	case *Comparison:
		// Analyze requires Double operands on both sides of a
		// comparison, so Generate only ever sees primitive comparisons
		// here; Compile never calls it on a diagnostic-carrying tree.
		return "(" + g.genExpr(e.Left) + " " + e.Op + " " + g.genExpr(e.Right) + ")"

	case *LogicalOp:
		op := "&&"
		if e.Op == "OR" {
			op = "||"
		}
		return "(" + g.genExpr(e.Left) + " " + op + " " + g.genExpr(e.Right) + ")"

	case *StringIndex:
		target := e.Target.Name
		return "String.valueOf((" + target + ").charAt((int)(" + g.genExpr(e.Index) + ")))"

	case *FunctionCall:
		return g.genCall(e)

	default:
		return "0.0"
	}
}

func (g *generator) genCall(call *FunctionCall) string {
	args := make([]string, len(call.Args))
	for i, a := range call.Args {
		args[i] = g.genExpr(a)
	}

	if call.Callee == "print" {
		if len(args) == 0 {
			return "System.out.println()"
		}
		return "System.out.println(" + strings.Join(args, " + \" \" + ") + ")"
	}

	if expr, ok := directBuiltinExpr(call.Callee, args); ok {
		return expr
	}
	if expr, ok := helperBuiltinCall(call.Callee, args); ok {
		return expr
	}
	return call.Callee + "(" + strings.Join(args, ", ") + ")"
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return "0.0"
}

// directBuiltinExpr handles the catalogue entries that compile to a
// single Java expression with no supporting helper method.
func directBuiltinExpr(name string, args []string) (string, bool) {
	a0, a1, a2, a3 := arg(args, 0), arg(args, 1), arg(args, 2), arg(args, 3)
	switch name {
	case "add":
		return "(" + a0 + " + " + a1 + ")", true
	case "subtract":
		return "(" + a0 + " - " + a1 + ")", true
	case "multiply":
		return "(" + a0 + " * " + a1 + ")", true
	case "divide":
		return "(" + a0 + " / " + a1 + ")", true
	case "modulus":
		return "(" + a0 + " % " + a1 + ")", true
	case "max":
		return "Math.max(" + a0 + ", " + a1 + ")", true
	case "min":
		return "Math.min(" + a0 + ", " + a1 + ")", true
	case "abs":
		return "Math.abs(" + a0 + ")", true
	case "square":
		return "(" + a0 + " * " + a0 + ")", true
	case "cube":
		return "(" + a0 + " * " + a0 + " * " + a0 + ")", true
	case "floor":
		return "Math.floor(" + a0 + ")", true
	case "ceil":
		return "Math.ceil(" + a0 + ")", true
	case "round":
		return "(double) Math.round(" + a0 + ")", true
	case "compare":
		return "(double) Double.compare(" + a0 + ", " + a1 + ")", true
	case "is_positive":
		return "(" + a0 + " > 0)", true
	case "is_greater":
		return "(" + a0 + " > " + a1 + ")", true
	case "is_even":
		return "(" + a0 + " % 2 == 0)", true
	case "is_odd":
		return "(" + a0 + " % 2 != 0)", true
	case "is_divisible":
		return "(" + a0 + " % " + a1 + " == 0)", true
	case "percent_of":
		return "(" + a0 + " / 100.0 * " + a1 + ")", true
	case "average":
		return "((" + a0 + " + " + a1 + ") / 2.0)", true
	case "in_range":
		return "(" + a0 + " >= " + a1 + " && " + a0 + " <= " + a2 + ")", true
	case "length":
		return "(double) (" + a0 + ").length()", true
	case "uppercase":
		return "(" + a0 + ").toUpperCase()", true
	case "lowercase":
		return "(" + a0 + ").toLowerCase()", true
	case "is_empty":
		return "(" + a0 + ").isEmpty()", true
	case "concat":
		return "(" + a0 + " + " + a1 + ")", true
	case "contains":
		return "(" + a0 + ").contains(" + a1 + ")", true
	case "index_of":
		return "(double) (" + a0 + ").indexOf(" + a1 + ")", true
	case "reverse":
		return "new StringBuilder(" + a0 + ").reverse().toString()", true
	case "get_wd":
		return `System.getProperty("user.dir")`, true
	case "get_username":
		return `System.getProperty("user.name")`, true
	case "get_user_home_dir":
		return `System.getProperty("user.home")`, true
	case "get_env":
		return "String.valueOf(System.getenv(" + a0 + "))", true
	default:
		_ = a3
		return "", false
	}
}

// helperBuiltinCall handles the catalogue entries that need a few
// lines of logic (adapter functions) or touch the filesystem/process
// (fixed helper routines); both compile to a call into CompilerHelpers.
func helperBuiltinCall(name string, args []string) (string, bool) {
	a0, a1, a2, a3 := arg(args, 0), arg(args, 1), arg(args, 2), arg(args, 3)
	switch name {
	case "factorial":
		return "CompilerHelpers.factorial(" + a0 + ")", true
	case "is_prime":
		return "CompilerHelpers.isPrime(" + a0 + ")", true
	case "digit_sum":
		return "CompilerHelpers.digitSum(" + a0 + ")", true
	case "random_num":
		return "CompilerHelpers.randomNum(" + a0 + ", " + a1 + ")", true
	case "roll_dice":
		return "CompilerHelpers.rollDice(" + a0 + ")", true
	case "distance":
		return "CompilerHelpers.distance(" + a0 + ", " + a1 + ", " + a2 + ", " + a3 + ")", true
	case "repeat_string":
		return "CompilerHelpers.repeatString(" + a0 + ", " + a1 + ")", true
	case "capitalize":
		return "CompilerHelpers.capitalize(" + a0 + ")", true
	case "is_numeric":
		return "CompilerHelpers.isNumeric(" + a0 + ")", true
	case "is_palindrome":
		return "CompilerHelpers.isPalindrome(" + a0 + ")", true
	case "create_file":
		return "CompilerHelpers.createFile(" + a0 + ")", true
	case "delete_file":
		return "CompilerHelpers.deleteFile(" + a0 + ")", true
	case "copy_file":
		return "CompilerHelpers.copyFile(" + a0 + ", " + a1 + ")", true
	case "move_file":
		return "CompilerHelpers.moveFile(" + a0 + ", " + a1 + ")", true
	case "exec":
		return "CompilerHelpers.exec(" + a0 + ")", true
	case "change_dir":
		return "CompilerHelpers.changeDir(" + a0 + ")", true
	default:
		return "", false
	}
}

// helpersClassSource is the fixed runtime support class backing every
// adapter built-in, the filesystem built-ins, exec and change_dir. It is emitted in full on
// every Generate call: the catalogue is frozen, so which methods a
// given program actually calls does not change what the class needs to
// contain, and emitting it unconditionally keeps output deterministic
// and independent of call-site analysis.
const helpersClassSource = `    static class CompilerHelpers {
        static double factorial(double n) {
            long result = 1;
            for (long i = 2; i <= (long) n; i++) {
                result *= i;
            }
            return (double) result;
        }

        static boolean isPrime(double n) {
            long v = (long) n;
            if (v < 2) return false;
            for (long i = 2; i * i <= v; i++) {
                if (v % i == 0) return false;
            }
            return true;
        }

        static double digitSum(double n) {
            long v = Math.abs((long) n);
            long sum = 0;
            while (v > 0) {
                sum += v % 10;
                v /= 10;
            }
            return (double) sum;
        }

        static double randomNum(double lo, double hi) {
            return lo + Math.random() * (hi - lo);
        }

        static double rollDice(double sides) {
            return 1 + Math.floor(Math.random() * sides);
        }

        static double distance(double x1, double y1, double x2, double y2) {
            double dx = x2 - x1;
            double dy = y2 - y1;
            return Math.sqrt(dx * dx + dy * dy);
        }

        static String repeatString(String s, double n) {
            StringBuilder sb = new StringBuilder();
            for (int i = 0; i < (int) n; i++) {
                sb.append(s);
            }
            return sb.toString();
        }

        static String capitalize(String s) {
            if (s.isEmpty()) return s;
            return Character.toUpperCase(s.charAt(0)) + s.substring(1);
        }

        static boolean isNumeric(String s) {
            try {
                Double.parseDouble(s);
                return true;
            } catch (NumberFormatException e) {
                return false;
            }
        }

        static boolean isPalindrome(String s) {
            return s.equals(new StringBuilder(s).reverse().toString());
        }

        static boolean createFile(String path) {
            try {
                return new File(path).createNewFile();
            } catch (IOException e) {
                return false;
            }
        }

        static boolean deleteFile(String path) {
            return new File(path).delete();
        }

        static boolean copyFile(String src, String dst) {
            try {
                Files.copy(Paths.get(src), Paths.get(dst), StandardCopyOption.REPLACE_EXISTING);
                return true;
            } catch (IOException e) {
                return false;
            }
        }

        static boolean moveFile(String src, String dst) {
            try {
                Files.move(Paths.get(src), Paths.get(dst), StandardCopyOption.REPLACE_EXISTING);
                return true;
            } catch (IOException e) {
                return false;
            }
        }

        static String exec(String command) {
            try {
                Process proc = new ProcessBuilder("sh", "-c", command).redirectErrorStream(true).start();
                BufferedReader reader = new BufferedReader(new InputStreamReader(proc.getInputStream()));
                StringBuilder out = new StringBuilder();
                String line;
                while ((line = reader.readLine()) != null) {
                    out.append(line).append("\n");
                }
                proc.waitFor();
                return out.toString();
            } catch (Exception e) {
                return "";
            }
        }

        static boolean changeDir(String path) {
            return new File(path).isDirectory();
        }
    }

`
