package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// BuiltinSignature describes one entry of the frozen built-in catalogue.
type BuiltinSignature struct {
	ReturnType string
	Params     []string
}

// builtinCatalogue is the fixed set of pre-declared callables, installed
// into every SymbolTable before analysis begins and never removed.
// print is variadic and is special-cased wherever this table is
// consulted for arity.
var builtinCatalogue = map[string]BuiltinSignature{
	"print": {ReturnType: "Void", Params: nil},

	"length":        {"Double", []string{"String"}},
	"capitalize":    {"String", []string{"String"}},
	"uppercase":     {"String", []string{"String"}},
	"lowercase":     {"String", []string{"String"}},
	"is_empty":      {"Boolean", []string{"String"}},
	"is_numeric":    {"Boolean", []string{"String"}},
	"concat":        {"String", []string{"String", "String"}},
	"contains":      {"Boolean", []string{"String", "String"}},
	"index_of":      {"Double", []string{"String", "String"}},
	"repeat_string": {"String", []string{"String", "Double"}},
	"reverse":       {"String", []string{"String"}},

	"add":          {"Double", []string{"Double", "Double"}},
	"subtract":     {"Double", []string{"Double", "Double"}},
	"multiply":     {"Double", []string{"Double", "Double"}},
	"divide":       {"Double", []string{"Double", "Double"}},
	"max":          {"Double", []string{"Double", "Double"}},
	"min":          {"Double", []string{"Double", "Double"}},
	"abs":          {"Double", []string{"Double"}},
	"compare":      {"Double", []string{"Double", "Double"}},
	"factorial":    {"Double", []string{"Double"}},
	"is_prime":     {"Boolean", []string{"Double"}},
	"average":      {"Double", []string{"Double", "Double"}},
	"round":        {"Double", []string{"Double"}},
	"floor":        {"Double", []string{"Double"}},
	"ceil":         {"Double", []string{"Double"}},
	"is_even":      {"Boolean", []string{"Double"}},
	"is_odd":       {"Boolean", []string{"Double"}},
	"digit_sum":    {"Double", []string{"Double"}},
	"is_divisible": {"Boolean", []string{"Double", "Double"}},
	"modulus":      {"Double", []string{"Double", "Double"}},
	"in_range":     {"Boolean", []string{"Double", "Double", "Double"}},
	"random_num":   {"Double", []string{"Double", "Double"}},
	"square":       {"Double", []string{"Double"}},
	"cube":         {"Double", []string{"Double"}},
	"percent_of":   {"Double", []string{"Double", "Double"}},
	"roll_dice":    {"Double", []string{"Double"}},
	"distance":     {"Double", []string{"Double", "Double", "Double", "Double"}},
	"is_positive":  {"Boolean", []string{"Double"}},
	"is_greater":   {"Boolean", []string{"Double", "Double"}},

	"is_palindrome": {"Boolean", []string{"String"}},

	"create_file": {"Boolean", []string{"String"}},
	"delete_file": {"Boolean", []string{"String"}},
	"copy_file":   {"Boolean", []string{"String", "String"}},
	"move_file":   {"Boolean", []string{"String", "String"}},

	"exec":              {"String", []string{"String"}},
	"get_wd":            {"String", nil},
	"get_username":      {"String", nil},
	"get_user_home_dir": {"String", nil},
	"change_dir":        {"Boolean", []string{"String"}},
	"get_env":           {"String", []string{"String"}},
}

// stringParamHeuristicNames is the exact fixed list from spec.md §4.4: a
// user-defined function whose name appears here takes all-String
// parameters; every other user function takes all-Double parameters.
var stringParamHeuristicNames = map[string]bool{
	"concat": true, "reverse": true, "uppercase": true, "lowercase": true,
	"is_empty": true, "is_numeric": true, "create_file": true, "delete_file": true,
	"copy_file": true, "move_file": true, "get_wd": true, "get_username": true,
	"get_user_home_dir": true, "change_dir": true, "get_env": true, "contains": true,
	"index_of": true, "repeat_string": true, "capitalize": true,
}

// SymbolTable maps identifiers to types and, for callables, to ordered
// parameter-type lists. L has no block scoping (spec.md §3: one type
// per identifier, last declaration wins), so unlike a scoped symbol
// table this is a single flat map for the whole compilation unit.
type SymbolTable struct {
	types      map[string]string
	funcParams map[string][]string
	line       map[string]int
	column     map[string]int
}

// NewSymbolTable returns a table pre-seeded with the built-in catalogue.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		types:      make(map[string]string),
		funcParams: make(map[string][]string),
		line:       make(map[string]int),
		column:     make(map[string]int),
	}
	for name, sig := range builtinCatalogue {
		t.types[name] = sig.ReturnType
		t.funcParams[name] = append([]string(nil), sig.Params...)
	}
	return t
}

// Add records identifier's type and declaration site. Later calls for
// the same identifier overwrite earlier ones.
func (t *SymbolTable) Add(name, typ string, line, column int) {
	t.types[name] = typ
	t.line[name] = line
	t.column[name] = column
}

// AddFunctionParams records the ordered parameter-type list for a
// callable name.
func (t *SymbolTable) AddFunctionParams(name string, params []string) {
	t.funcParams[name] = params
}

// Contains reports whether name has been declared (built-in or user).
func (t *SymbolTable) Contains(name string) bool {
	_, ok := t.types[name]
	return ok
}

// GetType returns name's type, defaulting to "Double" on a miss. This
// default is load-bearing (spec.md §9): callers that must distinguish
// "known missing" from "assume Double" should check Contains first.
func (t *SymbolTable) GetType(name string) string {
	if typ, ok := t.types[name]; ok {
		return typ
	}
	return "Double"
}

// GetFunctionParams returns name's parameter-type list, or an empty
// slice if name is not a known callable.
func (t *SymbolTable) GetFunctionParams(name string) []string {
	return t.funcParams[name]
}

// IsBuiltin reports whether name is one of the frozen catalogue entries.
func IsBuiltin(name string) bool {
	_, ok := builtinCatalogue[name]
	return ok
}

// InferredParamType returns the parameter type a user function named
// name should use for every one of its parameters, per the name-based
// heuristic in spec.md §4.4.
func InferredParamType(name string) string {
	if stringParamHeuristicNames[name] {
		return "String"
	}
	return "Double"
}

// InferredReturnType returns the name-based heuristic return type for a
// user function named name, and whether the heuristic applied at all.
// See DESIGN.md Open Question #1 for how "same built-in-name table,
// partitioned into Boolean/String/Double" was resolved.
func InferredReturnType(name string) (string, bool) {
	sig, ok := builtinCatalogue[name]
	if !ok {
		return "", false
	}
	switch sig.ReturnType {
	case "Boolean", "String", "Double":
		return sig.ReturnType, true
	default:
		return "", false
	}
}

// String returns a deterministic, sorted dump of the user-declared
// portion of the table (built-ins are omitted; they never change).
func (t *SymbolTable) String() string {
	var sb strings.Builder
	names := make([]string, 0, len(t.types))
	for name := range t.types {
		if IsBuiltin(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "%-20s type=%-8s params=%v line=%d column=%d\n",
			name, t.types[name], t.funcParams[name], t.line[name], t.column[name])
	}
	return sb.String()
}
