package driver

// DefaultInputGrammar and DefaultOutputGrammar are bootstrapped into
// Grammar/input.bnf and Grammar/output.bnf the first time the tool runs
// without either file present. They describe a small C-like function
// signature transpiled to a Rust-like one, matching the reference tool's
// built-in example pair exactly.
const DefaultInputGrammar = `func_decl := ret_type name "(" args? ")" ";";
args      := arg ("," arg)*;
arg       := type name;
ret_type  := "void" | "int";
type      := "int" | "float";
name      := "[a-zA-Z_]+";
`

const DefaultOutputGrammar = `// name and ret_type change position
func_decl := "fn " name "(" args? ")" " -> " ret_type ";";

// the argument list is joined with commas
args      := arg join ", ";

// type and name are swapped
arg       := name ": " type;

// primitive type names are translated
ret_type  := match @value {
    "void" => "()",
    "int"  => "i32",
    _ => @value
};
type      := match @value {
    "int" => "i32",
    "float" => "f64",
    _ => @value
};
`
