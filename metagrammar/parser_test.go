package metagrammar

import "testing"

func TestParseInputGrammar_FuncDecl(t *testing.T) {
	src := `
		func_decl := ret_type name "(" args? ")" ";";
		args      := arg ("," arg)*;
		arg       := type name;
		ret_type  := "void" | "int";
		type      := "int" | "float";
		name      := "[a-zA-Z_]+";
	`

	g, err := ParseInputGrammar(src)
	if err != nil {
		t.Fatalf("ParseInputGrammar() error = %v", err)
	}

	if g.StartRule != "func_decl" {
		t.Errorf("StartRule = %q, want %q", g.StartRule, "func_decl")
	}
	for _, name := range []string{"func_decl", "args", "arg", "ret_type", "type", "name"} {
		if _, ok := g.Rules[name]; !ok {
			t.Errorf("missing rule %q", name)
		}
	}

	if _, ok := g.Rules["name"].Expr.(Pattern); !ok {
		t.Fatalf("name rule expr = %T, want Pattern", g.Rules["name"].Expr)
	}

	retType := g.Rules["ret_type"]
	choice, ok := retType.Expr.(Choice)
	if !ok || len(choice.Alternatives) != 2 {
		t.Fatalf("ret_type expr = %#v, want a 2-way Choice", retType.Expr)
	}
}

func TestParseInputGrammar_BracketedPatternBody(t *testing.T) {
	g, err := ParseInputGrammar(`name := "[a-zA-Z_]+";`)
	if err != nil {
		t.Fatalf("ParseInputGrammar() error = %v", err)
	}
	pat, ok := g.Rules["name"].Expr.(Pattern)
	if !ok {
		t.Fatalf("expr = %T, want Pattern", g.Rules["name"].Expr)
	}
	// The quoted string "[a-zA-Z_]+" is reclassified by the + heuristic, so
	// its whole quoted content (including the literal brackets) becomes the
	// pattern body -- unlike a bare [a-zA-Z_]+ bracket atom.
	if pat.Value != "[a-zA-Z_]+" {
		t.Errorf("pattern value = %q, want %q", pat.Value, "[a-zA-Z_]+")
	}
}

func TestParseInputGrammar_BareBracketPattern(t *testing.T) {
	g, err := ParseInputGrammar(`name := [a-zA-Z_]+;`)
	if err != nil {
		t.Fatalf("ParseInputGrammar() error = %v", err)
	}
	rep, ok := g.Rules["name"].Expr.(OneOrMore)
	if !ok {
		t.Fatalf("expr = %#v, want OneOrMore", g.Rules["name"].Expr)
	}
	pat, ok := rep.Elem.(Pattern)
	if !ok || pat.Value != "a-zA-Z_" {
		t.Errorf("elem = %#v, want Pattern(\"a-zA-Z_\")", rep.Elem)
	}
}

func TestParseInputGrammar_LiteralNotReclassified(t *testing.T) {
	g, err := ParseInputGrammar(`semi := ";";`)
	if err != nil {
		t.Fatalf("ParseInputGrammar() error = %v", err)
	}
	lit, ok := g.Rules["semi"].Expr.(Literal)
	if !ok || lit.Value != ";" {
		t.Errorf("expr = %#v, want Literal(\";\")", g.Rules["semi"].Expr)
	}
}

func TestParseInputGrammar_IndentationTerminals(t *testing.T) {
	src := `block := "begin" NEWLINE INDENT stmt+ DEDENT;
	         stmt := name NEWLINE;
	         name := "[a-z]+";`
	g, err := ParseInputGrammar(src)
	if err != nil {
		t.Fatalf("ParseInputGrammar() error = %v", err)
	}
	seq, ok := g.Rules["block"].Expr.(Sequence)
	if !ok || len(seq.Items) != 5 {
		t.Fatalf("block expr = %#v, want a 5-item Sequence", g.Rules["block"].Expr)
	}
	if _, ok := seq.Items[1].(Newline); !ok {
		t.Errorf("item 1 = %#v, want Newline", seq.Items[1])
	}
	if _, ok := seq.Items[2].(Indent); !ok {
		t.Errorf("item 2 = %#v, want Indent", seq.Items[2])
	}
	if _, ok := seq.Items[4].(Dedent); !ok {
		t.Errorf("item 4 = %#v, want Dedent", seq.Items[4])
	}
}

func TestParseInputGrammar_MalformedGrammarIsFatal(t *testing.T) {
	_, err := ParseInputGrammar(`func_decl := ret_type name`)
	if err == nil {
		t.Fatal("expected an error for a grammar missing ';'")
	}
}

func TestParseOutputGrammar_JoinMatchContextIf(t *testing.T) {
	src := `
		args     := arg join ", ";
		ret_type := match @value {
			"void" => "()",
			"int"  => "i32",
			_ => @value
		};
		x := if @context == "decl" then "D" else "E";
	`
	g, err := ParseOutputGrammar(src)
	if err != nil {
		t.Fatalf("ParseOutputGrammar() error = %v", err)
	}

	join, ok := g.Rules["args"].Expr.(OutJoin)
	if !ok || join.Rule != "arg" || join.Separator != ", " {
		t.Fatalf("args expr = %#v, want OutJoin{Rule: arg, Separator: \", \"}", g.Rules["args"].Expr)
	}

	match, ok := g.Rules["ret_type"].Expr.(OutMatch)
	if !ok {
		t.Fatalf("ret_type expr = %T, want OutMatch", g.Rules["ret_type"].Expr)
	}
	if len(match.Cases) != 2 || match.Default != "@value" {
		t.Errorf("match = %#v", match)
	}

	ctxIf, ok := g.Rules["x"].Expr.(OutContextIf)
	if !ok || ctxIf.ContextValue != "decl" {
		t.Fatalf("x expr = %#v, want OutContextIf{ContextValue: decl}", g.Rules["x"].Expr)
	}
}

func TestParseOutputGrammar_KeywordBoundary(t *testing.T) {
	// "matching" must parse as a rule reference, not trigger the "match"
	// keyword, since the keyword check requires a non-identifier boundary.
	g, err := ParseOutputGrammar(`x := matching;`)
	if err != nil {
		t.Fatalf("ParseOutputGrammar() error = %v", err)
	}
	ref, ok := g.Rules["x"].Expr.(OutRuleRef)
	if !ok || ref.Name != "matching" {
		t.Fatalf("x expr = %#v, want OutRuleRef{Name: matching}", g.Rules["x"].Expr)
	}
}
