// Package generator evaluates an OutputGrammar against an AST produced by
// inputgrammar to render the transpiled output text (spec.md §4.3). Every
// output rule is evaluated tree-directed: the generator walks the AST and
// the output grammar in lockstep, so the two need not mirror each other
// exactly as long as every output rule name the caller wants populated has
// a matching child somewhere under the current node.
package generator

import (
	"strings"

	"github.com/Dangornushi/hensan/ast"
	"github.com/Dangornushi/hensan/metagrammar"
)

// Generator evaluates one OutputGrammar against any number of AST trees. It
// holds no mutable state, so a single value may be reused (and shared
// across goroutines) for any number of Generate calls.
type Generator struct {
	grammar *metagrammar.OutputGrammar
}

// New prepares a Generator bound to grammar.
func New(grammar *metagrammar.OutputGrammar) *Generator {
	return &Generator{grammar: grammar}
}

// Generate renders root by evaluating the output rule named after root's
// own name, with no context (the outermost call has no invoking rule).
func (g *Generator) Generate(root *ast.ASTNode) string {
	return g.generateRule(root.Name, root, "")
}

// generateRule evaluates the output rule named ruleName against node, with
// context carrying the name of the rule that invoked it. If no such output
// rule exists, the node's own value is echoed verbatim, or — if it has no
// value — its children are generated recursively and concatenated; this is
// the deliberate fallback of spec.md §4.3/§7, not an error.
func (g *Generator) generateRule(ruleName string, node *ast.ASTNode, context string) string {
	rule, ok := g.grammar.Rules[ruleName]
	if !ok {
		if node.Value != "" {
			return node.Value
		}
		var b strings.Builder
		for _, children := range node.Children {
			for _, child := range children {
				b.WriteString(g.generateRule(child.Name, child, ruleName))
			}
		}
		return b.String()
	}
	return g.generateExpr(rule.Expr, node, ruleName, context)
}

// generateExpr evaluates expr against node. currentRule is the output rule
// currently being evaluated (becomes the context passed to any RuleRef it
// invokes); context is the rule that invoked currentRule (what OutContextIf
// branches on).
func (g *Generator) generateExpr(expr metagrammar.OutputExpr, node *ast.ASTNode, currentRule, context string) string {
	switch e := expr.(type) {
	case metagrammar.OutLiteral:
		return expandEscapes(e.Value)

	case metagrammar.OutRuleRef:
		return g.generateRuleRef(e.Name, node, currentRule)

	case metagrammar.OutSequence:
		var b strings.Builder
		for _, item := range e.Items {
			b.WriteString(g.generateExpr(item, node, currentRule, context))
		}
		return b.String()

	case metagrammar.OutOptional:
		result := g.generateExpr(e.Elem, node, currentRule, context)
		if strings.TrimSpace(result) == "" {
			return ""
		}
		return result

	case metagrammar.OutJoin:
		children := node.ChildrenNamed(e.Rule)
		parts := make([]string, len(children))
		for i, child := range children {
			parts[i] = g.generateRule(e.Rule, child, currentRule)
		}
		return strings.Join(parts, expandEscapes(e.Separator))

	case metagrammar.OutMatch:
		for _, c := range e.Cases {
			if node.Value == c.Pattern {
				return c.Replacement
			}
		}
		if e.Default == "@value" {
			return node.Value
		}
		return e.Default

	case metagrammar.OutContextIf:
		if context == e.ContextValue {
			return g.generateExpr(e.Then, node, currentRule, context)
		}
		return g.generateExpr(e.Else, node, currentRule, context)

	case metagrammar.OutChoice:
		for _, alt := range e.Alternatives {
			if result := g.generateExpr(alt, node, currentRule, context); result != "" {
				return result
			}
		}
		return ""

	default:
		return ""
	}
}

// generateRuleRef resolves a RuleRef against node, in the order spec.md
// §4.3 specifies: a matching named child first, then node itself if it is
// already that rule, then a leaf fallback so that e.g. `call_arg := name;`
// can read a directly-captured value, and finally empty. A rule that refers
// to itself with no child of that name (e.g. `name := name;`) echoes the
// node's captured value instead of re-entering itself.
func (g *Generator) generateRuleRef(name string, node *ast.ASTNode, currentRule string) string {
	if child := node.Child(name); child != nil {
		return g.generateRule(name, child, currentRule)
	}
	if name == currentRule {
		return node.Value
	}
	if node.Name == name {
		return g.generateRule(name, node, currentRule)
	}
	if node.IsLeaf() {
		return g.generateRule(name, node, currentRule)
	}
	return ""
}

// expandEscapes expands the three escape sequences output literals and
// join separators recognize: \n, \t, \r (spec.md §4.3).
func expandEscapes(s string) string {
	r := strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r")
	return r.Replace(s)
}
