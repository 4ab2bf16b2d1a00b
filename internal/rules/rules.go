// Package rules evaluates user-supplied boolean expressions against built
// sources groups, turning policy conventions ("privacy groups carry the
// privacy icon") into lint findings.
package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/safecfg-dev/safecfg/internal/config"
)

// Env is the expression environment for one group. Field names are the
// vocabulary available inside rule expressions, e.g.
//
//	SourceCount <= 10 && IconType != "privacy"
//	ID startsWith "android" || "lock-screen" in SourceIDs
type Env struct {
	ID          string   `expr:"ID"`
	TitleRef    int      `expr:"TitleRef"`
	SummaryRef  int      `expr:"SummaryRef"`
	IconType    string   `expr:"IconType"`
	SourceCount int      `expr:"SourceCount"`
	SourceIDs   []string `expr:"SourceIDs"`
	SourceTypes []string `expr:"SourceTypes"`
}

// NewEnv builds the expression environment from a group.
func NewEnv(g *config.SourcesGroup) Env {
	sources := g.Sources()
	ids := make([]string, len(sources))
	types := make([]string, len(sources))
	for i, s := range sources {
		ids[i] = s.ID()
		types[i] = s.Type().String()
	}
	return Env{
		ID:          g.ID(),
		TitleRef:    g.TitleRef(),
		SummaryRef:  g.SummaryRef(),
		IconType:    g.StatelessIconType().String(),
		SourceCount: g.SourceCount(),
		SourceIDs:   ids,
		SourceTypes: types,
	}
}

// Rule is one compiled boolean expression.
type Rule struct {
	Source  string
	program *vm.Program
}

// Compile compiles each expression against the group environment. A rule
// that does not compile, or does not yield a boolean, fails here before
// any document is read.
func Compile(exprs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(exprs))
	for _, src := range exprs {
		program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q: %w", src, err)
		}
		rules = append(rules, Rule{Source: src, program: program})
	}
	return rules, nil
}

// Eval runs the rule against one group. A false result means the group
// breaks the rule.
func (r Rule) Eval(g *config.SourcesGroup) (bool, error) {
	out, err := expr.Run(r.program, NewEnv(g))
	if err != nil {
		return false, fmt.Errorf("rule %q: %w", r.Source, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("rule %q: expected boolean result, got %T", r.Source, out)
	}
	return ok, nil
}
