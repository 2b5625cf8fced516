package translator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"git.home.luguber.info/inful/typstbuilder/internal/util/sets"
)

var (
	tagPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	operators  = sets.New("and", "or", "not", "true", "false")
)

// evalOnly evaluates the boolean tag expression of an only directive. Every
// name in the expression is a tag; it is true when the tag is set.
func evalOnly(expression string, tags sets.Set[string]) (bool, error) {
	if strings.TrimSpace(expression) == "" {
		return false, fmt.Errorf("empty expression")
	}
	env := make(map[string]any)
	for _, name := range tagPattern.FindAllString(expression, -1) {
		if !operators.Has(name) {
			env[name] = tags.Has(name)
		}
	}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}
