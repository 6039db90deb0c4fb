package query

import (
	"fmt"
	"strings"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/storage"
)

// evaluateExpr resolves a WHERE-clause expression against the current
// node/edge-variable bindings. A missing or unresolved property, or an
// unbound edge variable in type(...), evaluates to nil (null).
func evaluateExpr(e Expr, nodeVars, edgeVars map[string]string, g *storage.Graph) (interface{}, error) {
	switch expr := e.(type) {
	case *Literal:
		return expr.Value, nil

	case *PropertyAccess:
		id, ok := nodeVars[expr.Variable]
		if !ok {
			return nil, nil
		}
		node, ok := g.GetNode(id)
		if !ok {
			return nil, nil
		}
		val, ok := node.Property(expr.Property)
		if !ok {
			return nil, nil
		}
		return val, nil

	case *TypeOfCall:
		t, ok := edgeVars[expr.EdgeVar]
		if !ok {
			return nil, nil
		}
		return t, nil

	default:
		return nil, fmt.Errorf("query: %w: unknown expression %T", ErrUnsupportedOperator, e)
	}
}

// evaluatePredicate evaluates a WHERE-clause boolean expression with
// standard short-circuit AND/OR.
func evaluatePredicate(pred Predicate, nodeVars, edgeVars map[string]string, g *storage.Graph) (bool, error) {
	switch p := pred.(type) {
	case *AndPredicate:
		left, err := evaluatePredicate(p.Left, nodeVars, edgeVars, g)
		if err != nil || !left {
			return false, err
		}
		return evaluatePredicate(p.Right, nodeVars, edgeVars, g)

	case *OrPredicate:
		left, err := evaluatePredicate(p.Left, nodeVars, edgeVars, g)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return evaluatePredicate(p.Right, nodeVars, edgeVars, g)

	case *NotPredicate:
		inner, err := evaluatePredicate(p.Inner, nodeVars, edgeVars, g)
		if err != nil {
			return false, err
		}
		return !inner, nil

	case *Comparison:
		left, err := evaluateExpr(p.Left, nodeVars, edgeVars, g)
		if err != nil {
			return false, err
		}
		right, err := evaluateExpr(p.Right, nodeVars, edgeVars, g)
		if err != nil {
			return false, err
		}
		return compareValues(left, p.Operator, right)

	case *StringOp:
		left, err := evaluateExpr(p.Left, nodeVars, edgeVars, g)
		if err != nil {
			return false, err
		}
		right, err := evaluateExpr(p.Right, nodeVars, edgeVars, g)
		if err != nil {
			return false, err
		}
		return stringOp(left, p.Operator, right), nil

	default:
		return false, fmt.Errorf("query: %w: unknown predicate %T", ErrUnsupportedOperator, pred)
	}
}

func compareValues(left interface{}, op string, right interface{}) (bool, error) {
	switch op {
	case "=":
		return valuesEqual(left, right), nil
	case "!=":
		return !valuesEqual(left, right), nil
	case "<", "<=", ">", ">=":
		if left == nil || right == nil {
			return false, nil
		}
		lf, lok := toNumber(left)
		rf, rok := toNumber(right)
		if !lok || !rok {
			return false, nil
		}
		switch op {
		case "<":
			return lf < rf, nil
		case "<=":
			return lf <= rf, nil
		case ">":
			return lf > rf, nil
		default:
			return lf >= rf, nil
		}
	default:
		return false, fmt.Errorf("query: %w: %s", ErrUnsupportedOperator, op)
	}
}

// valuesEqual implements the equality rule in the spec: numeric values
// coerce across int/float, null = null is true, and any other type
// mismatch (string vs number, bool vs string, ...) is false.
func valuesEqual(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	if lf, lok := toNumber(left); lok {
		if rf, rok := toNumber(right); rok {
			return lf == rf
		}
		return false
	}
	if lb, lok := left.(bool); lok {
		rb, rok := right.(bool)
		return lok && rok && lb == rb
	}
	if ls, lok := left.(string); lok {
		rs, rok := right.(string)
		return lok && rok && ls == rs
	}
	return false
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func stringOp(left interface{}, op string, right interface{}) bool {
	ls, lok := left.(string)
	rs, rok := right.(string)
	if !lok || !rok {
		return false
	}
	switch op {
	case "STARTS WITH":
		return strings.HasPrefix(ls, rs)
	case "ENDS WITH":
		return strings.HasSuffix(ls, rs)
	case "CONTAINS":
		return strings.Contains(ls, rs)
	default:
		return false
	}
}

// matchesNodeSpec reports whether node satisfies spec's type filter and
// (case-sensitive) label substring filter.
func matchesNodeSpec(node *graph.Node, spec NodeSpec) bool {
	if spec.Type != "" && node.Type != spec.Type {
		return false
	}
	if spec.HasLabel && !strings.Contains(node.Label, spec.LabelFilter) {
		return false
	}
	return true
}
