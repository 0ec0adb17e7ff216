// internal/domain/rule/condition.go
package rule

import (
	"fmt"
	"strconv"
)

// ErrUnknownOperator is returned by EvaluateCondition for operators outside
// the supported set. Unknown operators fail closed: a mistyped operator must
// not fire the rule for every record.
var ErrUnknownOperator = fmt.Errorf("unknown condition operator")

// EvaluateCondition applies cond to record. A condition without a field is
// vacuously true. Ordering operators use strict inequality against the
// threshold; a missing field or a value that cannot be read as a number
// evaluates to false rather than erroring.
func EvaluateCondition(cond Condition, record map[string]interface{}) (bool, error) {
	if cond.Field == "" {
		return true, nil
	}

	raw, ok := record[cond.Field]
	if !ok {
		return false, nil
	}

	switch cond.Operator {
	case OperatorGreaterThan:
		v, ok := toFloat(raw)
		return ok && v > cond.Threshold, nil
	case OperatorLessThan:
		v, ok := toFloat(raw)
		return ok && v < cond.Threshold, nil
	case OperatorEqualTo:
		if v, ok := toFloat(raw); ok {
			return v == cond.Threshold, nil
		}
		// Non-numeric values compare against the threshold's string form.
		return fmt.Sprintf("%v", raw) == formatNumber(cond.Threshold), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownOperator, cond.Operator)
	}
}

// toFloat normalizes the numeric shapes a record value can arrive in.
// JSON decoding yields float64; values assembled in-process may be ints.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
