// internal/domain/rule/template.go
package rule

import (
	"fmt"
	"regexp"
	"strconv"
)

var tokenPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Interpolate substitutes every {field} token in template with the matching
// record value. Tokens with no matching field are left verbatim, so partial
// data never corrupts the surrounding text.
func Interpolate(template string, record map[string]interface{}) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		field := token[1 : len(token)-1]
		value, ok := record[field]
		if !ok {
			return token
		}
		return formatValue(value)
	})
}

// formatValue renders record values for message text. Floats drop trailing
// zeros so a count that survived a JSON round-trip prints as "5", not "5.000000".
func formatValue(v interface{}) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return formatNumber(n)
	case float32:
		return formatNumber(float64(n))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
