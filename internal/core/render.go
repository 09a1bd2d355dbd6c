package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mlscaffold/internal/types"
)

// placeholderPattern matches the delimited placeholder tokens the
// substitution engine understands: {{ key }} with optional inner
// whitespace. Tokens are matched literally; there is no expression
// language behind them.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Render substitutes every placeholder in body with its context value.
// templatePath is only used for error reporting. Every placeholder must
// resolve; any missing key fails the render before a single byte of
// output is produced, naming the key and the template it appears in.
// Values are inserted verbatim and the result is independent of context
// iteration order.
func Render(templatePath string, body []byte, vars types.Context) ([]byte, error) {
	if err := checkResolvable(templatePath, body, vars); err != nil {
		return nil, err
	}
	rendered := placeholderPattern.ReplaceAllFunc(body, func(token []byte) []byte {
		key := placeholderPattern.FindSubmatch(token)[1]
		value, _ := vars.Lookup(string(key))
		return []byte(value)
	})
	return rendered, nil
}

// RenderString is Render for short inline snippets such as destination
// paths and manifest author entries.
func RenderString(templatePath string, body string, vars types.Context) (string, error) {
	rendered, err := Render(templatePath, []byte(body), vars)
	if err != nil {
		return "", err
	}
	return string(rendered), nil
}

func checkResolvable(templatePath string, body []byte, vars types.Context) error {
	seen := map[string]struct{}{}
	var missing []string
	for _, match := range placeholderPattern.FindAllSubmatch(body, -1) {
		key := string(match[1])
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := vars.Lookup(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("unresolved placeholder %s in template %s", strings.Join(missing, ", "), templatePath))
}
