package utils

import (
	"regexp"
	"time"

	"github.com/itchyny/timefmt-go"

	"refit/internal/pathutil"
)

// variablePattern matches ${var} patterns.
var variablePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Template is a string supporting ${root} style variables, strftime tokens
// like %Y and %m, and a leading ~. Used for the dry-run patch file name.
type Template string

func (t Template) ExpandTilde() Template {
	return Template(pathutil.ExpandTilde(string(t)))
}

// ExpandWithTime replaces strftime tokens using the given time.
func (t Template) ExpandWithTime(at time.Time) Template {
	return Template(timefmt.Format(at, string(t)))
}

// ExpandVariables replaces ${name} variables from the map, leaving unknown
// variables untouched.
func (t Template) ExpandVariables(vars map[string]string) Template {
	result := variablePattern.ReplaceAllStringFunc(string(t), func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := vars[varName]; ok {
			return val
		}
		return match
	})
	return Template(result)
}

func (t Template) String() string {
	return string(t)
}
