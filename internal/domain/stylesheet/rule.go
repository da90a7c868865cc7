package stylesheet

import "strings"

type declaration struct {
	property string
	value    string
}

func decl(property, value string) declaration {
	return declaration{property: property, value: value}
}

// ruleWriter accumulates rules, one per line. Every declaration is forced
// with !important because target pages style the same elements.
type ruleWriter struct {
	b strings.Builder
}

func (w *ruleWriter) rule(selector string, decls ...declaration) {
	w.b.WriteString(selector)
	w.b.WriteString(" {")
	for _, d := range decls {
		w.b.WriteByte(' ')
		w.b.WriteString(d.property)
		w.b.WriteString(": ")
		w.b.WriteString(d.value)
		w.b.WriteString(" !important;")
	}
	w.b.WriteString(" }\n")
}

func (w *ruleWriter) String() string {
	return w.b.String()
}
