// Package cssinspect tokenizes compiled stylesheets to report what a browser
// will see: how many rulesets and declarations survive, and which
// declarations lack forced priority.
package cssinspect

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Report summarizes a stylesheet.
type Report struct {
	Rulesets     int
	Declarations int
	// Selectors lists ruleset selectors in source order.
	Selectors []string
	// NotImportant lists "selector { property }" for declarations missing !important.
	NotImportant []string
	// ParseErrors counts tokens the parser could not place in a rule.
	ParseErrors int
}

// AllImportant reports whether every declaration carries !important.
func (r Report) AllImportant() bool {
	return len(r.NotImportant) == 0
}

// Inspect walks the stylesheet grammar. It never fails; malformed input is
// counted in ParseErrors.
func Inspect(text string) Report {
	var report Report
	parser := css.NewParser(parse.NewInput(bytes.NewReader([]byte(text))), false)

	var pending []string
	selector := ""
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				report.ParseErrors++
			}
			return report

		case css.QualifiedRuleGrammar:
			// one member of a comma separated selector list
			pending = append(pending, joinTokens(parser.Values()))

		case css.BeginRulesetGrammar:
			report.Rulesets++
			selector = strings.Join(append(pending, joinTokens(parser.Values())), ", ")
			pending = nil
			report.Selectors = append(report.Selectors, selector)

		case css.DeclarationGrammar:
			report.Declarations++
			if !isImportant(parser.Values()) {
				report.NotImportant = append(report.NotImportant, selector+" { "+string(data)+" }")
			}

		case css.EndRulesetGrammar:
			selector = ""

		case css.TokenGrammar:
			report.ParseErrors++
		}
	}
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

func isImportant(values []css.Token) bool {
	var b strings.Builder
	for _, t := range values {
		if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
			continue
		}
		b.Write(t.Data)
	}
	return strings.HasSuffix(strings.ToLower(b.String()), "!important")
}
