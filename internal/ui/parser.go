package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet. Selectors are compound type/.class/#id selectors;
// comma lists produce one rule per selector. At-rules and their blocks are skipped.
// Later rules override earlier ones for the same property.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)

	var selectors []string
	var props map[string]string
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return sheet, fmt.Errorf("ui: css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case css.QualifiedRuleGrammar:
			if atDepth == 0 {
				selectors = append(selectors, splitSelectors(selectorText(p.Values()))...)
			}
		case css.BeginRulesetGrammar:
			if atDepth == 0 {
				selectors = append(selectors, splitSelectors(selectorText(p.Values()))...)
				props = make(map[string]string)
			}
		case css.DeclarationGrammar:
			if props != nil {
				props[strings.ToLower(string(data))] = valueText(p.Values())
			}
		case css.EndRulesetGrammar:
			if props != nil {
				for _, sel := range selectors {
					sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
				}
			}
			selectors, props = nil, nil
		}
	}
}

// selectorText concatenates selector tokens as written.
func selectorText(toks []css.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.Write(t.Data)
	}
	return b.String()
}

func splitSelectors(s string) []string {
	var out []string
	for _, sel := range strings.Split(s, ",") {
		if sel = strings.TrimSpace(sel); sel != "" {
			out = append(out, sel)
		}
	}
	return out
}

// valueText joins declaration tokens with single spaces, leaving function arguments
// and comma lists tight: "1px solid #000", "rgba(0,0,0,0.5)".
func valueText(toks []css.Token) string {
	var b strings.Builder
	prev := ""
	for _, t := range toks {
		if t.TokenType == css.WhitespaceToken {
			continue
		}
		cur := string(t.Data)
		if cur == "!" || cur == "important" {
			continue
		}
		tight := prev == "" || strings.HasSuffix(prev, "(") || prev == "," || cur == "," || cur == ")"
		if !tight {
			b.WriteByte(' ')
		}
		b.WriteString(cur)
		prev = cur
	}
	return b.String()
}
