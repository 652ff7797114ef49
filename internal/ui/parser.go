package ui

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

//go:embed popup.css
var defaultCSS string

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".panel" or "#menu"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ParseCSS parses a stylesheet. Only simple .class and #id selectors are kept; at-rules,
// element selectors and combinators are skipped. A rule with a selector list becomes one
// Rule per selector.
func ParseCSS(content string) (*Stylesheet, error) {
	parsed, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse css: %w", err)
	}
	sheet := &Stylesheet{}
	for _, r := range parsed.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		props := make(map[string]string, len(r.Declarations))
		for _, d := range r.Declarations {
			props[strings.ToLower(d.Property)] = d.Value
		}
		for _, sel := range r.Selectors {
			sel = strings.TrimSpace(sel)
			if !simpleSelector(sel) {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
	}
	return sheet, nil
}

func simpleSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " >+~.#:[")
}

// LoadCSS reads and parses the stylesheet at path.
func LoadCSS(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCSS(string(data))
}

// DefaultStylesheet returns the stylesheet compiled into the binary.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseCSS(defaultCSS)
	if err != nil {
		panic(err)
	}
	return sheet
}

// Props returns the merged properties for a node (class and id matched; last wins).
func (s *Stylesheet) Props(n *Node) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		sel := rule.Selector
		matches := false
		switch sel[0] {
		case '.':
			matches = n.Class == sel[1:]
		case '#':
			matches = n.ID == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Resolve returns the computed style of n.
func (s *Stylesheet) Resolve(n *Node) ComputedStyle {
	return ResolveProps(s.Props(n))
}
