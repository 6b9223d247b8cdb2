/*
 * smarts.go, part of gosam.
 *
 * Copyright 2026 The gosam authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package forcefield

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// pattern is a parsed SMARTS expression of the subset we support: bracket
// atoms with an element symbol and an optional ;Xn connectivity, bare
// element symbols, the * wildcard and branches. Ring closures, bond orders
// and logical operators other than ; are not supported. The first atom of
// the expression is the one being typed.
type pattern struct {
	root *patAtom
	size int
}

type patAtom struct {
	element  string //empty for any
	degree   int    //-1 for any
	children []*patAtom
}

func (p *patAtom) accepts(element string, degree int) bool {
	if p.element != "" && p.element != element {
		return false
	}
	return p.degree < 0 || p.degree == degree
}

type smartsParser struct {
	s    string
	pos  int
	size int
}

func parseSMARTS(s string) (*pattern, error) {
	p := &smartsParser{s: strings.TrimSpace(s)}
	if p.s == "" {
		return nil, fmt.Errorf("empty SMARTS")
	}
	root, err := p.chain()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected %q", p.s[p.pos])
	}
	return &pattern{root: root, size: p.size}, nil
}

func (p *smartsParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("SMARTS %q at %d: %s", p.s, p.pos, fmt.Sprintf(format, args...))
}

// chain parses an atom followed by its branches and the rest of the chain,
// which becomes the atom's last child.
func (p *smartsParser) chain() (*patAtom, error) {
	a, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.s) {
		switch c := p.s[p.pos]; {
		case c == '(':
			p.pos++
			b, err := p.chain()
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.s) || p.s[p.pos] != ')' {
				return nil, p.errorf("unclosed branch")
			}
			p.pos++
			a.children = append(a.children, b)
		case c == ')':
			return a, nil
		case c == '-':
			p.pos++
		default:
			next, err := p.chain()
			if err != nil {
				return nil, err
			}
			a.children = append(a.children, next)
			return a, nil
		}
	}
	return a, nil
}

func (p *smartsParser) atom() (*patAtom, error) {
	if p.pos >= len(p.s) {
		return nil, p.errorf("expected an atom")
	}
	a := &patAtom{degree: -1}
	p.size++
	switch c := p.s[p.pos]; {
	case c == '*':
		p.pos++
		return a, nil
	case c == '[':
		end := strings.IndexByte(p.s[p.pos:], ']')
		if end < 0 {
			return nil, p.errorf("unclosed bracket atom")
		}
		body := p.s[p.pos+1 : p.pos+end]
		p.pos += end + 1
		for _, prim := range strings.Split(body, ";") {
			if err := p.primitive(a, prim); err != nil {
				return nil, err
			}
		}
		return a, nil
	case unicode.IsUpper(rune(c)):
		a.element = p.symbol()
		return a, nil
	}
	return nil, p.errorf("unexpected %q", p.s[p.pos])
}

func (p *smartsParser) symbol() string {
	start := p.pos
	p.pos++
	if p.pos < len(p.s) && unicode.IsLower(rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *smartsParser) primitive(a *patAtom, prim string) error {
	switch {
	case prim == "*":
	case len(prim) > 1 && prim[0] == 'X' && unicode.IsDigit(rune(prim[1])):
		d, err := strconv.Atoi(prim[1:])
		if err != nil {
			return p.errorf("bad connectivity %q", prim)
		}
		a.degree = d
	case len(prim) > 0 && len(prim) <= 2 && unicode.IsUpper(rune(prim[0])) && (len(prim) == 1 || unicode.IsLower(rune(prim[1]))):
		a.element = prim
	default:
		return p.errorf("unsupported primitive %q", prim)
	}
	return nil
}

// matcher finds embeddings of a pattern in a bond graph.
type matcher struct {
	elements []string
	nb       [][]int
	used     []bool
}

func newMatcher(elements []string, nb [][]int) *matcher {
	return &matcher{elements: elements, nb: nb, used: make([]bool, len(elements))}
}

// matches reports whether the pattern matches with its first atom on atom i.
func (m *matcher) matches(p *pattern, i int) bool {
	return m.match(p.root, i, func() bool { return true })
}

// match maps n onto atom i, then the children of n onto distinct unused
// neighbors of i, and calls k on success. The used marks are restored when
// the embedding fails.
func (m *matcher) match(n *patAtom, i int, k func() bool) bool {
	if m.used[i] || !n.accepts(m.elements[i], len(m.nb[i])) {
		return false
	}
	m.used[i] = true
	if m.children(n.children, i, k) {
		m.used[i] = false
		return true
	}
	m.used[i] = false
	return false
}

func (m *matcher) children(cs []*patAtom, i int, k func() bool) bool {
	if len(cs) == 0 {
		return k()
	}
	for _, j := range m.nb[i] {
		if m.match(cs[0], j, func() bool { return m.children(cs[1:], i, k) }) {
			return true
		}
	}
	return false
}
