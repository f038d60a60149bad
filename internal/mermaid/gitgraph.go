package mermaid

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/token"
)

const gitMainBranch = "main"

var gitCommitTypes = map[string]bool{"NORMAL": true, "REVERSE": true, "HIGHLIGHT": true}

// gitGrammar проверяет синтаксис gitGraph и моделирует ветки,
// чтобы отлавливать merge/checkout несуществующих веток
type gitGrammar struct {
	header *regexp.Regexp
	attr   *regexp.Regexp
	lines  map[string]*regexp.Regexp
}

func newGitGrammar() (*gitGrammar, error) {
	patterns := map[string]string{
		"branch":   `^branch\s+("[^"]+"|\S+)(\s+order\s*:\s*\d+)?$`,
		"checkout": `^(checkout|switch)\s+("[^"]+"|\S+)$`,
		"merge":    `^merge\s+("[^"]+"|\S+)(\s+.*)?$`,
		"acc":      accPattern,
		"title":    titlePattern,
	}
	g := &gitGrammar{lines: make(map[string]*regexp.Regexp, len(patterns))}
	var err error
	if g.header, err = regexp.Compile(`^gitGraph(\s+(LR|TB|BT))?\s*:?\s*;?$`); err != nil {
		return nil, err
	}
	if g.attr, err = regexp.Compile(`(id|tag|msg|type|parent)\s*:\s*("[^"]*"|[A-Za-z0-9_\-]+)`); err != nil {
		return nil, err
	}
	for name, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		g.lines[name] = re
	}
	return g, nil
}

// gitState - модель репозитория: голова каждой ветки и ветка каждого коммита
type gitState struct {
	current  string
	heads    map[string]string
	branchOf map[string]string
	seq      int
}

func newGitState() *gitState {
	return &gitState{
		current:  gitMainBranch,
		heads:    map[string]string{gitMainBranch: ""},
		branchOf: make(map[string]string),
	}
}

func (s *gitState) addCommit(id string) {
	if id == "" {
		s.seq++
		id = fmt.Sprintf("%d-auto", s.seq)
	}
	s.heads[s.current] = id
	s.branchOf[id] = s.current
}

func (g *gitGrammar) parse(d *document) error {
	head, next := d.header()
	if !g.header.MatchString(head.text) {
		return d.errorAt(head.end, diag.SynBadHeader, classifyLine(head.text), token.Newline)
	}
	st := newGitState()
	for l := range d.lines(next) {
		if err := g.statement(d, st, l); err != nil {
			return err
		}
	}
	return nil
}

func (g *gitGrammar) statement(d *document, st *gitState, l line) error {
	text := strings.TrimSuffix(l.text, ";")
	word, rest := splitWord(text)
	switch word {
	case "commit":
		attrs, err := g.attrs(d, l, rest, "id", "tag", "msg", "type")
		if err != nil {
			return err
		}
		st.addCommit(attrs["id"])
		return nil
	case "branch":
		m := g.lines["branch"].FindStringSubmatch(text)
		if m == nil {
			return g.unexpected(d, l, rest)
		}
		name := unquote(m[1])
		if _, ok := st.heads[name]; ok {
			return d.semanticAt(l.off, diag.SemBranchExists, fmt.Sprintf(
				"Trying to create an existing branch. (Help: Either use a new name if you want create a new branch or try using \"git checkout %s\")", name))
		}
		st.heads[name] = st.heads[st.current]
		st.current = name
		return nil
	case "checkout", "switch":
		m := g.lines["checkout"].FindStringSubmatch(text)
		if m == nil {
			return g.unexpected(d, l, rest)
		}
		name := unquote(m[2])
		if _, ok := st.heads[name]; !ok {
			return d.semanticAt(l.off, diag.SemBranchMissing, fmt.Sprintf(
				"Trying to checkout branch which is not yet created. (Help try using \"branch %s\")", name))
		}
		st.current = name
		return nil
	case "merge":
		return g.merge(d, st, l, text)
	case "cherry-pick":
		return g.cherryPick(d, st, l, rest)
	}
	if g.lines["acc"].MatchString(text) || g.lines["title"].MatchString(text) {
		return nil
	}
	got := classifyLine(text)
	if got == token.Invalid {
		return d.lexicalAt(l.off)
	}
	return d.errorAt(l.off, diag.SynUnexpectedStatement, got, token.Ident, token.Newline)
}

func (g *gitGrammar) merge(d *document, st *gitState, l line, text string) error {
	m := g.lines["merge"].FindStringSubmatch(text)
	if m == nil {
		return g.unexpected(d, l, "")
	}
	other := unquote(m[1])
	attrs, err := g.attrs(d, l, strings.TrimSpace(m[2]), "id", "tag", "type")
	if err != nil {
		return err
	}
	switch otherHead, exists := st.heads[other]; {
	case other == st.current:
		return d.semanticAt(l.off, diag.SemMergeSelf, `Incorrect usage of "merge". Cannot merge a branch to itself`)
	case st.heads[st.current] == "":
		return d.semanticAt(l.off, diag.SemEmptyBranch, fmt.Sprintf(
			`Incorrect usage of "merge". Current branch (%s)has no commits`, st.current))
	case !exists:
		return d.semanticAt(l.off, diag.SemBranchMissing, fmt.Sprintf(
			`Incorrect usage of "merge". Branch to be merged (%s) does not exist`, other))
	case otherHead == "":
		return d.semanticAt(l.off, diag.SemEmptyBranch, fmt.Sprintf(
			`Incorrect usage of "merge". Branch to be merged (%s) has no commits`, other))
	case otherHead == st.heads[st.current]:
		return d.semanticAt(l.off, diag.SemSameHead, `Incorrect usage of "merge". Both branches have same head`)
	}
	if id := attrs["id"]; id != "" {
		if _, dup := st.branchOf[id]; dup {
			return d.semanticAt(l.off, diag.SemDuplicateCommit, fmt.Sprintf(
				`Incorrect usage of "merge". Commit with id:%s already exists, use different custom Id`, id))
		}
	}
	st.addCommit(attrs["id"])
	return nil
}

func (g *gitGrammar) cherryPick(d *document, st *gitState, l line, rest string) error {
	attrs, err := g.attrs(d, l, rest, "id", "tag", "parent")
	if err != nil {
		return err
	}
	from, ok := st.branchOf[attrs["id"]]
	switch {
	case attrs["id"] == "" || !ok:
		return d.semanticAt(l.off, diag.SemBadCherryPick,
			`Incorrect usage of "cherryPick". Source commit id should exist and provided`)
	case from == st.current:
		return d.semanticAt(l.off, diag.SemBadCherryPick,
			`Incorrect usage of "cherryPick". Source commit is already on current branch`)
	case st.heads[st.current] == "":
		return d.semanticAt(l.off, diag.SemEmptyBranch, fmt.Sprintf(
			`Incorrect usage of "cherry-pick". Current branch (%s)has no commits`, st.current))
	}
	st.addCommit("")
	return nil
}

// attrs разбирает список "key: value" и проверяет, что ничего лишнего не осталось
func (g *gitGrammar) attrs(d *document, l line, text string, allowed ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, m := range g.attr.FindAllStringSubmatch(text, -1) {
		key, value := m[1], unquote(m[2])
		if !slices.Contains(allowed, key) {
			return nil, g.unexpected(d, l, m[0])
		}
		if key == "type" && !gitCommitTypes[value] {
			return nil, g.unexpected(d, l, m[0])
		}
		out[key] = value
	}
	if leftover := strings.TrimSpace(g.attr.ReplaceAllString(text, "")); leftover != "" {
		return nil, g.unexpected(d, l, leftover)
	}
	return out, nil
}

// unexpected reports the fragment at its position within the line.
func (g *gitGrammar) unexpected(d *document, l line, fragment string) error {
	off := l.off
	if i := strings.Index(l.text, fragment); fragment != "" && i >= 0 {
		off += offsetOf(i)
	}
	got := classifyLine(fragment)
	if got == token.Invalid {
		return d.lexicalAt(off)
	}
	return d.errorAt(off, diag.SynUnexpectedToken, got, token.Ident, token.Str, token.Newline)
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
