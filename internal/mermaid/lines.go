package mermaid

import (
	"fmt"
	"regexp"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/token"
)

// rule - одна допустимая форма строки в построчной грамматике
type rule struct {
	re *regexp.Regexp
	// open pushes a nested mode, e.g. the member list of a class.
	open string
	// close pops the current mode.
	close bool
}

// lineGrammar checks a diagram line by line. Modes model nested bodies:
// "" is the top level, other modes are entered by rules with open set.
type lineGrammar struct {
	header   *regexp.Regexp
	modes    map[string][]rule
	expected []token.Kind
}

// lineGrammars holds the compiled line-level diagram grammars.
type lineGrammars struct {
	pie, state, class, er, gantt, journey, gitGraph parseFunc
}

// ruleSpec is the uncompiled form of rule.
type ruleSpec struct {
	pattern string
	open    string
	close   bool
}

const (
	idPattern    = `[\p{L}\p{N}_$.\-]+`
	accPattern   = `^(accTitle|accDescr)\s*:.*$`
	titlePattern = `^title(\s+.*)?$`
	dirPattern   = `^direction\s+(TB|BT|LR|RL)$`
	closePattern = `^\}\s*;?$`
)

func compileLineGrammars() (*lineGrammars, error) {
	stateID := `(\[\*\]|` + idPattern + `(:::[\w\-]+)?)`
	stateCommon := []ruleSpec{
		{pattern: dirPattern},
		{pattern: accPattern},
		{pattern: titlePattern},
		{pattern: `^(classDef|class|style)\s+\S.*$`},
		{pattern: `^hide\s+empty\s+description$`},
		{pattern: `^scale\s+\d+(\s+.*)?$`},
		{pattern: `^--$`},
		{pattern: `^note\s+(left|right)\s+of\s+` + idPattern + `\s*:.*$`},
		{pattern: `^note\s+(left|right)\s+of\s+` + idPattern + `$`, open: "note"},
		{pattern: `^state\s+("[^"]*"\s+as\s+)?` + idPattern + `(\s+as\s+"[^"]*")?\s*(<<(fork|join|choice)>>)?\s*\{$`, open: "composite"},
		{pattern: `^state\s+("[^"]*"\s+as\s+)?` + idPattern + `(\s+as\s+"[^"]*")?\s*(<<(fork|join|choice)>>)?(\s*:.*)?$`},
		{pattern: `^` + stateID + `\s*-->\s*` + stateID + `\s*(:.*)?$`},
		{pattern: `^` + stateID + `\s*:.*$`},
		{pattern: `^` + stateID + `$`},
		{pattern: closePattern, close: true},
	}
	noteBody := []ruleSpec{
		{pattern: `^end\s+note$`, close: true},
		{pattern: `.*`},
	}
	state, err := compileGrammar(`^stateDiagram(-v2)?\s*;?$`, map[string][]ruleSpec{
		"":          stateCommon,
		"composite": stateCommon,
		"note":      noteBody,
	}, token.Ident, token.Arrow, token.BlockEnd, token.Newline)
	if err != nil {
		return nil, fmt.Errorf("state grammar: %w", err)
	}

	classID := idPattern + `(~[^~]+~)?`
	relation := `(<\||\*|o|<|\(\))?(--|\.\.)(\|>|\*|o|>|\(\))?`
	classCommon := []ruleSpec{
		{pattern: dirPattern},
		{pattern: accPattern},
		{pattern: titlePattern},
		{pattern: `^(classDef|cssClass|style|click|link|callback)\s+\S.*$`},
		{pattern: `^note\s+(for\s+` + classID + `\s+)?"[^"]*"$`},
		{pattern: `^<<[^>]+>>(\s*` + classID + `)?$`},
		{pattern: `^class\s+` + classID + `(\s*\["[^"]*"\])?(:::[\w\-]+)?\s*\{$`, open: "members"},
		{pattern: `^class\s+` + classID + `(\s*\["[^"]*"\])?(:::[\w\-]+)?$`},
		{pattern: `^namespace\s+\S+\s*\{$`, open: "namespace"},
		{pattern: `^` + classID + `(\s+"[^"]*")?\s*` + relation + `\s*("[^"]*"\s*)?` + classID + `\s*(:.*)?$`},
		{pattern: `^` + classID + `\s*:\s*\S.*$`},
		{pattern: `^` + classID + `(:::[\w\-]+)?$`},
		{pattern: closePattern, close: true},
	}
	class, err := compileGrammar(`^classDiagram(-v2)?\s*;?$`, map[string][]ruleSpec{
		"":          classCommon,
		"namespace": classCommon,
		"members": {
			{pattern: closePattern, close: true},
			{pattern: `.*`},
		},
	}, token.Ident, token.Arrow, token.BlockEnd, token.Newline)
	if err != nil {
		return nil, fmt.Errorf("class grammar: %w", err)
	}

	entity := `([\p{L}_][\p{L}\p{N}_\-]*|"[^"]+")`
	cardinality := `(\|o|\|\||\}o|\}\|)(--|\.\.)(o\||\|\||o\{|\|\{)`
	er, err := compileGrammar(`^erDiagram\s*;?$`, map[string][]ruleSpec{
		"": {
			{pattern: dirPattern},
			{pattern: accPattern},
			{pattern: titlePattern},
			{pattern: `^(classDef|class|style)\s+\S.*$`},
			{pattern: `^` + entity + `\s*` + cardinality + `\s*` + entity + `\s*:\s*\S.*$`},
			{pattern: `^` + entity + `(\s*\[[^\]]*\])?\s*\{$`, open: "entity"},
			{pattern: `^` + entity + `(\s*\[[^\]]*\])?$`},
		},
		"entity": {
			{pattern: closePattern, close: true},
			{pattern: `^[\w\-\[\]()]+\s+[\w\-*\[\]]+(\s+(PK|FK|UK)(\s*,\s*(PK|FK|UK))*)?(\s+"[^"]*")?$`},
		},
	}, token.Ident, token.Cardinality, token.BlockStart, token.Newline)
	if err != nil {
		return nil, fmt.Errorf("er grammar: %w", err)
	}

	gantt, err := compileGrammar(`^gantt\s*;?$`, map[string][]ruleSpec{
		"": {
			{pattern: `^(dateFormat|axisFormat|tickInterval|excludes|includes|todayMarker)\s+\S.*$`},
			{pattern: `^(weekday|weekend)\s+\w+$`},
			{pattern: `^(inclusiveEndDates|topAxis)$`},
			{pattern: `^displayMode\s*:?\s*\w+$`},
			{pattern: titlePattern},
			{pattern: accPattern},
			{pattern: `^section\s+\S.*$`},
			{pattern: `^click\s+\S.*$`},
			{pattern: `^[^:]*[^:\s][^:]*:\s*\S.*$`},
		},
	}, token.Txt, token.Colon, token.Newline)
	if err != nil {
		return nil, fmt.Errorf("gantt grammar: %w", err)
	}

	journey, err := compileGrammar(`^journey\s*;?$`, map[string][]ruleSpec{
		"": {
			{pattern: titlePattern},
			{pattern: accPattern},
			{pattern: `^section\s+\S.*$`},
			{pattern: `^[^:]*[^:\s][^:]*:\s*\S.*$`},
		},
	}, token.Txt, token.Colon, token.Newline)
	if err != nil {
		return nil, fmt.Errorf("journey grammar: %w", err)
	}

	pie, err := compileGrammar(`^pie(\s+showData)?(\s+title(\s+.*)?)?\s*;?$`, map[string][]ruleSpec{
		"": {
			{pattern: titlePattern},
			{pattern: accPattern},
			{pattern: `^showData$`},
			{pattern: `^"[^"]*"\s*:\s*\d+(\.\d+)?$`},
		},
	}, token.Str, token.Colon, token.Num, token.Newline)
	if err != nil {
		return nil, fmt.Errorf("pie grammar: %w", err)
	}

	git, err := newGitGrammar()
	if err != nil {
		return nil, fmt.Errorf("gitGraph grammar: %w", err)
	}

	return &lineGrammars{
		pie:      pie.parse,
		state:    state.parse,
		class:    class.parse,
		er:       er.parse,
		gantt:    gantt.parse,
		journey:  journey.parse,
		gitGraph: git.parse,
	}, nil
}

func compileGrammar(header string, modes map[string][]ruleSpec, expected ...token.Kind) (*lineGrammar, error) {
	h, err := regexp.Compile(header)
	if err != nil {
		return nil, fmt.Errorf("header %q: %w", header, err)
	}
	g := &lineGrammar{header: h, modes: make(map[string][]rule, len(modes)), expected: expected}
	for mode, specs := range modes {
		rules := make([]rule, 0, len(specs))
		for _, spec := range specs {
			re, err := regexp.Compile(spec.pattern)
			if err != nil {
				return nil, fmt.Errorf("mode %q pattern %q: %w", mode, spec.pattern, err)
			}
			rules = append(rules, rule{re: re, open: spec.open, close: spec.close})
		}
		g.modes[mode] = rules
	}
	return g, nil
}

func (g *lineGrammar) parse(d *document) error {
	head, next := d.header()
	if !g.header.MatchString(head.text) {
		return d.errorAt(head.end, diag.SynBadHeader, classifyLine(head.text), token.Newline)
	}
	var stack []string
	for l := range d.lines(next) {
		mode := ""
		if len(stack) > 0 {
			mode = stack[len(stack)-1]
		}
		r, ok := g.match(mode, l.text)
		if !ok {
			got := classifyLine(l.text)
			if got == token.Invalid {
				return d.lexicalAt(l.off)
			}
			return d.errorAt(l.off, diag.SynUnexpectedStatement, got, g.expected...)
		}
		switch {
		case r.close:
			if len(stack) == 0 {
				return d.errorAt(l.off, diag.SynUnexpectedEnd, token.BlockEnd, g.expected...)
			}
			stack = stack[:len(stack)-1]
		case r.open != "":
			stack = append(stack, r.open)
		}
	}
	if len(stack) > 0 {
		return d.eofError(diag.SynUnclosedBlock, token.BlockEnd)
	}
	return nil
}

func (g *lineGrammar) match(mode, text string) (rule, bool) {
	for _, r := range g.modes[mode] {
		if r.re.MatchString(text) {
			return r, true
		}
	}
	return rule{}, false
}

// classifyLine угадывает вид первого токена строки для сообщения об ошибке
func classifyLine(text string) token.Kind {
	if text == "" {
		return token.Newline
	}
	switch b := text[0]; {
	case isDigit(b):
		return token.Num
	case isASCIILetter(b), b == '_', b >= 0x80:
		return token.Ident
	case b == '"':
		return token.Str
	case b == '{':
		return token.BlockStart
	case b == '}':
		return token.BlockEnd
	case b == ':':
		return token.Colon
	case b == '-':
		return token.Minus
	case b == '[':
		return token.SQS
	case b == '<', b == '|':
		return token.Arrow
	}
	return token.Invalid
}
