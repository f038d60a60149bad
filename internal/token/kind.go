package token

// Kind represents the category of a diagram token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the diagram text.
	EOF
	Newline
	Semi
	Space
	Comma
	Colon
	Amp
	Pipe
	Plus
	Minus
	Num

	// Общие для flowchart
	NodeString     // идентификатор вершины
	Str            // "quoted"
	Text           // свободный текст внутри формы
	Link           // -->, ---, ==>, -.->, ~~~
	StartLink      // "--" / "==" / "-." перед текстом ребра
	StyleSeparator // :::
	Dir
	PS            // (
	PE            // )
	SQS           // [
	SQE           // ]
	DiamondStart  // {
	DiamondStop   // }
	TagEnd        // > (асимметричная форма)
	StadiumStart  // ([
	StadiumEnd    // ])
	SubroutineStart
	SubroutineEnd
	CylinderStart
	CylinderEnd
	DoubleCircleStart
	DoubleCircleEnd
	EllipseStart // (-
	EllipseEnd   // -)
	TrapStart    // [/
	TrapEnd      // /]
	InvTrapStart // [\
	InvTrapEnd   // \]
	VertexPropsStart

	// Ключевые слова flowchart
	KwGraph
	KwSubgraph
	KwEnd
	KwDirection
	KwStyle
	KwLinkStyle
	KwClassDef
	KwClass
	KwClick
	KwAccTitle
	KwAccDescr

	// sequenceDiagram
	Actor
	Txt
	SolidOpenArrow
	DottedOpenArrow
	SolidArrow
	DottedArrow
	SolidCross
	DottedCross
	SolidPoint
	DottedPoint
	BidirectionalSolidArrow
	BidirectionalDottedArrow
	KwParticipant
	KwParticipantActor
	KwAs
	KwNote
	KwLeftOf
	KwRightOf
	KwOver
	KwLoop
	KwAlt
	KwElse
	KwOpt
	KwPar
	KwAnd
	KwRect
	KwCritical
	KwOption
	KwBreak
	KwBox
	KwActivate
	KwDeactivate
	KwAutonumber
	KwTitle
	KwCreate
	KwDestroy

	// Прочие диаграммы
	Ident
	Arrow
	Cardinality
	BlockStart
	BlockEnd
)

var kindNames = [...]string{
	Invalid:                  "INVALID",
	EOF:                      "EOF",
	Newline:                  "NEWLINE",
	Semi:                     "SEMI",
	Space:                    "SPACE",
	Comma:                    "COMMA",
	Colon:                    "COLON",
	Amp:                      "AMP",
	Pipe:                     "PIPE",
	Plus:                     "+",
	Minus:                    "-",
	Num:                      "NUM",
	NodeString:               "NODE_STRING",
	Str:                      "STR",
	Text:                     "TEXT",
	Link:                     "LINK",
	StartLink:                "START_LINK",
	StyleSeparator:           "STYLE_SEPARATOR",
	Dir:                      "DIR",
	PS:                       "PS",
	PE:                       "PE",
	SQS:                      "SQS",
	SQE:                      "SQE",
	DiamondStart:             "DIAMOND_START",
	DiamondStop:              "DIAMOND_STOP",
	TagEnd:                   "TAGEND",
	StadiumStart:             "STADIUMSTART",
	StadiumEnd:               "STADIUMEND",
	SubroutineStart:          "SUBROUTINESTART",
	SubroutineEnd:            "SUBROUTINEEND",
	CylinderStart:            "CYLINDERSTART",
	CylinderEnd:              "CYLINDEREND",
	DoubleCircleStart:        "DOUBLECIRCLESTART",
	DoubleCircleEnd:          "DOUBLECIRCLEEND",
	EllipseStart:             "(-",
	EllipseEnd:               "-)",
	TrapStart:                "TRAPSTART",
	TrapEnd:                  "TRAPEND",
	InvTrapStart:             "INVTRAPSTART",
	InvTrapEnd:               "INVTRAPEND",
	VertexPropsStart:         "NODE_STRING_SHAPE_DATA",
	KwGraph:                  "GRAPH",
	KwSubgraph:               "subgraph",
	KwEnd:                    "end",
	KwDirection:              "direction",
	KwStyle:                  "STYLE",
	KwLinkStyle:              "LINKSTYLE",
	KwClassDef:               "CLASSDEF",
	KwClass:                  "CLASS",
	KwClick:                  "CLICK",
	KwAccTitle:               "acc_title",
	KwAccDescr:               "acc_descr",
	Actor:                    "ACTOR",
	Txt:                      "TXT",
	SolidOpenArrow:           "SOLID_OPEN_ARROW",
	DottedOpenArrow:          "DOTTED_OPEN_ARROW",
	SolidArrow:               "SOLID_ARROW",
	DottedArrow:              "DOTTED_ARROW",
	SolidCross:               "SOLID_CROSS",
	DottedCross:              "DOTTED_CROSS",
	SolidPoint:               "SOLID_POINT",
	DottedPoint:              "DOTTED_POINT",
	BidirectionalSolidArrow:  "BIDIRECTIONAL_SOLID_ARROW",
	BidirectionalDottedArrow: "BIDIRECTIONAL_DOTTED_ARROW",
	KwParticipant:            "participant",
	KwParticipantActor:       "participant_actor",
	KwAs:                     "AS",
	KwNote:                   "note",
	KwLeftOf:                 "left_of",
	KwRightOf:                "right_of",
	KwOver:                   "over",
	KwLoop:                   "loop",
	KwAlt:                    "alt",
	KwElse:                   "else",
	KwOpt:                    "opt",
	KwPar:                    "par",
	KwAnd:                    "and",
	KwRect:                   "rect",
	KwCritical:               "critical",
	KwOption:                 "option",
	KwBreak:                  "break",
	KwBox:                    "box",
	KwActivate:               "activate",
	KwDeactivate:             "deactivate",
	KwAutonumber:             "autonumber",
	KwTitle:                  "title",
	KwCreate:                 "create",
	KwDestroy:                "destroy",
	Ident:                    "ID",
	Arrow:                    "ARROW",
	Cardinality:              "CARDINALITY",
	BlockStart:               "BLOCK_START",
	BlockEnd:                 "BLOCK_END",
}

// String returns the terminal name used in parse error messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "INVALID"
}
