package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnterminatedString Code = 1001
	LexUnexpectedChar     Code = 1002

	// Грамматические
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnknownDiagram       Code = 2002
	SynBadHeader            Code = 2003
	SynUnclosedBlock        Code = 2004
	SynUnexpectedEnd        Code = 2005
	SynUnclosedDelimiter    Code = 2006
	SynMissingMessage       Code = 2007
	SynBadNumber            Code = 2008
	SynUnexpectedStatement  Code = 2009
	SynMisplacedContinuator Code = 2010

	// Семантические
	SemInfo            Code = 3000
	SemBranchExists    Code = 3001
	SemBranchMissing   Code = 3002
	SemMergeSelf       Code = 3003
	SemDuplicateCommit Code = 3004
	SemEmptyBranch     Code = 3005
	SemSameHead        Code = 3006
	SemBadCherryPick   Code = 3007

	// Окружение
	EnvInfo           Code = 4000
	EnvNotInitialized Code = 4001
	EnvTextTooLarge   Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnterminatedString:   "Unterminated string",
	LexUnexpectedChar:       "Unexpected character",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnknownDiagram:       "No diagram type detected",
	SynBadHeader:            "Malformed diagram header",
	SynUnclosedBlock:        "Block is never closed",
	SynUnexpectedEnd:        "'end' without an open block",
	SynUnclosedDelimiter:    "Unclosed delimiter",
	SynMissingMessage:       "Missing message text",
	SynBadNumber:            "Malformed number",
	SynUnexpectedStatement:  "Statement not recognised",
	SynMisplacedContinuator: "Block continuation outside its block",
	SemInfo:                 "Semantic information",
	SemBranchExists:         "Branch already exists",
	SemBranchMissing:        "Branch does not exist",
	SemMergeSelf:            "Branch merged into itself",
	SemDuplicateCommit:      "Commit id reused",
	SemEmptyBranch:          "Branch has no commits",
	SemSameHead:             "Branches share the same head",
	SemBadCherryPick:        "Invalid cherry-pick source",
	EnvInfo:                 "Environment information",
	EnvNotInitialized:       "Parser environment not initialized",
	EnvTextTooLarge:         "Maximum text size exceeded",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("ENV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
