package mermaid

import "testing"

func TestLineGrammarsValid(t *testing.T) {
	runParseCases(t, []parseCase{
		{name: "pie", input: "pie title Pets adopted by volunteers\n  \"Dogs\" : 386\n  \"Cats\" : 85.5\n  \"Rats\" : 15"},
		{name: "pie showData", input: "pie showData\n  title Key elements\n  \"Calcium\" : 42.96"},
		{name: "state", input: "stateDiagram-v2\n  [*] --> Still\n  Still --> [*]\n  Still --> Moving : push\n  Moving --> Crash\n  Crash --> [*]"},
		{name: "state composite", input: "stateDiagram-v2\n  state First {\n    [*] --> second\n    second --> [*]\n  }\n  state fork_state <<fork>>\n  state \"Long name\" as ln\n  ln : description\n  note right of ln\n    multi line\n  end note\n  note left of First : short"},
		{name: "class", input: "classDiagram\n  Animal <|-- Duck\n  Animal : +int age\n  Animal : +isMammal()\n  class Duck{\n    +String beakColor\n    +swim()\n  }\n  class Shape~T~\n  <<interface>> Shape\n  Customer \"1\" --> \"*\" Ticket : owns\n  note for Duck \"can fly\""},
		{name: "class namespace", input: "classDiagram\n  namespace Shapes {\n    class Triangle\n    class Square\n  }"},
		{name: "er", input: "erDiagram\n  CUSTOMER ||--o{ ORDER : places\n  ORDER ||--|{ LINE-ITEM : contains\n  CUSTOMER }|..|{ DELIVERY-ADDRESS : uses\n  CUSTOMER {\n    string name\n    string custNumber PK\n    int age \"years\"\n  }"},
		{name: "gantt", input: "gantt\n  title A Gantt Diagram\n  dateFormat YYYY-MM-DD\n  axisFormat %Y-%m-%d\n  excludes weekends\n  section Section\n  A task :a1, 2014-01-01, 30d\n  Another task :after a1, 20d"},
		{name: "journey", input: "journey\n  title My working day\n  section Go to work\n    Make tea: 5: Me\n    Go upstairs: 3: Me, Cat"},
	})
}

func TestLineGrammarsInvalid(t *testing.T) {
	runParseCases(t, []parseCase{
		{name: "pie without quotes", input: "pie\n  Dogs : 386", wantErr: "Parse error on line 2"},
		{name: "pie negative", input: "pie\n  \"Dogs\" : -3", wantErr: "got 'STR'"},
		{name: "pie bad header", input: "pie charts\n  \"A\" : 1", wantErr: "Parse error on line 1"},
		{name: "state single arrow", input: "stateDiagram-v2\n  A -> B", wantErr: "Parse error on line 2"},
		{name: "state unclosed composite", input: "stateDiagram-v2\n  state X {\n    a --> b", wantErr: "got 'EOF'"},
		{name: "state stray brace", input: "stateDiagram\n  a --> b\n  }", wantErr: "got 'BLOCK_END'"},
		{name: "state unclosed note", input: "stateDiagram\n  note left of a\n    text", wantErr: "got 'EOF'"},
		{name: "class unclosed body", input: "classDiagram\n  class Duck{\n    +swim()", wantErr: "got 'EOF'"},
		{name: "class bad relation", input: "classDiagram\n  Animal <--> <-- Duck", wantErr: "Parse error on line 2"},
		{name: "er missing label", input: "erDiagram\n  CUSTOMER ||--o{ ORDER", wantErr: "Parse error on line 2"},
		{name: "er bad attribute", input: "erDiagram\n  CUSTOMER {\n    string\n  }", wantErr: "Parse error on line 3"},
		{name: "gantt task without data", input: "gantt\n  section S\n  A task", wantErr: "Parse error on line 3"},
		{name: "journey without score", input: "journey\n  section S\n    Make tea", wantErr: "Parse error on line 3"},
	})
}

func TestLineGrammarsSkipComments(t *testing.T) {
	runParseCases(t, []parseCase{
		{name: "pie comment", input: "pie\n  %% comment\n  \"A\" : 1"},
		{name: "state comment", input: "stateDiagram-v2\n  %% [*] -> broken\n  [*] --> A"},
	})
}

func TestInfoDiagram(t *testing.T) {
	runParseCases(t, []parseCase{
		{name: "info", input: "info"},
		{name: "info showInfo", input: "info showInfo"},
		{name: "info junk", input: "info\n  extra", wantErr: "Parse error on line 2"},
	})
}

func TestStructuralCheck(t *testing.T) {
	runParseCases(t, []parseCase{
		{name: "timeline", input: "timeline\n  title History\n  2004 : Facebook :)"},
		{name: "quadrant", input: "quadrantChart\n  title Reach\n  Campaign A: [0.3, 0.6]"},
		{name: "c4", input: "C4Context\n  Boundary(b0, \"Bank\") {\n    Person(customer, \"Customer\")\n  }"},
		{name: "xychart", input: "xychart-beta\n  x-axis [jan, feb]\n  bar [1, 2]"},
		{name: "unbalanced", input: "quadrantChart\n  Campaign A: [0.3, 0.6", wantErr: "Expecting 'SQE', got 'EOF'"},
		{name: "mismatched", input: "block-beta\n  a(b]", wantErr: "Expecting 'PE', got 'SQE'"},
		{name: "stray closer", input: "kanban\n  todo]", wantErr: "got 'SQE'"},
		{name: "unterminated quote", input: "sankey-beta\n  \"a,b,1", wantErr: "Expecting 'STR'"},
	})
}
