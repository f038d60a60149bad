package diagfmt

import (
	"bytes"
	"testing"
)

func TestJSONSingle(t *testing.T) {
	tests := []struct {
		name string
		in   OutcomeJSON
		want string
	}{
		{
			name: "valid omits error",
			in:   OutcomeJSON{Valid: true},
			want: "{\n  \"valid\": true\n}\n",
		},
		{
			name: "invalid keeps arrows",
			in:   OutcomeJSON{Error: "got 'A-->B'"},
			want: "{\n  \"valid\": false,\n  \"error\": \"got 'A-->B'\"\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, tt.in); err != nil {
				t.Fatalf("JSON: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONBatch(t *testing.T) {
	var buf bytes.Buffer
	err := JSON(&buf, BatchJSON{
		TotalValid:   1,
		TotalInvalid: 1,
		Results: []EntryJSON{
			{File: "a.md:block1", Valid: true},
			{File: "b.mmd", Error: "bad\nthings"},
		},
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	want := `{
  "totalValid": 1,
  "totalInvalid": 1,
  "results": [
    {
      "file": "a.md:block1",
      "valid": true
    },
    {
      "file": "b.mmd",
      "valid": false,
      "error": "bad\nthings"
    }
  ]
}
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, BatchJSON{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	want := "{\n  \"totalValid\": 0,\n  \"totalInvalid\": 0,\n  \"results\": []\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
