package migrate

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	content := `// Uniqueness constraints for the paper graph.
CREATE CONSTRAINT paper_title_unique IF NOT EXISTS
FOR (p:Paper) REQUIRE p.title IS UNIQUE;

// Author names are keys too.
CREATE CONSTRAINT author_name_unique IF NOT EXISTS
FOR (a:Author) REQUIRE a.name IS UNIQUE;
`
	got := SplitStatements(content)
	want := []string{
		"CREATE CONSTRAINT paper_title_unique IF NOT EXISTS FOR (p:Paper) REQUIRE p.title IS UNIQUE",
		"CREATE CONSTRAINT author_name_unique IF NOT EXISTS FOR (a:Author) REQUIRE a.name IS UNIQUE",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitStatements = %#v, want %#v", got, want)
	}
}

func TestSplitStatementsEmptyAndComments(t *testing.T) {
	if got := SplitStatements(""); len(got) != 0 {
		t.Fatalf("empty content should yield no statements, got %v", got)
	}
	if got := SplitStatements("// only a comment\n\n;;\n"); len(got) != 0 {
		t.Fatalf("comment-only content should yield no statements, got %v", got)
	}
}
