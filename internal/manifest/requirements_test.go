package manifest

import (
	"errors"
	"testing"
)

func TestParseRequirements(t *testing.T) {
	data := []byte(`# agent dependencies
langchain==0.0.27

openai>=0.27  # pinned loosely
tiktoken
requests~=2.31
`)

	reqs, err := ParseRequirements(data)
	if err != nil {
		t.Fatalf("ParseRequirements: %v", err)
	}

	want := []Requirement{
		{Name: "langchain", Constraint: "==0.0.27"},
		{Name: "openai", Constraint: ">=0.27"},
		{Name: "tiktoken", Constraint: ""},
		{Name: "requests", Constraint: "~=2.31"},
	}

	if len(reqs) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(reqs), len(want), reqs)
	}
	for i := range want {
		if reqs[i] != want[i] {
			t.Errorf("reqs[%d] = %+v, want %+v", i, reqs[i], want[i])
		}
	}
}

func TestParseRequirementsPreservesOrder(t *testing.T) {
	reqs, err := ParseRequirements([]byte("zlib\nalpha\nmiddle\n"))
	if err != nil {
		t.Fatal(err)
	}
	got := []string{reqs[0].Name, reqs[1].Name, reqs[2].Name}
	if got[0] != "zlib" || got[1] != "alpha" || got[2] != "middle" {
		t.Fatalf("order = %v, want declaration order", got)
	}
}

func TestParseRequirementsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "space in name", input: "lang chain==1.0"},
		{name: "only operator", input: "==1.0"},
		{name: "tab in name", input: "foo\tbar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRequirements([]byte(tt.input)); !errors.Is(err, ErrManifest) {
				t.Fatalf("err = %v, want ErrManifest", err)
			}
		})
	}
}

func TestParseRequirementsEmpty(t *testing.T) {
	reqs, err := ParseRequirements([]byte("# nothing but comments\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 0 {
		t.Fatalf("len = %d, want 0", len(reqs))
	}
}

func TestRequirementString(t *testing.T) {
	r := Requirement{Name: "langchain", Constraint: "==0.0.27"}
	if r.String() != "langchain==0.0.27" {
		t.Fatalf("String = %q", r.String())
	}
	if (Requirement{Name: "openai"}).String() != "openai" {
		t.Fatal("bare requirement should render without constraint")
	}
}
