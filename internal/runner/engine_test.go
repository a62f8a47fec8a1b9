package runner_test

import (
	"testing"

	"github.com/codehabit/codehabit-lms/internal/runner"
)

func TestTopicTables(t *testing.T) {
	r := runner.New()

	cases := []struct {
		name       string
		code       string
		lessonType string
		wantOut    string
		wantOK     bool
	}{
		{
			name:       "variables complete",
			code:       "name = \"Alice\"\nage = 25\nprint(name)",
			lessonType: "variables",
			wantOut:    "Alice\n25\nHello, I'm Alice and I'm 25 years old.",
			wantOK:     true,
		},
		{
			name:       "variables missing age",
			code:       "name = \"Alice\"\nprint(name)",
			lessonType: "variables",
			wantOut:    "Error: Missing age variable assignment",
			wantOK:     false,
		},
		{
			name:       "variables missing print",
			code:       "name = \"Alice\"\nage = 25",
			lessonType: "variables",
			wantOut:    "Error: Make sure to print your variables",
			wantOK:     false,
		},
		{
			name:       "loops complete",
			code:       "for i in range(5):\n    print(i)",
			lessonType: "loops",
			wantOut:    "0\n1\n2\n3\n4\n✓ Great! You've successfully created a loop that prints numbers.",
			wantOK:     true,
		},
		{
			name:       "loops missing for",
			code:       "print(0)",
			lessonType: "loops",
			wantOut:    "Error: You need to use a 'for' loop",
			wantOK:     false,
		},
		{
			name:       "functions missing return",
			code:       "def greet(name):\n    print(name)",
			lessonType: "functions",
			wantOut:    "Error: Your function should return a value",
			wantOK:     false,
		},
		{
			name:       "conditionals complete",
			code:       "if age >= 18:\n    pass\nelse:\n    pass",
			lessonType: "conditionals",
			wantOut:    "You're an adult!\nYou're a minor.\n✓ Perfect! Your conditional logic handles both cases correctly.",
			wantOK:     true,
		},
		{
			name:       "lists missing brackets",
			code:       "fruits = list()",
			lessonType: "lists",
			wantOut:    "Error: You need to create a list using square brackets []",
			wantOK:     false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Run(tc.code, tc.lessonType)
			if got.Output != tc.wantOut {
				t.Errorf("output = %q, want %q", got.Output, tc.wantOut)
			}
			if got.Success != tc.wantOK {
				t.Errorf("success = %v, want %v", got.Success, tc.wantOK)
			}
		})
	}
}

// A submission that passes every failure check but not the full require set
// falls through to a bare success. The client shows an empty terminal.
func TestTopicTableFallthrough(t *testing.T) {
	r := runner.New()

	// "for " present but no "range(": the single loops failure check passes.
	got := r.Run("for x in [1, 2]:\n    print(x)", "loops")
	if !got.Success || got.Output != "" {
		t.Errorf("got %+v, want bare success", got)
	}

	// "def " and "return" present but not "def greet(".
	got = r.Run("def hello():\n    return 1", "functions")
	if !got.Success || got.Output != "" {
		t.Errorf("got %+v, want bare success", got)
	}
}

func TestGeneralPath(t *testing.T) {
	r := runner.New()

	got := r.Run(`print("hi there")`, "theory")
	if !got.Success || got.Output != "hi there" {
		t.Errorf("echo: got %+v", got)
	}

	got = r.Run(`print('single')`, "")
	if got.Output != "single" {
		t.Errorf("single quotes: got %q", got.Output)
	}

	got = r.Run("x = 1", "")
	if got.Output != "Code executed successfully. Try adding a print statement to see output!" {
		t.Errorf("no print: got %q", got.Output)
	}

	if got = r.Run("print(", ""); got.Output != "Hello, World!" {
		t.Errorf("unclosed print: got %q", got.Output)
	}
}
