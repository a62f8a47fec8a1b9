// Package runner simulates Python execution for code-exercise lessons.
// There is no interpreter: a submission is matched against an explicit
// per-topic table of required substrings and answered with canned output.
// The rule tables are the grading contract for the built-in lesson content,
// so their match surface (including what a real interpreter would reject)
// is deliberate and covered by tests.
package runner

import (
	"regexp"
	"strings"
)

// Result is what the client renders in the fake terminal panel.
type Result struct {
	Output      string `json:"output"`
	Success     bool   `json:"success"`
	Explanation string `json:"explanation,omitempty"`
}

// Runner evaluates a code submission for a lesson topic.
type Runner interface {
	Run(code, lessonType string) Result
}

// failCheck rejects a submission that lacks one substring.
type failCheck struct {
	missing string
	output  string
}

// ruleSet is the canned behavior for one lesson topic: all of require
// present wins; otherwise the first failCheck whose substring is absent
// loses. A submission that neither wins nor loses falls through to a bare
// success with no output.
type ruleSet struct {
	require     []string
	output      string
	explanation string
	failures    []failCheck
}

func (rs ruleSet) evaluate(code string) Result {
	matched := true
	for _, sub := range rs.require {
		if !strings.Contains(code, sub) {
			matched = false
			break
		}
	}
	if matched {
		return Result{Output: rs.output, Success: true, Explanation: rs.explanation}
	}
	for _, f := range rs.failures {
		if !strings.Contains(code, f.missing) {
			return Result{Output: f.output, Success: false}
		}
	}
	return Result{Success: true}
}

type ruleRunner struct {
	rules map[string]ruleSet
}

// New returns the Runner backing POST /api/execute-python.
func New() Runner {
	return &ruleRunner{rules: map[string]ruleSet{
		"variables": {
			require:     []string{`name = "`, `age = `, `print(`},
			output:      "Alice\n25\nHello, I'm Alice and I'm 25 years old.",
			explanation: "Perfect! You've successfully created variables and used them in a formatted string.",
			failures: []failCheck{
				{missing: `name = "`, output: "Error: Missing name variable assignment"},
				{missing: `age = `, output: "Error: Missing age variable assignment"},
				{missing: `print(`, output: "Error: Make sure to print your variables"},
			},
		},
		"functions": {
			require:     []string{"def greet(", "return"},
			output:      "Hello, World!\nHello, Alice!\n✓ Excellent! Your function works correctly with different inputs.",
			explanation: "Great job creating a reusable function that accepts parameters!",
			failures: []failCheck{
				{missing: "def ", output: "Error: You need to define a function using 'def'"},
				{missing: "return", output: "Error: Your function should return a value"},
			},
		},
		"conditionals": {
			require:     []string{"if ", "else"},
			output:      "You're an adult!\nYou're a minor.\n✓ Perfect! Your conditional logic handles both cases correctly.",
			explanation: "Excellent use of if/else statements to make decisions in your code!",
			failures: []failCheck{
				{missing: "if ", output: "Error: You need to use an 'if' statement"},
				{missing: "else", output: "Error: Don't forget the 'else' case"},
			},
		},
		"loops": {
			require:     []string{"for ", "range("},
			output:      "0\n1\n2\n3\n4\n✓ Great! You've successfully created a loop that prints numbers.",
			explanation: "Perfect! You understand how to use for loops with range.",
			failures: []failCheck{
				{missing: "for ", output: "Error: You need to use a 'for' loop"},
			},
		},
		"lists": {
			require:     []string{"[", "]", "append"},
			output:      "['apple', 'banana', 'orange', 'grape']\n✓ Excellent! You've created and modified a list.",
			explanation: "Great work with list operations!",
			failures: []failCheck{
				{missing: "[", output: "Error: You need to create a list using square brackets []"},
			},
		},
	}}
}

var printArg = regexp.MustCompile(`print\((.*?)\)`)

func (r *ruleRunner) Run(code, lessonType string) Result {
	if rs, ok := r.rules[lessonType]; ok {
		return rs.evaluate(code)
	}
	// General path: echo the first print() argument with quotes stripped.
	if strings.Contains(code, "print(") {
		if m := printArg.FindStringSubmatch(code); m != nil {
			return Result{Output: strings.NewReplacer(`'`, "", `"`, "").Replace(m[1]), Success: true}
		}
		return Result{Output: "Hello, World!", Success: true}
	}
	return Result{Output: "Code executed successfully. Try adding a print statement to see output!", Success: true}
}
