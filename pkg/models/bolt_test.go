package models

import (
	"strings"
	"testing"
)

func sampleBoltTask() *BoltTask {
	bt := NewBoltTask("Todo App", "A todo list with auth", "bolt.new")
	bt.PromptTemplate = "Build a {framework} app: {description}"
	bt.UIComponents = []string{"TaskList", "LoginForm"}
	bt.APIEndpoints = []APIEndpoint{
		{Method: "GET", Path: "/tasks", Description: "List tasks"},
		{Method: "POST", Path: "/tasks"},
	}
	return bt
}

func TestIsBolt(t *testing.T) {
	bt := sampleBoltTask()
	if !bt.IsBolt() {
		t.Fatal("expected bolt task")
	}

	plain := BoltTask{Task: *NewTask("Plain", "")}
	if plain.IsBolt() {
		t.Fatal("expected plain task")
	}
}

func TestGeneratePrompt_FillsPlaceholders(t *testing.T) {
	bt := sampleBoltTask()
	prompt := bt.GeneratePrompt()

	if !strings.HasPrefix(prompt, "Build a bolt.new app: A todo list with auth") {
		t.Fatalf("placeholders not filled: %q", prompt)
	}
	if strings.Contains(prompt, "{framework}") || strings.Contains(prompt, "{description}") {
		t.Fatalf("unresolved placeholder in %q", prompt)
	}
}

func TestGeneratePrompt_Sections(t *testing.T) {
	bt := sampleBoltTask()
	bt.Dependencies = []string{"Schema Design"}
	prompt := bt.GeneratePrompt()

	for _, want := range []string{
		"Dependencies:\n- Schema Design",
		"UI Components:\n- TaskList\n- LoginForm",
		"API Endpoints:\n- GET /tasks: List tasks\n- POST /tasks",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt:\n%s", want, prompt)
		}
	}
}

func TestGeneratePrompt_OmitsEmptySections(t *testing.T) {
	bt := NewBoltTask("Bare", "minimal", "bolt.new")
	bt.PromptTemplate = "{description}"
	prompt := bt.GeneratePrompt()

	if strings.Contains(prompt, "Dependencies:") || strings.Contains(prompt, "UI Components:") {
		t.Fatalf("unexpected section in %q", prompt)
	}
}

func TestToBoltPrompt(t *testing.T) {
	bt := sampleBoltTask()
	out := bt.ToBoltPrompt()

	if !strings.HasPrefix(out, "# Todo App\n") {
		t.Fatalf("expected title heading, got %q", out)
	}
	if !strings.Contains(out, "Framework: bolt.new") {
		t.Fatal("expected framework line")
	}
	if !strings.Contains(out, "Prompt Template:\nBuild a {framework} app") {
		t.Fatal("expected raw template section")
	}
}
