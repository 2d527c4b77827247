package models

import (
	"fmt"
	"strings"
)

// APIEndpoint describes a single HTTP endpoint a scaffolded app exposes.
type APIEndpoint struct {
	Method      string `yaml:"method" json:"method"`
	Path        string `yaml:"path" json:"path"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// BoltTask is a Task specialization carrying the extra fields needed to
// build web-app scaffolding prompts: target framework, UI components,
// and API endpoints.
type BoltTask struct {
	Task         `yaml:",inline"`
	Framework    string        `yaml:"framework,omitempty" json:"framework,omitempty"`
	UIComponents []string      `yaml:"ui_components,omitempty" json:"ui_components,omitempty"`
	APIEndpoints []APIEndpoint `yaml:"api_endpoints,omitempty" json:"api_endpoints,omitempty"`
}

// IsBolt reports whether the record carries bolt scaffolding fields.
// A record without a framework is a plain task.
func (bt *BoltTask) IsBolt() bool { return bt.Framework != "" }

// NewBoltTask creates a BoltTask for the given framework with pending
// status and default priority.
func NewBoltTask(title, description, framework string) *BoltTask {
	bt := &BoltTask{
		Task:      *NewTask(title, description),
		Framework: framework,
	}
	return bt
}

// GeneratePrompt renders the task's prompt template with the framework
// and description placeholders filled in, followed by dependency, UI
// component, and API endpoint sections when present.
func (bt *BoltTask) GeneratePrompt() string {
	prompt := bt.PromptTemplate
	prompt = strings.ReplaceAll(prompt, "{framework}", bt.Framework)
	prompt = strings.ReplaceAll(prompt, "{description}", bt.Description)

	if len(bt.Dependencies) > 0 {
		prompt += "\n\nDependencies:"
		for _, dep := range bt.Dependencies {
			prompt += fmt.Sprintf("\n- %s", dep)
		}
	}
	if len(bt.UIComponents) > 0 {
		prompt += "\n\nUI Components:"
		for _, comp := range bt.UIComponents {
			prompt += fmt.Sprintf("\n- %s", comp)
		}
	}
	if len(bt.APIEndpoints) > 0 {
		prompt += "\n\nAPI Endpoints:"
		for _, ep := range bt.APIEndpoints {
			prompt += fmt.Sprintf("\n- %s %s", ep.Method, ep.Path)
			if ep.Description != "" {
				prompt += ": " + ep.Description
			}
		}
	}
	return prompt
}

// ToBoltPrompt renders the task as a bolt.new-compatible scaffolding
// prompt in markdown.
func (bt *BoltTask) ToBoltPrompt() string {
	lines := []string{
		fmt.Sprintf("# %s", bt.Title),
		fmt.Sprintf("Description: %s", bt.Description),
		fmt.Sprintf("Framework: %s", bt.Framework),
	}

	if len(bt.Dependencies) > 0 {
		lines = append(lines, "\nDependencies:")
		for _, dep := range bt.Dependencies {
			lines = append(lines, fmt.Sprintf("- %s", dep))
		}
	}
	if len(bt.UIComponents) > 0 {
		lines = append(lines, "\nUI Components:")
		for _, comp := range bt.UIComponents {
			lines = append(lines, fmt.Sprintf("- %s", comp))
		}
	}
	if len(bt.APIEndpoints) > 0 {
		lines = append(lines, "\nAPI Endpoints:")
		for _, ep := range bt.APIEndpoints {
			lines = append(lines, fmt.Sprintf("- %s %s: %s", ep.Method, ep.Path, ep.Description))
		}
	}

	lines = append(lines, fmt.Sprintf("\nPrompt Template:\n%s", bt.PromptTemplate))
	return strings.Join(lines, "\n")
}
