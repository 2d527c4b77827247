package core

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tosin2013/prompt-manager/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed templates
var templateFS embed.FS

// PromptTemplate is a named prompt with {placeholder} substitution and
// a declared set of required context keys.
type PromptTemplate struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	RequiredContext []string `yaml:"required_context"`
	Template        string   `yaml:"template"`
}

// placeholderPattern matches {key} placeholders in a template body.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Format substitutes context values into the template. Missing required
// keys fail with a ValidationError listing every missing key.
func (pt *PromptTemplate) Format(context map[string]string) (string, error) {
	var missing []string
	for _, key := range pt.RequiredContext {
		if _, ok := context[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", &models.ValidationError{
			Field:  "context",
			Reason: fmt.Sprintf("missing required context variables: %s", strings.Join(missing, ", ")),
		}
	}

	return placeholderPattern.ReplaceAllStringFunc(pt.Template, func(match string) string {
		key := match[1 : len(match)-1]
		if val, ok := context[key]; ok {
			return val
		}
		return match
	}), nil
}

// TemplateRegistry resolves prompt templates by name.
type TemplateRegistry interface {
	Get(name string) (*PromptTemplate, error)
	List() []PromptTemplate
}

// templateRegistry loads embedded defaults and overlays any
// prompt_templates/*.yaml files found in the project directory.
type templateRegistry struct {
	templates map[string]PromptTemplate
}

// NewTemplateRegistry builds a registry from the embedded default
// templates plus project-local overrides under
// <basePath>/prompt_templates. Project templates with the same name
// override the defaults. Malformed project files are skipped.
func NewTemplateRegistry(basePath string) (TemplateRegistry, error) {
	reg := &templateRegistry{templates: make(map[string]PromptTemplate)}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}
	for _, entry := range entries {
		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded template %s: %w", entry.Name(), err)
		}
		var pt PromptTemplate
		if err := yaml.Unmarshal(data, &pt); err != nil {
			return nil, fmt.Errorf("parsing embedded template %s: %w", entry.Name(), err)
		}
		reg.templates[pt.Name] = pt
	}

	customDir := filepath.Join(basePath, "prompt_templates")
	customs, err := os.ReadDir(customDir)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("reading prompt_templates: %w", err)
	}
	for _, entry := range customs {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(customDir, entry.Name()))
		if err != nil {
			continue
		}
		var pt PromptTemplate
		if err := yaml.Unmarshal(data, &pt); err != nil {
			continue
		}
		if pt.Name == "" || pt.Template == "" {
			continue
		}
		reg.templates[pt.Name] = pt
	}

	return reg, nil
}

func (r *templateRegistry) Get(name string) (*PromptTemplate, error) {
	pt, ok := r.templates[name]
	if !ok {
		return nil, &models.NotFoundError{Kind: "template", Name: name}
	}
	return &pt, nil
}

func (r *templateRegistry) List() []PromptTemplate {
	out := make([]PromptTemplate, 0, len(r.templates))
	for _, pt := range r.templates {
		out = append(out, pt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
