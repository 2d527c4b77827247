package models

// ProjectConfig holds the settings read from config.yaml in the project
// directory.
type ProjectConfig struct {
	ProjectName   string `yaml:"project_name"`
	MemoryDir     string `yaml:"memory_dir"`
	MaxTokens     int    `yaml:"max_tokens"`
	DefaultExport string `yaml:"default_export"`
}
