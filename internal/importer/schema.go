package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a project import file. A file
// describes one project, its direct sub-projects and the tasks of both.
type ImportSchema struct {
	Project     ProjectImport   `json:"project" yaml:"project"`
	SubProjects []ProjectImport `json:"sub_projects,omitempty" yaml:"sub_projects,omitempty"`
	Tasks       []TaskImport    `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
// Ref names a sub-project so tasks can point at it; the top-level project
// needs no ref.
type ProjectImport struct {
	Ref          string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate    string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Status       string `json:"status,omitempty" yaml:"status,omitempty"`
	StrategyPlan string `json:"strategy_plan,omitempty" yaml:"strategy_plan,omitempty"`
	MarkdownPlan string `json:"markdown_plan,omitempty" yaml:"markdown_plan,omitempty"`
}

// TaskImport defines a task in the import file. An empty ProjectRef puts the
// task on the top-level project.
type TaskImport struct {
	ProjectRef  string `json:"project_ref,omitempty" yaml:"project_ref,omitempty"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
}

// LoadImportSchema reads and parses a project import file. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseImportSchema(data, FormatYAML)
	default:
		return ParseImportSchema(data, FormatJSON)
	}
}

// Format selects the import file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseImportSchema decodes an import document.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	var err error
	if format == FormatYAML {
		err = yaml.Unmarshal(data, &schema)
	} else {
		err = json.Unmarshal(data, &schema)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
