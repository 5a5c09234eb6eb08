package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{Name: "Website"},
		Tasks: []TaskImport{
			{Title: "Write copy"},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	schema := &ImportSchema{
		Project: ProjectImport{
			Name:         "Website",
			StartDate:    "2026-05-01",
			EndDate:      "2026-07-01",
			Status:       "active",
			StrategyPlan: "Launch before summer",
		},
		SubProjects: []ProjectImport{
			{Ref: "blog", Name: "Blog", EndDate: "2026-06-01"},
			{Ref: "shop", Name: "Shop", Status: "DRAFT"},
		},
		Tasks: []TaskImport{
			{Title: "Pick fonts", Priority: "low"},
			{ProjectRef: "blog", Title: "First post", DueDate: "2026-05-20", Priority: "HIGH", Status: "in_progress"},
		},
	}
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_MissingNames(t *testing.T) {
	schema := &ImportSchema{
		SubProjects: []ProjectImport{{Ref: "blog"}},
		Tasks:       []TaskImport{{}},
	}
	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "project.name is required")
	assert.Contains(t, errs[1].Error(), "sub_projects[0].name is required")
	assert.Contains(t, errs[2].Error(), "tasks[0].title is required")
}

func TestValidateImportSchema_BadDates(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.StartDate = "2026-07-01"
	schema.Project.EndDate = "2026-05-01"
	schema.Tasks[0].DueDate = "tomorrow"

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "must not be before start_date")
	assert.Contains(t, errs[1].Error(), "tasks[0].due_date")
}

func TestValidateImportSchema_SameDayEndIsValid(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.StartDate = "2026-07-01"
	schema.Project.EndDate = "2026-07-01"
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_Refs(t *testing.T) {
	schema := validMinimalSchema()
	schema.SubProjects = []ProjectImport{
		{Name: "No ref"},
		{Ref: "blog", Name: "Blog"},
		{Ref: "blog", Name: "Blog again"},
	}
	schema.Tasks = append(schema.Tasks, TaskImport{ProjectRef: "shop", Title: "Orphan"})

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "sub_projects[0].ref is required")
	assert.Contains(t, errs[1].Error(), `duplicate ref "blog"`)
	assert.Contains(t, errs[2].Error(), `unknown sub-project "shop"`)
}

func TestValidateImportSchema_BadEnums(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.Status = "paused"
	schema.Tasks[0].Priority = "urgent"
	schema.Tasks[0].Status = "DONE"

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), `project.status: invalid value "paused"`)
	assert.Contains(t, errs[1].Error(), `tasks[0].priority: invalid value "urgent"`)
	assert.Contains(t, errs[2].Error(), `tasks[0].status: invalid value "DONE"`)
}

func TestLoadImportSchema_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
project:
  name: Website
  end_date: "2026-07-01"
sub_projects:
  - ref: blog
    name: Blog
tasks:
  - title: First post
    project_ref: blog
    priority: HIGH
`), 0o644))

	schema, err := LoadImportSchema(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Website", schema.Project.Name)
	assert.Equal(t, "2026-07-01", schema.Project.EndDate)
	require.Len(t, schema.SubProjects, 1)
	require.Len(t, schema.Tasks, 1)
	assert.Equal(t, "blog", schema.Tasks[0].ProjectRef)

	jsonPath := filepath.Join(dir, "site.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"project":{"name":"Website"},"tasks":[{"title":"Copy","due_date":"2026-05-10"}]}`), 0o644))

	schema, err = LoadImportSchema(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "Website", schema.Project.Name)
	assert.Equal(t, "2026-05-10", schema.Tasks[0].DueDate)
}

func TestLoadImportSchema_Errors(t *testing.T) {
	_, err := LoadImportSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"project":`), 0o644))
	_, err = LoadImportSchema(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}
