package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopLevel_ExcludesChildren(t *testing.T) {
	projects := []Project{
		{ID: 1, Name: "Platform"},
		{ID: 2, Name: "Platform API", ParentProjectID: 1},
		{ID: 3, Name: "Marketing"},
	}

	got := TopLevel(projects, "")

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestTopLevel_SearchIsCaseInsensitive(t *testing.T) {
	projects := []Project{
		{ID: 1, Name: "Platform"},
		{ID: 2, Name: "platform api", ParentProjectID: 1},
		{ID: 3, Name: "Marketing"},
	}

	got := TopLevel(projects, "PLAT")

	require.Len(t, got, 1)
	assert.Equal(t, "Platform", got[0].Name)
}

func TestFindProject(t *testing.T) {
	projects := []Project{{ID: 4, Name: "A"}, {ID: 9, Name: "B"}}

	p, ok := FindProject(projects, 9)
	require.True(t, ok)
	assert.Equal(t, "B", p.Name)

	_, ok = FindProject(projects, 10)
	assert.False(t, ok)
}

func TestProject_DecodeServerShape(t *testing.T) {
	raw := `{
		"id": 7,
		"name": "Website",
		"description": "relaunch",
		"startDate": "2026-01-05",
		"endDate": null,
		"status": "ACTIVE",
		"createdAt": "2026-01-05T09:30:00.123",
		"strategyPlan": "ship it",
		"parentProjectId": 3,
		"childProjects": [{"id": 8, "name": "Blog", "status": "DRAFT", "parentProjectId": 7}]
	}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, NewDate(2026, 1, 5), p.StartDate)
	assert.True(t, p.EndDate.IsZero())
	assert.Equal(t, ProjectActive, p.Status)
	assert.Equal(t, 2026, p.CreatedAt.Year())
	assert.False(t, p.IsTopLevel())
	require.True(t, p.HasChildren())
	assert.Equal(t, "Blog", p.ChildProjects[0].Name)
}

func TestParseProjectStatus(t *testing.T) {
	st, err := ParseProjectStatus("active")
	require.NoError(t, err)
	assert.Equal(t, ProjectActive, st)

	_, err = ParseProjectStatus("paused")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
