package domain

import "strings"

type Project struct {
	ID              int64         `json:"id,omitempty"`
	Name            string        `json:"name" validate:"required,max=200"`
	Description     string        `json:"description"`
	StartDate       Date          `json:"startDate,omitzero"`
	EndDate         Date          `json:"endDate,omitzero"`
	Status          ProjectStatus `json:"status" validate:"required,oneof=DRAFT ACTIVE COMPLETED ABANDONED"`
	CreatedAt       Timestamp     `json:"createdAt,omitzero"`
	StrategyPlan    string        `json:"strategyPlan"`
	MarkdownPlan    string        `json:"markdownPlan,omitempty"`
	ParentProjectID int64         `json:"parentProjectId,omitempty"`
	ChildProjects   []Project     `json:"childProjects,omitempty"`
}

// IsTopLevel reports whether the project has no parent.
func (p *Project) IsTopLevel() bool {
	return p.ParentProjectID == 0
}

// HasChildren reports whether the server materialized any child projects.
func (p *Project) HasChildren() bool {
	return len(p.ChildProjects) > 0
}

// TopLevel returns the projects without a parent whose name contains search
// (case-insensitive). An empty search matches every top-level project.
func TopLevel(projects []Project, search string) []Project {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if !p.IsTopLevel() {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FindProject returns the project with the given ID from a flat list.
func FindProject(projects []Project, id int64) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
