package domain

// TaskVersionHistory is a server-generated snapshot of a task before a change.
type TaskVersionHistory struct {
	ID               int64     `json:"id"`
	TaskID           int64     `json:"taskId"`
	VersionTimestamp Timestamp `json:"versionTimestamp"`
	OldTitle         string    `json:"oldTitle"`
	OldDescription   string    `json:"oldDescription"`
	OldStatus        string    `json:"oldStatus"`
	ChangeSummary    string    `json:"changeSummary"`
}

// ProjectStrategyVersion is a server-generated snapshot of a project's
// strategy plan before it was replaced.
type ProjectStrategyVersion struct {
	VersionID        int64     `json:"versionId"`
	ProjectID        int64     `json:"projectId"`
	VersionTimestamp Timestamp `json:"versionTimestamp"`
	OldGoal          string    `json:"oldGoal"`
	OldStrategyPlan  string    `json:"oldStrategyPlan"`
	ChangeSummary    string    `json:"changeSummary"`
}
