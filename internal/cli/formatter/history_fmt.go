package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

// FormatTaskHistory renders task snapshots as a vertical timeline, in the
// order given (the server returns newest first).
func FormatTaskHistory(entries []domain.TaskVersionHistory, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No history yet.")
	}

	var b strings.Builder
	for i, e := range entries {
		b.WriteString(timelineNode(i))
		b.WriteString(StyleBold.Render(summaryOrDefault(e.ChangeSummary)))
		b.WriteString("  " + Dim(HumanTimestamp(e.VersionTimestamp, now)) + "\n")

		rail := timelineRail(i, len(entries))
		if e.OldTitle != "" {
			b.WriteString(rail + Dim("title   ") + StyleFg.Render(e.OldTitle) + "\n")
		}
		if e.OldStatus != "" {
			b.WriteString(rail + Dim("status  ") + TaskStatusPill(domain.TaskStatus(e.OldStatus)) + "\n")
		}
		if d := FirstLine(e.OldDescription); d != "" {
			b.WriteString(rail + Dim("desc    ") + StyleFg.Render(Truncate(d, 60)) + "\n")
		}
	}
	return b.String()
}

// FormatStrategyHistory renders strategy plan snapshots as a timeline. Each
// entry shows the plan text as it was before the change.
func FormatStrategyHistory(entries []domain.ProjectStrategyVersion, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No history yet.")
	}

	var b strings.Builder
	for i, e := range entries {
		b.WriteString(timelineNode(i))
		b.WriteString(StyleBold.Render(summaryOrDefault(e.ChangeSummary)))
		b.WriteString("  " + Dim(fmt.Sprintf("v%d · %s", e.VersionID, HumanTimestamp(e.VersionTimestamp, now))) + "\n")

		rail := timelineRail(i, len(entries))
		if e.OldGoal != "" {
			b.WriteString(rail + Dim("goal  ") + StyleFg.Render(e.OldGoal) + "\n")
		}
		old := strings.TrimRight(e.OldStrategyPlan, "\n")
		if old == "" {
			b.WriteString(rail + Dim("(empty plan)") + "\n")
			continue
		}
		for _, line := range strings.Split(old, "\n") {
			b.WriteString(rail + StyleFg.Render(line) + "\n")
		}
	}
	return b.String()
}

func summaryOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Updated"
	}
	return s
}

func timelineNode(i int) string {
	if i == 0 {
		return StyleHeader.Render("● ")
	}
	return StyleBlue.Render("○ ")
}

func timelineRail(i, n int) string {
	if i == n-1 {
		return "  "
	}
	return StyleDim.Render("│ ")
}
