package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

const listProgressBarWidth = 10

// ProjectRow pairs a project with its derived statistics when the caller
// has loaded its tasks. Stats may be nil.
type ProjectRow struct {
	Project domain.Project
	Stats   *stats.Project
}

// FormatProjectList renders a styled project table inside a bordered box.
func FormatProjectList(rows []ProjectRow, now time.Time) string {
	if len(rows) == 0 {
		return RenderBox("Projects", Dim("No projects found."))
	}

	headers := []string{"ID", "NAME", "STATUS", "SUBS", "END", "PROGRESS"}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		p := r.Project
		progress := Dim("--")
		if r.Stats != nil {
			progress = RenderProgress(r.Stats.ProgressRatio(), listProgressBarWidth)
		}
		subs := Dim("--")
		if n := len(p.ChildProjects); n > 0 {
			subs = StyleBlue.Render(fmt.Sprintf("%d", n))
		}
		table = append(table, []string{
			FormatID(p.ID),
			Bold(Truncate(p.Name, 40)),
			StatusPill(p.Status),
			subs,
			RelativeDateStyled(p.EndDate, now),
			progress,
		})
	}

	return RenderBox("Projects", RenderTable(headers, table))
}

// ProjectDetailData holds everything the project card needs.
type ProjectDetailData struct {
	Project domain.Project
	Parent  *domain.Project
	Stats   stats.Project
	Now     time.Time
}

// FormatProjectDetail renders a project card: metadata on the left, the
// statistics grid and sub-projects on the right, then the strategy plan.
func FormatProjectDetail(data ProjectDetailData) string {
	left := buildMetadataPanel(data)
	right := FormatStatsGrid(data.Stats)
	if data.Project.HasChildren() {
		right += "\n\n" + Header("Sub-projects") + "\n" + RenderTree(ProjectTree(data.Project.ChildProjects))
	}

	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	var b strings.Builder
	b.WriteString(combined)
	b.WriteString("\n\n" + Header("Strategy") + "\n")
	if strings.TrimSpace(data.Project.StrategyPlan) == "" {
		b.WriteString(Dim("No strategy plan yet."))
	} else {
		b.WriteString(StyleFg.Render(data.Project.StrategyPlan))
	}

	return RenderBox("", b.String())
}

func buildMetadataPanel(data ProjectDetailData) string {
	p := data.Project
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	if data.Parent != nil {
		b.WriteString(Dim("sub-project of ") + StylePurple.Render(data.Parent.Name) + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-7s", label)), value))
	}
	field("ID", FormatID(p.ID))
	field("STATUS", StatusPill(p.Status))
	field("START", StyleFg.Render(HumanDate(p.StartDate, data.Now)))
	if !p.EndDate.IsZero() {
		field("END", RelativeDateStyled(p.EndDate, data.Now)+" "+Dim("("+HumanDate(p.EndDate, data.Now)+")"))
	}
	if !p.CreatedAt.IsZero() {
		field("CREATED", HumanTimestamp(p.CreatedAt, data.Now))
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(40).Foreground(ColorFg).Render(desc) + "\n")
	}

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

// FormatStatsGrid renders the four statistic cards: progress, tasks,
// overdue and days remaining.
func FormatStatsGrid(s stats.Project) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1).
		Width(18)

	overdue := StyleGreen.Render("0")
	if s.OverdueTasks > 0 {
		overdue = StyleRed.Render(fmt.Sprintf("%d", s.OverdueTasks))
	}

	remaining := Dim("No end date")
	if s.DaysRemaining != nil {
		if s.DaysRemaining.PastDue() {
			remaining = StyleRed.Render(s.DaysRemaining.String())
		} else {
			remaining = StyleFg.Render(s.DaysRemaining.String())
		}
	}

	cards := []string{
		card.Render(Dim("PROGRESS") + "\n" + RenderCompactBar(s.ProgressRatio(), 10, false) + fmt.Sprintf(" %d%%", s.Progress)),
		card.Render(Dim("TASKS") + "\n" + StyleFg.Render(fmt.Sprintf("%d/%d done", s.CompletedTasks, s.TotalTasks))),
		card.Render(Dim("OVERDUE") + "\n" + overdue),
		card.Render(Dim("REMAINING") + "\n" + remaining),
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// FormatPlanText renders a titled long-text plan (strategy or markdown).
func FormatPlanText(title, text string) string {
	if strings.TrimSpace(text) == "" {
		return RenderBox(title, Dim("Empty."))
	}
	return RenderBox(title, StyleFg.Render(text))
}
