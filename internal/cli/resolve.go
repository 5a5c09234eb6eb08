package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/spf13/cobra"
)

// parseID parses a numeric server ID, accepting an optional leading "#".
func parseID(what, input string) (int64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(input), "#")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, input)
	}
	return id, nil
}

// resolveProjectID resolves a project argument, which can be:
//   - a numeric ID ("12" or "#12")
//   - an exact project name (case-insensitive)
//   - an unambiguous name prefix
//
// Names are matched against the freshly loaded list, sub-projects included.
func resolveProjectID(ctx context.Context, app *App, input string) (int64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, errors.New("project is required")
	}
	if id, err := parseID("project", input); err == nil {
		return id, nil
	}

	if err := app.Controller.LoadProjects(ctx); err != nil {
		return 0, bannerError(app, err)
	}
	projects := app.Controller.State().Projects

	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	lower := strings.ToLower(input)
	var matches []domain.Project
	for _, p := range projects {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0].ID, nil
	default:
		return 0, fmt.Errorf("project name %q is ambiguous (%d matches)", input, len(matches))
	}
}

// openProject resolves a project argument and opens it: the project is
// selected and its tasks are loaded into state.
func openProject(cmd *cobra.Command, app *App, input string) (domain.Project, error) {
	ctx := cmd.Context()
	id, err := resolveProjectID(ctx, app, input)
	if err != nil {
		return domain.Project{}, err
	}
	if len(app.Controller.State().Projects) == 0 {
		if err := app.Controller.LoadProjects(ctx); err != nil {
			return domain.Project{}, bannerError(app, err)
		}
	}
	if err := app.Controller.OpenProject(ctx, id); err != nil {
		return domain.Project{}, bannerError(app, err)
	}
	p, ok := appstate.SelectedProject(app.Controller.State())
	if !ok {
		return domain.Project{}, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// bannerError turns a failed use case into a command error that leads
// with the user-facing banner, and clears the banner.
func bannerError(app *App, err error) error {
	banner := app.Controller.State().Banner
	if banner == "" {
		return err
	}
	app.Controller.Dispatch(appstate.ErrorCleared{})
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return fmt.Errorf("%s (%w)", banner, err)
}
