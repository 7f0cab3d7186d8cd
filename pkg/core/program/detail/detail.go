// Package detail is the program detail page controller. A View lives for one
// page load: it captures the program id and, once the program is loaded, the
// owning scientist used to redirect after a delete.
package detail

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/scienceol/piwarmer/pkg/core/program"
	"github.com/scienceol/piwarmer/pkg/repo"
)

const DeleteWarning = "Are you sure you want to delete this program? This cannot be undone."

type Option func(*View)

// WithEscapeHTML escapes the program and driver names before they are written
// into the page. Without it names are inserted as HTML.
func WithEscapeHTML(escape bool) Option {
	return func(v *View) {
		v.escape = escape
	}
}

// WithScientist restores a scientist captured by an earlier page load.
func WithScientist(scientist string) Option {
	return func(v *View) {
		v.scientist = scientist
	}
}

type View struct {
	repo      repo.ProgramRepo
	programID string
	scientist string
	escape    bool
	page      program.Page
}

func New(r repo.ProgramRepo, programID string, opts ...Option) *View {
	v := &View{repo: r, programID: programID}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) ProgramID() string { return v.programID }

func (v *View) Scientist() string { return v.scientist }

func (v *View) Page() program.Page { return v.page }

// Initialize fills the page. The driver is requested only after the program
// arrived. Every failed step leaves its region empty; the failures are
// returned joined for logging.
func (v *View) Initialize(ctx context.Context) error {
	p, err := v.repo.GetProgram(ctx, v.programID)
	if err != nil {
		return fmt.Errorf("get program %s: %w", v.programID, err)
	}
	v.scientist = p.Scientist
	v.page.Title = v.text(p.Name)

	var errs []error
	d, err := v.repo.GetDriver(ctx, p.Driver.String())
	if err != nil {
		errs = append(errs, fmt.Errorf("get driver %s: %w", p.Driver, err))
	} else {
		v.page.DriverName = "Driver: " + v.text(d.Name)
	}

	steps, err := program.ParseSteps(p.Steps)
	if err != nil {
		errs = append(errs, fmt.Errorf("program %s steps: %w", v.programID, err))
	} else {
		v.page.Details = program.RenderRows(steps)
	}
	return errors.Join(errs...)
}

// OnDeleteClicked asks confirm with DeleteWarning. On approval the program is
// deleted and the location to navigate to is returned. An empty location
// means nothing happened.
func (v *View) OnDeleteClicked(ctx context.Context, confirm program.Confirmer) (string, error) {
	if confirm == nil || !confirm(DeleteWarning) {
		return "", nil
	}
	if err := v.repo.DeleteProgram(ctx, v.programID); err != nil {
		return "", fmt.Errorf("delete program %s: %w", v.programID, err)
	}
	return "/program?user=" + v.scientist, nil
}

func (v *View) text(s string) string {
	if v.escape {
		return html.EscapeString(s)
	}
	return s
}
