package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mealfund/internal/cli/formatter"
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/plancheck"
	"github.com/alexanderramin/mealfund/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type editorKeys struct {
	Save   key.Binding
	Add    key.Binding
	Remove key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
}

func defaultEditorKeys() editorKeys {
	return editorKeys{
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Add:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add phase")),
		Remove: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove phase")),
		Next:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next phase")),
		Prev:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev phase")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Add, k.Remove, k.Next, k.Prev, k.Quit}
}

func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// editorField describes one input of the phase form.
type editorField struct {
	field       domain.PhaseField
	title       string
	placeholder string
}

var editorFields = []editorField{
	{domain.FieldName, "Phase name", ""},
	{domain.FieldLocation, "Location", ""},
	{domain.FieldProcurementAt, "Procure ingredients", "YYYY-MM-DDTHH:MM"},
	{domain.FieldPreparationAt, "Cook", "YYYY-MM-DDTHH:MM"},
	{domain.FieldDistributionAt, "Distribute", "YYYY-MM-DDTHH:MM"},
	{domain.FieldIngredientShare, "Ingredients (%)", "0"},
	{domain.FieldPreparationShare, "Preparation (%)", "0"},
	{domain.FieldDistributionShare, "Distribution (%)", "0"},
}

type saveDoneMsg struct {
	pending *service.PendingSave
	result  *service.SyncResult
	err     error
}

// phaseEditor edits one campaign's phase plan in place. The form shows the
// current phase; every keystroke is pushed into the session, so warnings
// and the budget total follow the input as it is typed.
type phaseEditor struct {
	ctx     context.Context
	session *service.EditSession
	now     func() time.Time
	keys    editorKeys
	help    help.Model

	current int
	values  map[domain.PhaseField]*string
	focused domain.PhaseField
	form    *huh.Form

	status   string
	blocked  []string
	saving   bool
	lastSave *service.SyncResult
}

func newPhaseEditor(ctx context.Context, session *service.EditSession, now func() time.Time) *phaseEditor {
	e := &phaseEditor{
		ctx:     ctx,
		session: session,
		now:     now,
		keys:    defaultEditorKeys(),
		help:    help.New(),
	}
	e.loadPhase(0)
	return e
}

// loadPhase binds the form to phase i.
func (e *phaseEditor) loadPhase(i int) {
	e.current = i
	phase := e.session.Phases()[i]

	e.values = make(map[domain.PhaseField]*string, len(editorFields))
	fields := make([]huh.Field, 0, len(editorFields))
	for _, ef := range editorFields {
		v := phase.Get(ef.field)
		e.values[ef.field] = &v

		input := huh.NewInput().
			Key(string(ef.field)).
			Title(ef.title).
			Placeholder(ef.placeholder).
			Value(&v)
		switch {
		case ef.field.IsShare():
			input = input.Validate(validatePercentInput)
		case ef.field.IsMilestone():
			input = input.Validate(validateOptionalMilestone)
		}
		fields = append(fields, input)
	}

	e.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(mealfundHuhTheme()).
		WithShowHelp(false)
	e.focused = editorFields[0].field
}

func (e *phaseEditor) Init() tea.Cmd {
	return e.form.Init()
}

func (e *phaseEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveDoneMsg:
		return e, e.handleSaveDone(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, e.keys.Quit):
			return e, tea.Quit
		case e.saving:
			return e, nil
		case key.Matches(msg, e.keys.Save):
			return e, e.save()
		case key.Matches(msg, e.keys.Add):
			return e, e.addPhase()
		case key.Matches(msg, e.keys.Remove):
			return e, e.removePhase()
		case key.Matches(msg, e.keys.Next):
			return e, e.switchPhase(e.current + 1)
		case key.Matches(msg, e.keys.Prev):
			return e, e.switchPhase(e.current - 1)
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}
	e.syncFields()
	e.trackFocus()

	// Leaving the last field completes the form; keep editing the same phase.
	if e.form.State == huh.StateCompleted {
		e.blur(e.focused)
		e.loadPhase(e.current)
		return e, tea.Batch(cmd, e.form.Init())
	}
	return e, cmd
}

// syncFields pushes the bound form values into the session. Values the
// session refuses stay out of it; the form shows the validation error.
func (e *phaseEditor) syncFields() {
	phase := e.session.Phases()[e.current]
	for _, ef := range editorFields {
		v := *e.values[ef.field]
		if v == phase.Get(ef.field) {
			continue
		}
		_ = e.session.SetField(e.current, ef.field, v)
	}
}

// trackFocus normalizes a share field when focus moves off it.
func (e *phaseEditor) trackFocus() {
	f := e.form.GetFocusedField()
	if f == nil {
		return
	}
	next := domain.PhaseField(f.GetKey())
	if next == e.focused {
		return
	}
	e.blur(e.focused)
	e.focused = next
}

func (e *phaseEditor) blur(field domain.PhaseField) {
	if !field.IsShare() {
		return
	}
	if err := e.session.BlurField(e.current, field); err != nil {
		return
	}
	*e.values[field] = e.session.Phases()[e.current].Get(field)
}

func (e *phaseEditor) switchPhase(i int) tea.Cmd {
	if i < 0 || i >= e.session.Len() {
		return nil
	}
	e.blur(e.focused)
	e.loadPhase(i)
	e.status = ""
	return e.form.Init()
}

func (e *phaseEditor) addPhase() tea.Cmd {
	e.blur(e.focused)
	if err := e.session.AddPhase(); err != nil {
		if errors.Is(err, domain.ErrIncompletePhase) {
			e.status = formatter.StyleYellow.Render("Fill in every field of every phase before adding another.")
		} else {
			e.status = formatter.StyleRed.Render(err.Error())
		}
		return nil
	}
	e.loadPhase(e.session.Len() - 1)
	e.status = formatter.Dim(fmt.Sprintf("Added phase %d.", e.current+1))
	return e.form.Init()
}

func (e *phaseEditor) removePhase() tea.Cmd {
	removed := e.current + 1
	if err := e.session.RemovePhase(e.current); err != nil {
		if errors.Is(err, domain.ErrLastPhase) {
			e.status = formatter.StyleYellow.Render("A campaign keeps at least one phase.")
		} else {
			e.status = formatter.StyleRed.Render(err.Error())
		}
		return nil
	}
	i := e.current
	if i >= e.session.Len() {
		i = e.session.Len() - 1
	}
	e.loadPhase(i)
	e.status = formatter.Dim(fmt.Sprintf("Removed phase %d.", removed))
	return e.form.Init()
}

// save gates and exports the session here, on the Update goroutine. The
// returned Cmd only writes the detached plan; handleSaveDone applies the
// result back onto the session.
func (e *phaseEditor) save() tea.Cmd {
	if e.saving {
		return nil
	}
	e.blur(e.focused)
	pending, err := e.session.Prepare(e.now())
	if err != nil {
		return e.handleSaveDone(saveDoneMsg{err: err})
	}
	e.saving = true
	e.status = formatter.Dim("Saving...")
	ctx := e.ctx
	return func() tea.Msg {
		result, err := pending.Commit(ctx)
		return saveDoneMsg{pending: pending, result: result, err: err}
	}
}

func (e *phaseEditor) handleSaveDone(msg saveDoneMsg) tea.Cmd {
	e.saving = false
	e.blocked = nil

	var blockedErr *service.SaveBlockedError
	switch {
	case errors.As(msg.err, &blockedErr):
		e.blocked = blockedErr.Messages()
		e.status = formatter.StyleRed.Render("Save blocked.")
	case msg.err != nil:
		e.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
	default:
		e.lastSave = msg.result
		e.status = formatter.FormatSyncSummary(msg.result.Created, msg.result.Updated, msg.result.Deleted)
		if msg.pending == nil {
			return nil
		}
		if err := e.session.Apply(msg.pending, msg.result); err != nil {
			e.status = formatter.StyleYellow.Render(err.Error())
		}
	}
	return nil
}

func (e *phaseEditor) View() string {
	c := e.session.Campaign()
	phases := e.session.Phases()
	today := e.now()

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("%s  phase %d of %d", c.DisplayID(), e.current+1, len(phases))))
	b.WriteString("\n")
	b.WriteString(formatter.Dim("Funding window: " + formatter.FormatWindow(e.session.Window())))
	b.WriteString("\n\n")
	b.WriteString(e.form.View())
	b.WriteString("\n")

	grouped := e.session.Warnings(today)
	b.WriteString(formatter.FormatWarnings(warningsFor(grouped, e.current)))
	b.WriteString(formatter.FormatBudgetLine(phases))

	if len(e.blocked) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.FormatViolations(e.blocked))
	}
	if e.status != "" {
		b.WriteString("\n" + e.status + "\n")
	}
	b.WriteString("\n" + e.help.View(e.keys))
	return b.String()
}

// warningsFor keeps the window-level warnings and those of phase i.
func warningsFor(grouped map[int][]plancheck.Violation, i int) map[int][]plancheck.Violation {
	out := make(map[int][]plancheck.Violation, 2)
	if w, ok := grouped[-1]; ok {
		out[-1] = w
	}
	if w, ok := grouped[i]; ok {
		out[i] = w
	}
	return out
}
