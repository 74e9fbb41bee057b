package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// FetchFunc loads one catalog page.
type FetchFunc[T types.Record] func(ctx context.Context, query types.CatalogQuery) (types.CatalogPage[T], error)

// Column describes one table column of a browser.
type Column[T types.Record] struct {
	Title string
	Width int
	Cell  func(T) string
}

// filterPicker is the choice list opened with "f". The first option is
// always the empty tag, shown as "All".
type filterPicker struct {
	options []string
	cursor  int
	open    bool
}

func (p *filterPicker) show(options []string, current string) {
	p.options = append([]string{""}, options...)
	p.cursor = 0
	for i, o := range p.options {
		if o == current {
			p.cursor = i
			break
		}
	}
	p.open = true
}

func (p *filterPicker) move(delta int) {
	if len(p.options) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.options)) % len(p.options)
}

func (p *filterPicker) selected() string {
	if p.cursor < 0 || p.cursor >= len(p.options) {
		return ""
	}
	return p.options[p.cursor]
}

// Browser is a paginated, searchable, filterable list over one resource
// kind. Each instance owns its query and page; siblings never share state.
type Browser[T types.Record] struct {
	kind    types.ResourceKind
	title   string
	fetch   FetchFunc[T]
	columns []Column[T]
	options func() []string
	edit    func(T) tea.Cmd
	root    context.Context
	logger  *zap.Logger
	styles  ui.Styles
	keys    catalogKeys

	query   types.CatalogQuery
	page    *types.CatalogPage[T]
	err     error
	loading bool
	seq     uint64

	table         table.Model
	search        textinput.Model
	searchFocused bool
	picker        filterPicker
	width         int
}

// NewCharacterBrowser builds the hero catalog. Its filter choices are the
// factions from the metadata cache.
func NewCharacterBrowser(ctx *Context) *Browser[types.CharacterRecord] {
	columns := []Column[types.CharacterRecord]{
		{Title: "Name", Width: 14, Cell: func(r types.CharacterRecord) string { return ui.Fallback(r.Name) }},
		{Title: "Faction", Width: 8, Cell: func(r types.CharacterRecord) string { return ui.Fallback(r.Faction) }},
		{Title: "Command", Width: 9, Cell: func(r types.CharacterRecord) string { return ui.FormatCommand(r.CommandValue) }},
		{Title: "Tags", Width: 32, Cell: func(r types.CharacterRecord) string { return ui.FormatTags(r.Tags) }},
	}
	options := func() []string {
		md, _ := ctx.Metadata.Get()
		return md.Factions
	}
	return newBrowser(ctx, types.KindCharacters, "Heroes", ctx.Gateway.FetchCharacters, columns, options, nil)
}

// NewAbilityBrowser builds the skill catalog. Its filter choices are the
// configured ability kinds and its records can be edited.
func NewAbilityBrowser(ctx *Context) *Browser[types.AbilityRecord] {
	columns := []Column[types.AbilityRecord]{
		{Title: "Name", Width: 14, Cell: func(r types.AbilityRecord) string { return ui.Fallback(r.Name) }},
		{Title: "Kind", Width: 8, Cell: func(r types.AbilityRecord) string { return ui.Fallback(r.Kind) }},
		{Title: "Rarity", Width: 7, Cell: func(r types.AbilityRecord) string { return ui.Fallback(r.Rarity) }},
		{Title: "Trigger", Width: 8, Cell: func(r types.AbilityRecord) string { return ui.Fallback(r.TriggerProbability) }},
		{Title: "Description", Width: 44, Cell: func(r types.AbilityRecord) string { return ui.Fallback(r.Description) }},
	}
	kinds := append([]string(nil), ctx.Config.Catalog.AbilityKinds...)
	options := func() []string { return kinds }
	edit := func(r types.AbilityRecord) tea.Cmd { return emit(editRequestMsg{record: r}) }
	return newBrowser(ctx, types.KindAbilities, "Skills", ctx.Gateway.FetchAbilities, columns, options, edit)
}

func newBrowser[T types.Record](
	ctx *Context,
	kind types.ResourceKind,
	title string,
	fetch FetchFunc[T],
	columns []Column[T],
	options func() []string,
	edit func(T) tea.Cmd,
) *Browser[T] {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ctx.Styles.Theme.Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Background(ctx.Styles.Theme.Primary)
	t.SetStyles(ts)

	si := textinput.New()
	si.Placeholder = "Search by name..."
	si.Prompt = "/ "
	si.CharLimit = 64
	si.Width = 30

	return &Browser[T]{
		kind:    kind,
		title:   title,
		fetch:   fetch,
		columns: columns,
		options: options,
		edit:    edit,
		root:    ctx.Root,
		logger:  ctx.Logger(logging.CategoryCatalog).With(zap.Stringer("kind", kind)),
		styles:  ctx.Styles,
		keys:    newCatalogKeys(),
		query:   types.NewCatalogQuery(kind, ctx.Config.GetPageSize()),
		table:   t,
		search:  si,
	}
}

// =============================================================================
// BROWSE OPERATIONS
// =============================================================================

// Browse fetches the page described by query. The result is applied only
// if no later Browse was issued in the meantime.
func (b *Browser[T]) Browse(query types.CatalogQuery) tea.Cmd {
	query.Kind = b.kind
	b.seq++
	seq := b.seq
	b.loading = true

	fetch := b.fetch
	root := b.root
	b.logger.Debug("browse",
		zap.Uint64("seq", seq),
		zap.Int("page", query.Page),
		zap.String("search", query.SearchText),
		zap.String("filter", query.FilterTag))

	return func() tea.Msg {
		page, err := fetch(root, query)
		return pageLoadedMsg[T]{seq: seq, query: query, page: page, err: err}
	}
}

// Search browses the first page matching text under the current filter.
func (b *Browser[T]) Search(text string) tea.Cmd {
	return b.Browse(b.query.WithSearch(text))
}

// Filter browses the first page of tag under the current search.
func (b *Browser[T]) Filter(tag string) tea.Cmd {
	return b.Browse(b.query.WithFilter(tag))
}

// GoToPage browses page n of the current search and filter.
func (b *Browser[T]) GoToPage(n int) tea.Cmd {
	return b.Browse(b.query.WithPage(n))
}

// NextPage is a no-op on the last page.
func (b *Browser[T]) NextPage() tea.Cmd {
	if !b.CanNext() {
		return nil
	}
	return b.GoToPage(b.page.Page + 1)
}

// PrevPage is a no-op on the first page.
func (b *Browser[T]) PrevPage() tea.Cmd {
	if !b.CanPrev() {
		return nil
	}
	return b.GoToPage(b.page.Page - 1)
}

// Refresh re-browses the current query.
func (b *Browser[T]) Refresh() tea.Cmd {
	return b.Browse(b.query)
}

// apply renders a result. Success replaces the page and resets the controls
// to the answered query; failure keeps the previous page.
func (b *Browser[T]) apply(msg pageLoadedMsg[T]) {
	if msg.seq != b.seq {
		b.logger.Debug("discarding stale response", zap.Uint64("seq", msg.seq), zap.Uint64("latest", b.seq))
		return
	}
	b.loading = false

	if msg.err != nil {
		b.err = msg.err
		b.logger.Warn("browse failed", zap.Uint64("seq", msg.seq), zap.Error(msg.err))
		return
	}

	b.err = nil
	page := msg.page
	b.page = &page

	q := msg.query
	q.Page = page.Page
	if page.PageSize > 0 {
		q.PageSize = page.PageSize
	}
	b.query = q
	if !b.searchFocused {
		b.search.SetValue(q.SearchText)
	}

	rows := make([]table.Row, 0, len(page.Items))
	for _, item := range page.Items {
		row := make(table.Row, len(b.columns))
		for i, c := range b.columns {
			row[i] = c.Cell(item)
		}
		rows = append(rows, row)
	}
	b.table.SetRows(rows)
	if b.table.Cursor() >= len(rows) || b.table.Cursor() < 0 {
		b.table.SetCursor(0)
	}

	b.logger.Debug("page applied",
		zap.Uint64("seq", msg.seq),
		zap.Int("page", page.Page),
		zap.Int("total_pages", page.TotalPages),
		zap.Int("items", len(page.Items)))
}

// =============================================================================
// STATE
// =============================================================================

// Query returns the query the controls currently reflect.
func (b *Browser[T]) Query() types.CatalogQuery { return b.query }

// Page returns the last successfully rendered page.
func (b *Browser[T]) Page() (types.CatalogPage[T], bool) {
	if b.page == nil {
		return types.CatalogPage[T]{}, false
	}
	return *b.page, true
}

// Err returns the inline error of the last browse, if it failed.
func (b *Browser[T]) Err() error { return b.err }

// Loading reports whether a browse is in flight.
func (b *Browser[T]) Loading() bool { return b.loading }

// CanPrev reports whether the previous-page control is enabled.
func (b *Browser[T]) CanPrev() bool { return b.page != nil && b.page.HasPrev() }

// CanNext reports whether the next-page control is enabled.
func (b *Browser[T]) CanNext() bool { return b.page != nil && b.page.HasNext() }

// Selected returns the record under the cursor.
func (b *Browser[T]) Selected() (T, bool) {
	var zero T
	if b.page == nil {
		return zero, false
	}
	i := b.table.Cursor()
	if i < 0 || i >= len(b.page.Items) {
		return zero, false
	}
	return b.page.Items[i], true
}

// InputFocused reports whether keystrokes belong to the search box or picker.
func (b *Browser[T]) InputFocused() bool {
	return b.searchFocused || b.picker.open
}

// SetSize fits the table to the available area.
func (b *Browser[T]) SetSize(w, h int) {
	b.width = w
	b.table.SetWidth(w)
	b.table.SetHeight(max(h-8, 3))
}

// =============================================================================
// INPUT
// =============================================================================

// Update handles keys while the browser is on screen.
func (b *Browser[T]) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if b.searchFocused {
		switch {
		case key.Matches(keyMsg, b.keys.Accept):
			b.searchFocused = false
			b.search.Blur()
			return b.Search(b.search.Value())
		case key.Matches(keyMsg, b.keys.Dismiss):
			b.searchFocused = false
			b.search.Blur()
			b.search.SetValue(b.query.SearchText)
			return nil
		}
		var cmd tea.Cmd
		b.search, cmd = b.search.Update(keyMsg)
		return cmd
	}

	if b.picker.open {
		switch {
		case key.Matches(keyMsg, b.keys.Up):
			b.picker.move(-1)
		case key.Matches(keyMsg, b.keys.Down):
			b.picker.move(1)
		case key.Matches(keyMsg, b.keys.Accept):
			b.picker.open = false
			return b.Filter(b.picker.selected())
		case key.Matches(keyMsg, b.keys.Dismiss), key.Matches(keyMsg, b.keys.Filter):
			b.picker.open = false
		}
		return nil
	}

	switch {
	case key.Matches(keyMsg, b.keys.Search):
		b.searchFocused = true
		return b.search.Focus()
	case key.Matches(keyMsg, b.keys.Filter):
		b.picker.show(b.options(), b.query.FilterTag)
	case key.Matches(keyMsg, b.keys.Prev):
		return b.PrevPage()
	case key.Matches(keyMsg, b.keys.Next):
		return b.NextPage()
	case key.Matches(keyMsg, b.keys.Refresh):
		return b.Refresh()
	case key.Matches(keyMsg, b.keys.Up):
		b.table.MoveUp(1)
	case key.Matches(keyMsg, b.keys.Down):
		b.table.MoveDown(1)
	case key.Matches(keyMsg, b.keys.Edit):
		if rec, ok := b.Selected(); ok && b.edit != nil {
			return b.edit(rec)
		}
	case key.Matches(keyMsg, b.keys.Remove):
		if rec, ok := b.Selected(); ok {
			return emit(removeRequestMsg{kind: b.kind, name: rec.RecordName()})
		}
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the browser. spin is the shared spinner frame.
func (b *Browser[T]) View(spin string) string {
	s := b.styles
	var sb strings.Builder

	header := s.Bold.Render(b.title)
	if b.page != nil {
		header += s.Muted.Render(fmt.Sprintf("  %d records", b.page.TotalCount))
	}
	if b.loading {
		header += "  " + s.Spinner.Render(spin) + s.Muted.Render(" loading")
	}
	sb.WriteString(header + "\n\n")

	sb.WriteString(b.renderControls() + "\n")
	if b.picker.open {
		sb.WriteString(b.renderPicker() + "\n")
	}
	sb.WriteString("\n")

	if b.err != nil {
		sb.WriteString(s.Error.Render("Could not load "+b.kind.String()+": "+describeError(b.err)) + "\n\n")
	}

	switch {
	case b.page == nil && !b.loading && b.err == nil:
		sb.WriteString(s.Muted.Render("Nothing loaded yet. Press r to load.") + "\n")
	case b.page != nil && len(b.page.Items) == 0:
		sb.WriteString(s.Muted.Render("No "+b.kind.String()+" match the current search and filter.") + "\n")
	case b.page != nil:
		sb.WriteString(b.table.View() + "\n")
	}

	sb.WriteString("\n" + b.renderPagination())
	return sb.String()
}

func (b *Browser[T]) renderControls() string {
	s := b.styles
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.Border).
		Padding(0, 1)
	if b.searchFocused {
		box = box.BorderForeground(s.Theme.Primary)
	}

	filter := "All"
	if b.query.FilterTag != "" {
		filter = b.query.FilterTag
	}
	filterLabel := s.Muted.Render("Filter: ") + s.Bold.Render(filter)

	return lipgloss.JoinHorizontal(lipgloss.Center,
		box.Render(b.search.View()),
		"  ",
		filterLabel,
	)
}

func (b *Browser[T]) renderPicker() string {
	s := b.styles
	var sb strings.Builder
	for i, o := range b.picker.options {
		label := o
		if label == "" {
			label = "All"
		}
		if i == b.picker.cursor {
			sb.WriteString(s.Badge.Render(label))
		} else {
			sb.WriteString(s.Tab.Render(label))
		}
		sb.WriteString(" ")
	}
	return s.Card.Render(sb.String())
}

func (b *Browser[T]) renderPagination() string {
	s := b.styles
	prev, next := s.Muted.Render("‹ prev"), s.Muted.Render("next ›")
	if b.CanPrev() {
		prev = s.Bold.Render("‹ prev")
	}
	if b.CanNext() {
		next = s.Bold.Render("next ›")
	}

	position := "page -"
	if b.page != nil {
		position = fmt.Sprintf("page %d of %d", b.page.Page, max(b.page.TotalPages, 1))
	}
	return prev + "  " + s.Body.Render(position) + "  " + next
}
