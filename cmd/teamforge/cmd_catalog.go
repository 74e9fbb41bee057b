package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/types"
)

// listFlags are the query flags shared by the catalog commands.
type listFlags struct {
	page   int
	size   int
	search string
	filter string
}

func (f listFlags) query(kind types.ResourceKind) types.CatalogQuery {
	size := f.size
	if size < 1 {
		size = cfg.GetPageSize()
	}
	return types.NewCatalogQuery(kind, size).
		WithSearch(f.search).
		WithFilter(f.filter).
		WithPage(f.page)
}

var heroesFlags, skillsFlags listFlags

// heroesCmd lists one page of the hero catalog
var heroesCmd = &cobra.Command{
	Use:   "heroes",
	Short: "List heroes",
	Long: `Prints one page of the hero catalog.

Examples:
  teamforge heroes
  teamforge heroes --camp 蜀 --page 2
  teamforge heroes --search 刘`,
	Args: cobra.NoArgs,
	RunE: listHeroes,
}

// skillsCmd lists one page of the skill catalog
var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List skills",
	Long: `Prints one page of the skill catalog.

Examples:
  teamforge skills --type 主动
  teamforge skills --search 火 --size 50`,
	Args: cobra.NoArgs,
	RunE: listSkills,
}

func init() {
	for _, c := range []struct {
		cmd        *cobra.Command
		flags      *listFlags
		filterName string
		filterHelp string
	}{
		{heroesCmd, &heroesFlags, "camp", "Only heroes of this faction"},
		{skillsCmd, &skillsFlags, "type", "Only skills of this kind"},
	} {
		c.cmd.Flags().IntVar(&c.flags.page, "page", 1, "Page number")
		c.cmd.Flags().IntVar(&c.flags.size, "size", 0, "Page size (default: catalog.page_size)")
		c.cmd.Flags().StringVar(&c.flags.search, "search", "", "Name search text")
		c.cmd.Flags().StringVar(&c.flags.filter, c.filterName, "", c.filterHelp)
	}
}

func listHeroes(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	q := heroesFlags.query(types.KindCharacters)
	logger.Debug("Listing heroes", zap.Int("page", q.Page), zap.String("search", q.SearchText), zap.String("camp", q.FilterTag))

	page, err := newClient().FetchCharacters(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list heroes: %w", err)
	}

	table := ui.NewSimpleTable("Heroes", []string{"Name", "Faction", "Command", "Tags"})
	table.Empty = "No heroes match."
	for _, h := range page.Items {
		table.AddRow(ui.Fallback(h.Name), ui.Fallback(h.Faction), ui.FormatCommand(h.CommandValue), ui.FormatTags(h.Tags))
	}
	printPage(cmd.OutOrStdout(), table, page.Page, page.TotalPages, page.TotalCount)
	return nil
}

func listSkills(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	q := skillsFlags.query(types.KindAbilities)
	logger.Debug("Listing skills", zap.Int("page", q.Page), zap.String("search", q.SearchText), zap.String("type", q.FilterTag))

	page, err := newClient().FetchAbilities(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list skills: %w", err)
	}

	table := ui.NewSimpleTable("Skills", []string{"Name", "Kind", "Rarity", "Trigger", "Description"})
	table.Empty = "No skills match."
	table.MaxWidth = 48
	for _, s := range page.Items {
		table.AddRow(ui.Fallback(s.Name), ui.Fallback(s.Kind), ui.Fallback(s.Rarity), ui.Fallback(s.TriggerProbability), ui.Fallback(s.Description))
	}
	printPage(cmd.OutOrStdout(), table, page.Page, page.TotalPages, page.TotalCount)
	return nil
}

func printPage(w io.Writer, table *ui.SimpleTable, page, totalPages, totalCount int) {
	styles := ui.DefaultStyles()
	fmt.Fprint(w, table.View(styles))
	fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf("page %d of %d, %d records", page, max(totalPages, 1), totalCount)))
}
