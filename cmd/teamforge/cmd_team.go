package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/types"
)

var (
	recommendFlags  = types.DefaultTeamConstraints()
	skipDamageCheck bool
	synergyLevel    int
)

// recommendCmd asks the service for ranked teams
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend teams",
	Long: `Asks the service for ranked team candidates.

Examples:
  teamforge recommend
  teamforge recommend --include 刘备 --exclude 曹操 --level 40 --count 5`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

// synergyCmd breaks down one team
var synergyCmd = &cobra.Command{
	Use:   "synergy MEMBER...",
	Short: "Analyze how well a team works together",
	Long: `Prints the synergy score and the analysis sections of one team.

Example:
  teamforge synergy 刘备 关羽 张飞 --level 60`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSynergy,
}

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recommendFlags.RequiredMember, "include", "", "Hero every team must contain")
	f.StringVar(&recommendFlags.ExcludedMember, "exclude", "", "Hero no team may contain")
	f.IntVar(&recommendFlags.TargetCount, "count", types.DefaultTargetCount, "Number of teams")
	f.IntVar(&recommendFlags.TargetLevel, "level", types.DefaultTargetLevel, "Hero level")
	f.IntVar(&recommendFlags.TroopStrength, "troops", types.DefaultTroopStrength, "Troop strength (0 leaves it out)")
	f.BoolVar(&skipDamageCheck, "no-damage-check", false, "Skip damage verification")

	synergyCmd.Flags().IntVar(&synergyLevel, "level", types.DefaultTargetLevel, "Hero level")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	tc := recommendFlags
	tc.RequireDamageVerification = !skipDamageCheck
	if tc.TargetCount < 1 || tc.TargetLevel < 1 || tc.TroopStrength < 0 {
		return fmt.Errorf("count and level must be positive and troops not negative")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	logger.Debug("Requesting recommendations",
		zap.String("include", tc.RequiredMember),
		zap.String("exclude", tc.ExcludedMember),
		zap.Int("count", tc.TargetCount),
		zap.Int("level", tc.TargetLevel))

	candidates, err := newClient().FetchRecommendations(ctx, tc)
	if err != nil {
		return fmt.Errorf("failed to fetch recommendations: %w", err)
	}

	table := ui.NewSimpleTable("Recommended teams", []string{"#", "Score", "Members"})
	table.Empty = "No team satisfies these constraints."
	for i, c := range candidates {
		table.AddRow(strconv.Itoa(i+1), ui.FormatScore(c.Score), c.MemberList())
	}
	fmt.Fprint(cmd.OutOrStdout(), table.View(ui.DefaultStyles()))
	return nil
}

func runSynergy(cmd *cobra.Command, args []string) error {
	if synergyLevel < 1 {
		return fmt.Errorf("level must be positive")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	report, err := newClient().FetchSynergy(ctx, args, synergyLevel)
	if err != nil {
		return fmt.Errorf("failed to analyze team: %w", err)
	}

	styles := ui.DefaultStyles()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Title.Render("Synergy"))
	fmt.Fprintln(out, styles.Label.Render("Overall score")+ui.FormatScore(report.OverallScore))
	for _, axis := range report.PopulatedAxes() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.Bold.Render(axis.Title()))
		fmt.Fprintln(out, ui.FormatExplanation(report.Sections[axis]))
	}
	return nil
}
