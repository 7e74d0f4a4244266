package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourusername/tennis-tips/internal/model"
	"github.com/yourusername/tennis-tips/internal/service"
	"github.com/yourusername/tennis-tips/internal/tips"
)

var (
	tipsFixtures  string
	tipsModelPath string
	tipsOut       string
)

func init() {
	tipsCmd.Flags().StringVarP(&tipsFixtures, "fixtures", "f", "data/fixtures.csv", "Upcoming fixtures CSV")
	tipsCmd.Flags().StringVarP(&tipsModelPath, "model", "m", "", "Model artifact path (defaults to the configured path)")
	tipsCmd.Flags().StringVarP(&tipsOut, "out", "o", "", "Optional CSV output path for the generated tips")
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Generate value-bet tips for upcoming fixtures",
	Long: `Replays the stored history to bring ratings up to date, loads
the trained model and emits one tip per fixture side, flagging those
whose edge clears the configured threshold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := tipsModelPath
		if path == "" {
			path = cfg.Model.Path
		}
		tm, err := model.Load(path)
		if err != nil {
			return err
		}

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		p, err := buildPipeline(db)
		if err != nil {
			return err
		}

		// Ratings are in-memory state; bring them current by replaying
		// the full merged history before looking at fixtures
		results, err := p.ingestion.LoadResults()
		if err != nil {
			return err
		}
		odds, err := p.ingestion.LoadOdds()
		if err != nil {
			return err
		}
		if _, err := p.dataset.Build(ctx, results, odds); err != nil {
			return err
		}

		generator := tips.NewGenerator(selectionConfig(), tm, p.builder, p.engine, fatigueParams(), appLog)
		tipSvc := service.NewTipService(generator, p.tipRepo, appLog)

		generated, err := tipSvc.GenerateFromFile(ctx, tipsFixtures)
		if err != nil {
			return err
		}

		if tipsOut != "" {
			if err := tipSvc.WriteCSV(tipsOut, generated); err != nil {
				return err
			}
		}

		fmt.Printf("%-12s %-22s %-22s %-5s %-6s %-6s %-7s %-6s %s\n",
			"DATE", "PLAYER A", "PLAYER B", "PICK", "PROB", "ODDS", "EDGE", "STAKE", "BET")
		for i := range generated {
			t := &generated[i]
			flag := ""
			if t.Decision {
				flag = "YES"
			}
			fmt.Printf("%-12s %-22s %-22s %-5s %-6.3f %-6s %-+7.3f %-6.3f %s\n",
				t.FixtureDate.Format("2006-01-02"),
				truncate(t.PlayerA, 22), truncate(t.PlayerB, 22),
				string(t.Side), t.Probability, t.Odds.StringFixed(2), t.Edge, t.StakeSuggest, flag)
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
