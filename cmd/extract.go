package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Ondrosctots/reverbgrd/internal/utils"
	"github.com/Ondrosctots/reverbgrd/pkg/extract"
	"github.com/Ondrosctots/reverbgrd/pkg/report"
	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
)

// extractCmd scrapes listing ids off the shop page HTML and flags them,
// bypassing API discovery entirely. Useful when the search endpoints hide
// the shop's listings from this caller.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Scrape listing ids from a shop page and flag them",
	Run: func(cmd *cobra.Command, args []string) {
		pageURL, _ := cmd.Flags().GetString("url")
		live, _ := cmd.Flags().GetBool("live")

		token := resolveToken(cmd)
		delay := resolveDelay(cmd)
		setupProxy()

		if pageURL == "" {
			utils.Log.Fatal("Please provide the full shop page URL (-u flag)")
		}

		mode := report.DryRun
		if live {
			mode = report.Live
		}

		utils.Log.Info("Reading shop page HTML")
		ids, err := extract.FetchListingIDs(pageURL)
		if err != nil {
			utils.Log.Fatal("Could not load shop page: ", err)
		}
		if len(ids) == 0 {
			utils.Log.Warn("No listing ids found on the page. Make sure the URL points straight at the shop's listings.")
			return
		}
		utils.Log.Info("Detected ", len(ids), " listings in the HTML")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		client := reverb.NewClient(token)
		outcomes := report.Run(ctx, client, report.FromIDs(ids), report.Options{Mode: mode, Delay: delay})
		renderOutcomes(outcomes, mode)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("url", "u", "", "Full shop page URL")
	extractCmd.Flags().StringP("token", "t", "", "Reverb API token (falls back to reverb.token in the config file)")
	extractCmd.Flags().BoolP("live", "", false, "Submit flags for real (default is a dry-run preview)")
	extractCmd.Flags().IntP("delay", "d", 2, "Seconds to wait between requests (1-10)")
}
