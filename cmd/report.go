package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ondrosctots/reverbgrd/internal/utils"
	"github.com/Ondrosctots/reverbgrd/pkg/discovery"
	"github.com/Ondrosctots/reverbgrd/pkg/report"
	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
	"github.com/Ondrosctots/reverbgrd/pkg/whttp"
)

// reportCmd discovers a shop's listings and flags them all.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Find every listing of a shop and flag it as fraudulent",
	Long:  "Runs discovery against the listings API, verifies shop membership of each result, then previews (default) or submits a moderation flag for every verified listing.",
	Run: func(cmd *cobra.Command, args []string) {
		shop, _ := cmd.Flags().GetString("shop")
		ids, _ := cmd.Flags().GetStringSlice("ids")
		live, _ := cmd.Flags().GetBool("live")

		token := resolveToken(cmd)
		delay := resolveDelay(cmd)
		setupProxy()

		mode := report.DryRun
		if live {
			mode = report.Live
		}

		client := reverb.NewClient(token)

		var listings []reverb.Listing
		if len(ids) > 0 {
			// Manually supplied ids skip discovery and verification.
			listings = report.FromIDs(ids)
			utils.Log.Info("Using ", len(listings), " manually supplied listing ids")
		} else {
			slug := utils.NormalizeShopSlug(shop)
			if slug == "" {
				utils.Log.Fatal("Please provide the shop URL or slug (-s flag)")
			}
			target := reverb.ShopTarget{Slug: slug}

			utils.Log.Info("Discovering listings for shop ", slug)
			listings = discovery.Discover(client, target, discovery.Options{Delay: delay})
			if len(listings) == 0 {
				utils.Log.Warn("Discovery failed: no listings found for ", slug, ". The API may be hiding them from this caller; try the extract command on the shop page instead.")
				return
			}
			utils.Log.Info("Discovered ", len(listings), " listings")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		outcomes := report.Run(ctx, client, listings, report.Options{Mode: mode, Delay: delay})
		renderOutcomes(outcomes, mode)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("shop", "s", "", "Shop URL or slug (example: https://reverb.com/shop/gilmars-shop-5)")
	reportCmd.Flags().StringP("token", "t", "", "Reverb API token (falls back to reverb.token in the config file)")
	reportCmd.Flags().BoolP("live", "", false, "Submit flags for real (default is a dry-run preview)")
	reportCmd.Flags().IntP("delay", "d", 2, "Seconds to wait between requests (1-10)")
	reportCmd.Flags().StringSliceP("ids", "", nil, "Comma-separated listing ids to flag directly, skipping discovery")
}

func resolveToken(cmd *cobra.Command) string {
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = viper.GetString("reverb.token")
	}
	if token == "" {
		utils.Log.Fatal("Please provide your Reverb API token (-t flag or reverb.token in the config)")
	}
	return token
}

func resolveDelay(cmd *cobra.Command) time.Duration {
	seconds, _ := cmd.Flags().GetInt("delay")
	if seconds < 1 {
		seconds = 1
	}
	if seconds > 10 {
		seconds = 10
	}
	return time.Duration(seconds) * time.Second
}

func setupProxy() {
	proxy, _ := rootCmd.PersistentFlags().GetString("proxy")
	if proxy == "" {
		return
	}
	if err := whttp.SetupProxy(proxy); err != nil {
		utils.Log.Fatal("Invalid Proxy String")
	}
}

func renderOutcomes(outcomes []report.Outcome, mode report.Mode) {
	resultColors := map[report.Result]*color.Color{
		report.Previewed: color.New(color.FgCyan),
		report.Succeeded: color.New(color.FgGreen),
		report.NotFound:  color.New(color.FgYellow),
		report.Forbidden: color.New(color.FgRed),
		report.Failed:    color.New(color.FgRed),
	}

	for _, o := range outcomes {
		status := ""
		if o.StatusCode != 0 {
			status = fmt.Sprintf(" (%d)", o.StatusCode)
		}
		title := o.Title
		if title != "" {
			title = "  " + strings.ReplaceAll(title, "\n", " ")
		}
		fmt.Printf("%s%s  %s%s\n", resultColors[o.Result].Sprint(o.Result), status, o.ListingID, title)
	}

	s := report.Summarize(outcomes)
	fmt.Printf("\n[%s] %d processed: %s %d, %s %d, %s %d, %s %d, %s %d\n",
		mode, len(outcomes),
		color.New(color.FgCyan).Sprint("previewed"), s.Previewed,
		color.New(color.FgGreen).Sprint("succeeded"), s.Succeeded,
		color.New(color.FgYellow).Sprint("not found"), s.NotFound,
		color.New(color.FgRed).Sprint("forbidden"), s.Forbidden,
		color.New(color.FgRed).Sprint("failed"), s.Failed)
}
