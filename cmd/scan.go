package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ondrosctots/reverbgrd/internal/utils"
	"github.com/Ondrosctots/reverbgrd/pkg/discovery"
	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
)

// scanCmd runs discovery only, printing what would be flagged.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover a shop's listings without taking any action",
	Run: func(cmd *cobra.Command, args []string) {
		shop, _ := cmd.Flags().GetString("shop")

		token := resolveToken(cmd)
		delay := resolveDelay(cmd)
		setupProxy()

		slug := utils.NormalizeShopSlug(shop)
		if slug == "" {
			utils.Log.Fatal("Please provide the shop URL or slug (-s flag)")
		}

		client := reverb.NewClient(token)
		listings := discovery.Discover(client, reverb.ShopTarget{Slug: slug}, discovery.Options{Delay: delay})
		if len(listings) == 0 {
			utils.Log.Warn("Discovery failed: no listings found for ", slug)
			return
		}

		for _, l := range listings {
			fmt.Printf("%s\t%s\t%s\n", l.ID, l.ShopSlug, l.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("shop", "s", "", "Shop URL or slug")
	scanCmd.Flags().StringP("token", "t", "", "Reverb API token (falls back to reverb.token in the config file)")
	scanCmd.Flags().IntP("delay", "d", 2, "Seconds to wait between requests (1-10)")
}
