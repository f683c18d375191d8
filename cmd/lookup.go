package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/mandi-advisor/internal/advisory"
	"github.com/sells-group/mandi-advisor/internal/history"
)

var filtersDistrict string

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Print the district → market → commodity index",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		if filtersDistrict == "" {
			return printJSON(cmd, env.Filters)
		}
		markets := env.Filters.Markets(filtersDistrict)
		if markets == nil {
			return eris.Errorf("filters: unknown district %q", filtersDistrict)
		}
		return printJSON(cmd, markets)
	},
}

var (
	priceMarket string
	priceCrop   string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Resolve the current price for a market and crop",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		return printJSON(cmd, env.Prices.Resolve(cmd.Context(), priceMarket, priceCrop))
	},
}

var (
	historyCrop  string
	historyMandi string
	historyDays  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print a daily OHLC price series for a crop",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		return printJSON(cmd, env.History.Resolve(cmd.Context(), historyCrop, historyMandi, historyDays))
	},
}

var adviseReq advisory.Request

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Build a full advisory (price, weather, Marathi advice and audio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		return printJSON(cmd, env.Advisory.Get(cmd.Context(), adviseReq))
	},
}

func init() {
	filtersCmd.Flags().StringVar(&filtersDistrict, "district", "", "only list markets for this district")

	priceCmd.Flags().StringVar(&priceMarket, "market", "", "market (mandi) name")
	priceCmd.Flags().StringVar(&priceCrop, "crop", "", "commodity name")
	_ = priceCmd.MarkFlagRequired("market")
	_ = priceCmd.MarkFlagRequired("crop")

	historyCmd.Flags().StringVar(&historyCrop, "crop", "", "commodity name")
	historyCmd.Flags().StringVar(&historyMandi, "mandi", "", "market name (optional)")
	historyCmd.Flags().IntVar(&historyDays, "days", history.DefaultDays, "number of days")
	_ = historyCmd.MarkFlagRequired("crop")

	adviseCmd.Flags().StringVar(&adviseReq.District, "district", "", "district name")
	adviseCmd.Flags().StringVar(&adviseReq.Taluka, "taluka", "", "taluka name (optional)")
	adviseCmd.Flags().StringVar(&adviseReq.Market, "market", "", "market name (optional)")
	adviseCmd.Flags().StringVar(&adviseReq.Crop, "crop", "", "commodity name (default from config)")
	_ = adviseCmd.MarkFlagRequired("district")

	rootCmd.AddCommand(filtersCmd, priceCmd, historyCmd, adviseCmd)
}
