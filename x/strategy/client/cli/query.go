package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the strategy module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "strategy",
		Short:                      "Querying commands for the strategy module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryStrategy(),
		CmdQueryAssets(),
	)

	return cmd
}

// CmdQueryStrategy returns the command to query a strategy
func CmdQueryStrategy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy [strategy-id]",
		Short: "Query strategy state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Strategy query requires running node connection")
			fmt.Println("Use REST API: GET /kfund/strategy/v1/strategy/{strategy_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryAssets returns the command to query a strategy's valuation
func CmdQueryAssets() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets [strategy-id]",
		Short: "Query a strategy's total valuation in its reference asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Asset query requires running node connection")
			fmt.Println("Use REST API: GET /kfund/strategy/v1/assets/{strategy_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
