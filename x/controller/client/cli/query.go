package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the controller module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "controller",
		Short:                      "Querying commands for the controller module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryBinding(),
		CmdQueryExecRecords(),
	)

	return cmd
}

// CmdQueryBinding returns the command to query a vault's binding
func CmdQueryBinding() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "binding [vault-id]",
		Short: "Query the strategy bound to a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Binding query requires running node connection")
			fmt.Println("Use REST API: GET /kfund/controller/v1/binding/{vault_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryExecRecords returns the command to query a strategy's exec audit log
func CmdQueryExecRecords() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec-records [strategy-id]",
		Short: "Query the exec audit log of a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Exec record query requires running node connection")
			fmt.Println("Use REST API: GET /kfund/controller/v1/exec-records/{strategy_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
