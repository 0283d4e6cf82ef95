package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/kfund/x/strategy/types"
)

// GetTxCmd returns the transaction commands for the strategy module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "strategy",
		Short:                      "Strategy module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateStrategy(),
		CmdInitStrategy(),
		CmdApproveTokens(),
		CmdWithdraw(),
		CmdWithdrawAll(),
	)

	return cmd
}

// CmdCreateStrategy returns the command to create a strategy
func CmdCreateStrategy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [strategy-id] [variant] [reference-asset] [controller]",
		Short: "Create a strategy (variant: pair or weighted)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreateStrategy{
				Caller:         clientCtx.GetFromAddress().String(),
				StrategyID:     args[0],
				Variant:        args[1],
				ReferenceAsset: args[2],
				Controller:     args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdInitStrategy returns the command to activate a strategy
func CmdInitStrategy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [strategy-id]",
		Short: "Activate a created strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgInitStrategy{
				Caller:     clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApproveTokens returns the command to grant venue approvals
func CmdApproveTokens() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve-tokens [strategy-id]",
		Short: "Grant the trading venue spend approvals for the strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgApproveTokens{
				Caller:     clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns the command to withdraw idle strategy capital
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [strategy-id] [recipient] [amount]",
		Short: "Withdraw idle reference asset from a strategy",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdraw{
				Caller:     clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
				Recipient:  args[1],
				Amount:     args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawAll returns the command to unwind a strategy down to the share floor
func CmdWithdrawAll() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-all [strategy-id] [recipient]",
		Short: "Unwind deployed capital and withdraw everything above the share floor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdrawAll{
				Caller:     clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
				Recipient:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
