package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/kfund/x/synthswap/types"
)

// GetTxCmd returns the transaction commands for the synthswap module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "synthswap",
		Short:                      "Synthswap module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdSwapInto(),
		CmdSwapFrom(),
	)

	return cmd
}

// CmdSwapInto returns the command to open a settlement ticket
func CmdSwapInto() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-into [source-asset] [dest-asset] [amount-in]",
		Short: "Commit source asset and open a settlement ticket",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSwapInto{
				Owner:       clientCtx.GetFromAddress().String(),
				SourceAsset: args[0],
				DestAsset:   args[1],
				AmountIn:    args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwapFrom returns the command to settle a matured ticket
func CmdSwapFrom() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-from [ticket-id] [dest-asset]",
		Short: "Settle a matured ticket and collect the destination asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			ticketID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id: %v", err)
			}

			msg := &types.MsgSwapFrom{
				Owner:     clientCtx.GetFromAddress().String(),
				TicketID:  ticketID,
				DestAsset: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
