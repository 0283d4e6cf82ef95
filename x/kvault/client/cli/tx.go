package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/kfund/x/kvault/types"
)

// GetTxCmd returns the transaction commands for the kvault module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "kvault",
		Short:                      "Kvault module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdInitVault(),
		CmdJoinPool(),
		CmdExitPool(),
		CmdExitPoolOfUnderlying(),
		CmdSetFee(),
		CmdTransferShares(),
		CmdChargeManagementFee(),
		CmdChargePerformanceFee(),
	)

	return cmd
}

// CmdInitVault returns the command to initialise a vault
func CmdInitVault() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-vault [vault-id] [name] [symbol] [reference-asset]",
		Short: "Initialise a vault",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgInitVault{
				Authority:      clientCtx.GetFromAddress().String(),
				VaultID:        args[0],
				Name:           args[1],
				Symbol:         args[2],
				ReferenceAsset: args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdJoinPool returns the command to deposit into a vault
func CmdJoinPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join-pool [vault-id] [amount]",
		Short: "Deposit reference asset for vault shares",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgJoinPool{
				Depositor: clientCtx.GetFromAddress().String(),
				VaultID:   args[0],
				Amount:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdExitPool returns the command to redeem vault shares
func CmdExitPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit-pool [vault-id] [shares]",
		Short: "Redeem vault shares for reference asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgExitPool{
				Holder:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				Shares:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdExitPoolOfUnderlying returns the command to redeem shares in kind
func CmdExitPoolOfUnderlying() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit-pool-underlying [vault-id] [shares]",
		Short: "Redeem vault shares for the strategy's underlying basket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgExitPoolOfUnderlying{
				Holder:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				Shares:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetFee returns the command to configure a vault fee
func CmdSetFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-fee [vault-id] [kind] [numerator] [denominator] [cap]",
		Short: "Configure a vault fee (kind: 0=join 1=exit 2=management 3=performance)",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			kind, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid fee kind: %v", err)
			}

			msg := &types.MsgSetFee{
				Authority:   clientCtx.GetFromAddress().String(),
				VaultID:     args[0],
				Kind:        int32(kind),
				Numerator:   args[2],
				Denominator: args[3],
				Cap:         args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferShares returns the command to transfer vault shares
func CmdTransferShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-shares [vault-id] [to] [amount]",
		Short: "Transfer vault shares to another account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferShares{
				From:    clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				To:      args[1],
				Amount:  args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdChargeManagementFee returns the command to charge the management fee
func CmdChargeManagementFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charge-management-fee [vault-id]",
		Short: "Charge the accrued management fee on a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgChargeManagementFee{
				Caller:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdChargePerformanceFee returns the command to charge a holder's performance fee
func CmdChargePerformanceFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charge-performance-fee [vault-id] [holder]",
		Short: "Charge the performance fee on a holder's gain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgChargePerformanceFee{
				Caller:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				Holder:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
