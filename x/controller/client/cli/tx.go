package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/kfund/x/controller/types"
)

// GetTxCmd returns the transaction commands for the controller module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "controller",
		Short:                      "Controller module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdRegister(),
		CmdBindVault(),
		CmdInvest(),
		CmdHarvestAll(),
		CmdExec(),
		CmdWithdrawMinnerFee(),
	)

	return cmd
}

// CmdRegister returns the command to register a strategy
func CmdRegister() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [strategy-id] [strategist]",
		Short: "Register a strategy with the controller (strategist: true or false)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			strategist, err := strconv.ParseBool(args[1])
			if err != nil {
				return err
			}

			msg := &types.MsgRegister{
				Caller:     clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
				Strategist: strategist,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdBindVault returns the command to bind a vault to a strategy
func CmdBindVault() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bind-vault [vault-id] [strategy-id] [initial-amount] [max-fee]",
		Short: "Bind a vault to a registered strategy with seed capital",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgBindVault{
				Caller:        clientCtx.GetFromAddress().String(),
				VaultID:       args[0],
				StrategyID:    args[1],
				InitialAmount: args[2],
				MaxFee:        args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdInvest returns the command to route vault cash into its strategy
func CmdInvest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invest [vault-id] [amount]",
		Short: "Route vault cash into the bound strategy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgInvest{
				Caller:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				Amount:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdHarvestAll returns the command to realize yield on a vault
func CmdHarvestAll() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest-all [vault-id]",
		Short: "Realize pending yield on the vault's bound strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgHarvestAll{
				Caller:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdExec returns the command to forward a typed command to a strategy
func CmdExec() *cobra.Command {
	var (
		denom      string
		denoms     string
		weight     string
		amount     string
		pullAmount string
	)

	cmd := &cobra.Command{
		Use:   "exec [strategy-id] [kind]",
		Short: "Forward a typed command to a strategy",
		Long: strings.TrimSpace(`
Forward a typed command to a strategy. Supported kinds:
new_pool, bind_token, unbind_token, rebind_token,
set_underlying_tokens, add_liquidity, remove_liquidity.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgExec{
				Caller:     clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
				Kind:       args[1],
				Denom:      denom,
				Weight:     weight,
				Amount:     amount,
				PullAmount: pullAmount,
			}
			if denoms != "" {
				msg.Denoms = strings.Split(denoms, ",")
			}
			if pullAmount != "" {
				msg.PullFromVault = true
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().StringVar(&denom, "denom", "", "token denom for bind/unbind/rebind commands")
	cmd.Flags().StringVar(&denoms, "denoms", "", "comma-separated denoms for set_underlying_tokens")
	cmd.Flags().StringVar(&weight, "weight", "", "token weight for bind/rebind commands")
	cmd.Flags().StringVar(&amount, "amount", "", "amount for liquidity commands")
	cmd.Flags().StringVar(&pullAmount, "pull-amount", "", "vault cash to pull before executing")

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawMinnerFee returns the command to draw the one-shot setup fee
func CmdWithdrawMinnerFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-minner-fee [vault-id] [amount]",
		Short: "Draw the one-shot setup fee from vault cash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdrawMinnerFee{
				Caller:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				Amount:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
