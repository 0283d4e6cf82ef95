package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the synthswap module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "synthswap",
		Short:                      "Querying commands for the synthswap module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryTicket(),
		CmdQueryTickets(),
	)

	return cmd
}

// CmdQueryTicket returns the command to query one settlement ticket
func CmdQueryTicket() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket [ticket-id]",
		Short: "Query a settlement ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Ticket query requires running node connection")
			fmt.Println("Use REST API: GET /kfund/synthswap/v1/ticket/{ticket_id}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryTickets returns the command to query an owner's tickets
func CmdQueryTickets() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets [owner]",
		Short: "Query all settlement tickets of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Ticket query requires running node connection")
			fmt.Println("Use REST API: GET /kfund/synthswap/v1/tickets/{owner}")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
