package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/synthswap/types"
)

// SwapInto commits source asset into the arena and opens a ticket. The
// settled amount recorded now is the oracle estimate; it is finalized when
// the ticket resolves.
func (k *Keeper) SwapInto(ctx sdk.Context, owner, sourceAsset, destAsset string, amountIn math.Int) (uint64, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return 0, types.ErrInsufficientBalance
	}
	if k.assetKeeper.Balance(ctx, owner, sourceAsset).LT(amountIn) {
		return 0, types.ErrInsufficientBalance
	}

	if err := k.assetKeeper.Send(ctx, owner, types.ArenaAccount, sourceAsset, amountIn); err != nil {
		return 0, err
	}

	now := ctx.BlockTime().Unix()
	ticket := &types.Ticket{
		TicketID:          k.nextTicketID(ctx),
		Owner:             owner,
		SourceAsset:       sourceAsset,
		DestAsset:         destAsset,
		AmountCommitted:   amountIn,
		AmountSettled:     k.oracleKeeper.Value(ctx, sourceAsset, amountIn, destAsset),
		Status:            types.TicketStatusCommitted,
		CreatedAt:         now,
		MaxSettlementTime: now + k.GetSettleWaitSeconds(ctx),
	}
	k.SetTicket(ctx, ticket)

	k.logger.Info("ticket opened",
		"ticket_id", ticket.TicketID,
		"owner", owner,
		"source_asset", sourceAsset,
		"dest_asset", destAsset,
		"amount_in", amountIn.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("synthswap_commit",
			sdk.NewAttribute("ticket_id", math.NewIntFromUint64(ticket.TicketID).String()),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("source_asset", sourceAsset),
			sdk.NewAttribute("dest_asset", destAsset),
			sdk.NewAttribute("amount_in", amountIn.String()),
		),
	)
	return ticket.TicketID, nil
}

// resolveIfReady finalizes the settled amount on first access after the gate.
func (k *Keeper) resolveIfReady(ctx sdk.Context, ticket *types.Ticket) {
	if ticket.Status != types.TicketStatusCommitted {
		return
	}
	if !ticket.Ready(ctx.BlockTime().Unix()) {
		return
	}
	ticket.AmountSettled = k.oracleKeeper.Value(ctx, ticket.SourceAsset, ticket.AmountCommitted, ticket.DestAsset)
	ticket.Status = types.TicketStatusResolved
	k.SetTicket(ctx, ticket)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("synthswap_resolve",
			sdk.NewAttribute("ticket_id", math.NewIntFromUint64(ticket.TicketID).String()),
			sdk.NewAttribute("amount_settled", ticket.AmountSettled.String()),
		),
	)
}

// EstimateSettled returns the current settled amount of a ticket: a
// best-effort estimate before the gate, final afterward.
func (k *Keeper) EstimateSettled(ctx sdk.Context, id uint64) (math.Int, error) {
	ticket := k.GetTicket(ctx, id)
	if ticket == nil {
		return math.ZeroInt(), types.ErrTicketNotFound
	}
	k.resolveIfReady(ctx, ticket)
	if ticket.Status == types.TicketStatusCommitted {
		return k.oracleKeeper.Value(ctx, ticket.SourceAsset, ticket.AmountCommitted, ticket.DestAsset), nil
	}
	return ticket.AmountSettled, nil
}

// SwapFrom realizes a resolved ticket, crediting the owner with the settled
// destination amount. Consumed is terminal; the ticket stays in the arena.
func (k *Keeper) SwapFrom(ctx sdk.Context, owner string, id uint64, destAsset string) (math.Int, error) {
	ticket := k.GetTicket(ctx, id)
	if ticket == nil {
		return math.ZeroInt(), types.ErrTicketNotFound
	}
	if ticket.Owner != owner {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	if ticket.DestAsset != destAsset {
		return math.ZeroInt(), types.ErrAssetMismatch
	}
	if ticket.Status == types.TicketStatusConsumed {
		return math.ZeroInt(), types.ErrTicketAlreadyConsumed
	}

	k.resolveIfReady(ctx, ticket)
	if ticket.Status != types.TicketStatusResolved {
		return math.ZeroInt(), types.ErrTicketNotReady
	}

	if ticket.AmountSettled.IsPositive() {
		if err := k.assetKeeper.Send(ctx, types.ArenaAccount, owner, destAsset, ticket.AmountSettled); err != nil {
			return math.ZeroInt(), err
		}
	}
	ticket.Status = types.TicketStatusConsumed
	k.SetTicket(ctx, ticket)

	k.logger.Info("ticket consumed",
		"ticket_id", id,
		"owner", owner,
		"amount_settled", ticket.AmountSettled.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("synthswap_settle",
			sdk.NewAttribute("ticket_id", math.NewIntFromUint64(id).String()),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("amount_settled", ticket.AmountSettled.String()),
		),
	)
	return ticket.AmountSettled, nil
}
