package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/strategy/types"
)

// Weighted-pool structural operations. The basket is managed token by token
// and the pool is seeded explicitly through NewPool.

// NewPool deploys a weighted strategy's idle capital as the pool's seed
// liquidity across its bound tokens.
func (k *Keeper) NewPool(ctx sdk.Context, strategyID string) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if strategy.Variant != types.VariantWeighted {
		return types.ErrVariantMismatch
	}
	if strategy.LiquidityShares.IsPositive() {
		return types.ErrPoolExists
	}
	if len(strategy.Tokens) < 2 {
		return types.ErrNoUnderlyingTokens
	}

	if err := k.deployLiquidity(ctx, strategy, strategy.Idle); err != nil {
		return err
	}
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	k.logger.Info("pool created",
		"strategy_id", strategyID,
		"shares", strategy.LiquidityShares.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_new_pool",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("shares", strategy.LiquidityShares.String()),
		),
	)
	return nil
}

// BindToken adds a token to a weighted strategy's basket.
func (k *Keeper) BindToken(ctx sdk.Context, strategyID, denom string, weight math.Int) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if strategy.Variant != types.VariantWeighted {
		return types.ErrVariantMismatch
	}
	if strategy.HasToken(denom) {
		return types.ErrTokenBound
	}
	if weight.IsNil() || !weight.IsPositive() {
		return types.ErrVariantMismatch
	}

	strategy.Tokens = append(strategy.Tokens, types.BoundToken{
		Denom:   denom,
		Weight:  weight,
		Balance: math.ZeroInt(),
	})
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_bind_token",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("weight", weight.String()),
		),
	)
	return nil
}

// UnbindToken removes a token from the basket, swapping any deployed balance
// back to idle reference asset first.
func (k *Keeper) UnbindToken(ctx sdk.Context, strategyID, denom string) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if strategy.Variant != types.VariantWeighted {
		return types.ErrVariantMismatch
	}
	token, idx := strategy.Token(denom)
	if token == nil {
		return types.ErrTokenNotBound
	}

	if token.Balance.IsPositive() && denom != strategy.ReferenceAsset {
		out, err := k.venueKeeper.Swap(ctx, types.StrategyAccount(strategyID),
			denom, strategy.ReferenceAsset, token.Balance)
		if err != nil {
			return err
		}
		strategy.Idle = strategy.Idle.Add(out)
	} else if token.Balance.IsPositive() {
		strategy.Idle = strategy.Idle.Add(token.Balance)
	}

	strategy.Tokens = append(strategy.Tokens[:idx], strategy.Tokens[idx+1:]...)
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_unbind_token",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("denom", denom),
		),
	)
	return nil
}

// RebindToken updates the weight of a bound token.
func (k *Keeper) RebindToken(ctx sdk.Context, strategyID, denom string, weight math.Int) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if strategy.Variant != types.VariantWeighted {
		return types.ErrVariantMismatch
	}
	token, idx := strategy.Token(denom)
	if token == nil {
		return types.ErrTokenNotBound
	}
	if weight.IsNil() || !weight.IsPositive() {
		return types.ErrVariantMismatch
	}

	strategy.Tokens[idx].Weight = weight
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_rebind_token",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("weight", weight.String()),
		),
	)
	return nil
}
