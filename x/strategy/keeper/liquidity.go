package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/strategy/types"
)

// shareFloorDivisor sets the slice of the first liquidity mint that stays
// locked as the initial share floor.
const shareFloorDivisor = 1000

// deployLiquidity moves idle reference asset into the venue: the amount is
// split evenly across the bound tokens, swapped, and added as liquidity. The
// first mint locks a floor of shares that can never be withdrawn.
func (k *Keeper) deployLiquidity(ctx sdk.Context, strategy *types.Strategy, amount math.Int) error {
	if !strategy.Initialised {
		return types.ErrNotInitialised
	}
	if !strategy.Approved {
		return types.ErrNotApproved
	}
	if len(strategy.Tokens) == 0 {
		return types.ErrNoUnderlyingTokens
	}
	if amount.IsNil() || !amount.IsPositive() || amount.GT(strategy.Idle) {
		return types.ErrInsufficientBalance
	}

	account := types.StrategyAccount(strategy.StrategyID)
	n := int64(len(strategy.Tokens))
	slice := amount.Quo(math.NewInt(n))

	denoms := make([]string, len(strategy.Tokens))
	amounts := make([]math.Int, len(strategy.Tokens))
	spent := math.ZeroInt()
	for i, token := range strategy.Tokens {
		in := slice
		if i == len(strategy.Tokens)-1 {
			in = amount.Sub(spent)
		}
		spent = spent.Add(in)

		denoms[i] = token.Denom
		if token.Denom == strategy.ReferenceAsset {
			amounts[i] = in
			continue
		}
		out, err := k.venueKeeper.Swap(ctx, account, strategy.ReferenceAsset, token.Denom, in)
		if err != nil {
			return err
		}
		amounts[i] = out
	}

	shares, err := k.venueKeeper.AddLiquidity(ctx, account, denoms, amounts)
	if err != nil {
		return err
	}

	for i := range strategy.Tokens {
		strategy.Tokens[i].Balance = strategy.Tokens[i].Balance.Add(amounts[i])
	}
	if strategy.LiquidityShares.IsZero() && strategy.InitialShareFloor.IsZero() {
		strategy.InitialShareFloor = shares.Quo(math.NewInt(shareFloorDivisor))
	}
	strategy.LiquidityShares = strategy.LiquidityShares.Add(shares)
	strategy.Idle = strategy.Idle.Sub(amount)
	return nil
}

// removeLiquidity burns venue shares and swaps the freed tokens back into
// idle reference asset.
func (k *Keeper) removeLiquidity(ctx sdk.Context, strategy *types.Strategy, shares math.Int) error {
	if shares.IsNil() || !shares.IsPositive() || shares.GT(strategy.LiquidityShares) {
		return types.ErrInsufficientBalance
	}

	account := types.StrategyAccount(strategy.StrategyID)
	denoms := make([]string, len(strategy.Tokens))
	for i, token := range strategy.Tokens {
		denoms[i] = token.Denom
	}

	amounts, err := k.venueKeeper.RemoveLiquidity(ctx, account, shares, denoms)
	if err != nil {
		return err
	}

	for i, denom := range denoms {
		freed := amounts[i]
		if freed.GT(strategy.Tokens[i].Balance) {
			freed = strategy.Tokens[i].Balance
		}
		strategy.Tokens[i].Balance = strategy.Tokens[i].Balance.Sub(freed)

		if denom == strategy.ReferenceAsset {
			strategy.Idle = strategy.Idle.Add(amounts[i])
			continue
		}
		out, err := k.venueKeeper.Swap(ctx, account, denom, strategy.ReferenceAsset, amounts[i])
		if err != nil {
			return err
		}
		strategy.Idle = strategy.Idle.Add(out)
	}
	strategy.LiquidityShares = strategy.LiquidityShares.Sub(shares)
	return nil
}

// SetUnderlyingTokens configures the basket of a pair or dynamic strategy.
// Weighted strategies manage their basket through bind/unbind instead, and a
// deployed basket cannot be swapped out from under its liquidity.
func (k *Keeper) SetUnderlyingTokens(ctx sdk.Context, strategyID string, denoms []string) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if strategy.Variant == types.VariantWeighted {
		return types.ErrVariantMismatch
	}
	if strategy.Variant == types.VariantPair && len(denoms) != 2 {
		return types.ErrVariantMismatch
	}
	if len(denoms) == 0 {
		return types.ErrNoUnderlyingTokens
	}
	if strategy.LiquidityShares.IsPositive() {
		return types.ErrPoolExists
	}

	tokens := make([]types.BoundToken, len(denoms))
	for i, denom := range denoms {
		tokens[i] = types.BoundToken{
			Denom:   denom,
			Weight:  math.OneInt(),
			Balance: math.ZeroInt(),
		}
	}
	strategy.Tokens = tokens
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_set_underlying_tokens",
			sdk.NewAttribute("strategy_id", strategyID),
		),
	)
	return nil
}

// AddLiquidity deploys idle capital of a pair or dynamic strategy.
func (k *Keeper) AddLiquidity(ctx sdk.Context, strategyID string, amount math.Int) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if strategy.Variant == types.VariantWeighted {
		return types.ErrVariantMismatch
	}
	if err := k.deployLiquidity(ctx, strategy, amount); err != nil {
		return err
	}
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_add_liquidity",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// RemoveLiquidity unwinds venue shares of a pair or dynamic strategy back
// into idle capital. The initial share floor must survive the removal.
func (k *Keeper) RemoveLiquidity(ctx sdk.Context, strategyID string, shares math.Int) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if strategy.Variant == types.VariantWeighted {
		return types.ErrVariantMismatch
	}
	if shares.IsNil() || !shares.IsPositive() {
		return types.ErrInsufficientBalance
	}
	if strategy.LiquidityShares.Sub(shares).LT(strategy.InitialShareFloor) {
		return types.ErrShareFloor
	}
	if err := k.removeLiquidity(ctx, strategy, shares); err != nil {
		return err
	}
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_remove_liquidity",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("shares", shares.String()),
		),
	)
	return nil
}

// GetTokenNumbers returns the basket denoms and deployed balances.
func (k *Keeper) GetTokenNumbers(ctx sdk.Context, strategyID string) ([]string, []math.Int, error) {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return nil, nil, types.ErrStrategyNotFound
	}
	denoms := make([]string, len(strategy.Tokens))
	amounts := make([]math.Int, len(strategy.Tokens))
	for i, token := range strategy.Tokens {
		denoms[i] = token.Denom
		amounts[i] = token.Balance
	}
	return denoms, amounts, nil
}

// ExtractableUnderlyingNumber computes the basket slice a redemption of the
// given reference-asset value is entitled to. The slice is pro-rata against
// the same valuation Assets reports.
func (k *Keeper) ExtractableUnderlyingNumber(ctx sdk.Context, strategyID string, value math.Int) ([]string, []math.Int, error) {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return nil, nil, types.ErrStrategyNotFound
	}
	if value.IsNil() || !value.IsPositive() {
		return nil, nil, types.ErrInsufficientBalance
	}
	total := k.valuation(ctx, strategy)
	if !total.IsPositive() || value.GT(total) {
		return nil, nil, types.ErrInsufficientBalance
	}

	denoms := make([]string, len(strategy.Tokens))
	amounts := make([]math.Int, len(strategy.Tokens))
	for i, token := range strategy.Tokens {
		denoms[i] = token.Denom
		amounts[i] = token.Balance.Mul(value).Quo(total)
	}
	return denoms, amounts, nil
}

// PayOutUnderlying frees the requested basket amounts from the venue and
// sends them to the recipient.
func (k *Keeper) PayOutUnderlying(ctx sdk.Context, strategyID, recipient string, denoms []string, amounts []math.Int) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if len(denoms) != len(amounts) || len(denoms) == 0 {
		return types.ErrNoUnderlyingTokens
	}

	account := types.StrategyAccount(strategyID)

	// Burn the venue shares backing the payout, pro-rata on the first denom.
	if strategy.LiquidityShares.IsPositive() {
		if token, _ := strategy.Token(denoms[0]); token != nil && token.Balance.IsPositive() {
			sharesOut := strategy.LiquidityShares.Mul(amounts[0]).Quo(token.Balance)
			if sharesOut.GT(strategy.LiquidityShares) {
				sharesOut = strategy.LiquidityShares
			}
			if sharesOut.IsPositive() {
				if _, err := k.venueKeeper.RemoveLiquidity(ctx, account, sharesOut, denoms); err != nil {
					return err
				}
				strategy.LiquidityShares = strategy.LiquidityShares.Sub(sharesOut)
			}
		}
	}

	for i, denom := range denoms {
		if !amounts[i].IsPositive() {
			continue
		}
		if err := k.assetKeeper.Send(ctx, account, recipient, denom, amounts[i]); err != nil {
			return err
		}
		if token, idx := strategy.Token(denom); token != nil {
			reduced := amounts[i]
			if reduced.GT(token.Balance) {
				reduced = token.Balance
			}
			strategy.Tokens[idx].Balance = token.Balance.Sub(reduced)
		}
	}
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_pay_out_underlying",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("recipient", recipient),
		),
	)
	return nil
}
