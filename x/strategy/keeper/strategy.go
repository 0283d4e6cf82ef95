package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/strategy/types"
)

// CreateStrategy records a new strategy shell. Governance or strategist only;
// the controller account it names is the only caller allowed to initialise
// and drive it afterwards.
func (k *Keeper) CreateStrategy(ctx sdk.Context, caller, strategyID string, variant types.Variant, referenceAsset, controller string) error {
	if !k.govKeeper.IsGovernance(ctx, caller) && !k.govKeeper.IsStrategist(ctx, caller) {
		return types.ErrUnauthorized
	}
	if !variant.Valid() {
		return types.ErrVariantMismatch
	}
	if k.GetStrategy(ctx, strategyID) != nil {
		return types.ErrAlreadyExists
	}

	strategy := types.NewStrategy(strategyID, variant, referenceAsset, controller, ctx.BlockTime())
	k.SetStrategy(ctx, strategy)

	k.logger.Info("strategy created",
		"strategy_id", strategyID,
		"variant", string(variant),
		"controller", controller,
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_create",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("variant", string(variant)),
		),
	)
	return nil
}

// getForController loads a strategy and checks the caller is its controller.
func (k *Keeper) getForController(ctx sdk.Context, caller, strategyID string) (*types.Strategy, error) {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return nil, types.ErrStrategyNotFound
	}
	if caller != strategy.Controller {
		return nil, types.ErrNotController
	}
	return strategy, nil
}

// Init activates a strategy once. Controller-gated.
func (k *Keeper) Init(ctx sdk.Context, caller, strategyID string) error {
	strategy, err := k.getForController(ctx, caller, strategyID)
	if err != nil {
		return err
	}
	if strategy.Initialised {
		return types.ErrAlreadyInitialised
	}

	strategy.Initialised = true
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	k.logger.Info("strategy initialised", "strategy_id", strategyID)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_init",
			sdk.NewAttribute("strategy_id", strategyID),
		),
	)
	return nil
}

// ApproveTokens grants the venue spend rights over the strategy's tokens.
// Must follow Init.
func (k *Keeper) ApproveTokens(ctx sdk.Context, caller, strategyID string) error {
	strategy, err := k.getForController(ctx, caller, strategyID)
	if err != nil {
		return err
	}
	if !strategy.Initialised {
		return types.ErrNotInitialised
	}

	strategy.Approved = true
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_approve_tokens",
			sdk.NewAttribute("strategy_id", strategyID),
		),
	)
	return nil
}

// Assets values the strategy in its reference asset: deployed token balances
// at oracle prices plus idle cash. ExtractableUnderlyingNumber prices against
// the same path so basket redemptions cannot drift from this.
func (k *Keeper) Assets(ctx sdk.Context, strategyID string) (math.Int, error) {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return math.ZeroInt(), types.ErrStrategyNotFound
	}
	return k.valuation(ctx, strategy), nil
}

func (k *Keeper) valuation(ctx sdk.Context, strategy *types.Strategy) math.Int {
	total := strategy.Idle
	for _, token := range strategy.Tokens {
		if !token.Balance.IsPositive() {
			continue
		}
		total = total.Add(k.oracleKeeper.Value(ctx, token.Denom, token.Balance, strategy.ReferenceAsset))
	}
	return total
}

// Available returns the undeployed reference-asset balance.
func (k *Keeper) Available(ctx sdk.Context, strategyID string) (math.Int, error) {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return math.ZeroInt(), types.ErrStrategyNotFound
	}
	return strategy.Idle, nil
}

// Invest books reference asset the controller moved onto the strategy
// account. The capital stays idle until deployed.
func (k *Keeper) Invest(ctx sdk.Context, strategyID string, amount math.Int) error {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return types.ErrStrategyNotFound
	}
	if !strategy.Initialised {
		return types.ErrNotInitialised
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInsufficientBalance
	}

	strategy.Idle = strategy.Idle.Add(amount)
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	k.logger.Info("capital received", "strategy_id", strategyID, "amount", amount.String())
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_invest",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// Withdraw pays idle reference asset out of the strategy account.
// Controller-gated.
func (k *Keeper) Withdraw(ctx sdk.Context, caller, strategyID, recipient string, amount math.Int) error {
	strategy, err := k.getForController(ctx, caller, strategyID)
	if err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() || amount.GT(strategy.Idle) {
		return types.ErrInsufficientBalance
	}

	if err := k.assetKeeper.Send(ctx, types.StrategyAccount(strategyID), recipient,
		strategy.ReferenceAsset, amount); err != nil {
		return err
	}
	strategy.Idle = strategy.Idle.Sub(amount)
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_withdraw",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("recipient", recipient),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// WithdrawAll unwinds every withdrawable position into reference asset and
// pays it out. Liquidity at or below the initial share floor cannot be
// unwound.
func (k *Keeper) WithdrawAll(ctx sdk.Context, caller, strategyID, recipient string) (math.Int, error) {
	strategy, err := k.getForController(ctx, caller, strategyID)
	if err != nil {
		return math.ZeroInt(), err
	}
	if strategy.LiquidityShares.IsPositive() {
		if strategy.LiquidityShares.LTE(strategy.InitialShareFloor) {
			return math.ZeroInt(), types.ErrShareFloor
		}
		removable := strategy.LiquidityShares.Sub(strategy.InitialShareFloor)
		if err := k.removeLiquidity(ctx, strategy, removable); err != nil {
			return math.ZeroInt(), err
		}
	}

	total := strategy.Idle
	if total.IsPositive() {
		if err := k.assetKeeper.Send(ctx, types.StrategyAccount(strategyID), recipient,
			strategy.ReferenceAsset, total); err != nil {
			return math.ZeroInt(), err
		}
		strategy.Idle = math.ZeroInt()
	}
	strategy.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, strategy)

	k.logger.Info("withdrew all", "strategy_id", strategyID, "amount", total.String())
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_withdraw_all",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("recipient", recipient),
			sdk.NewAttribute("amount", total.String()),
		),
	)
	return total, nil
}

// Harvest collects pending venue yield, swaps it into reference asset when
// the venue paid in another denom, and sends the proceeds to the recipient.
// The returned amount is always in reference-asset terms. With nothing
// pending it is a no-op, so repeated calls are safe.
func (k *Keeper) Harvest(ctx sdk.Context, strategyID, recipient string) (math.Int, error) {
	strategy := k.GetStrategy(ctx, strategyID)
	if strategy == nil {
		return math.ZeroInt(), types.ErrStrategyNotFound
	}

	account := types.StrategyAccount(strategyID)
	yield, denom, err := k.venueKeeper.CollectYield(ctx, account, account)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !yield.IsPositive() {
		return math.ZeroInt(), nil
	}
	if denom != strategy.ReferenceAsset {
		yield, err = k.venueKeeper.Swap(ctx, account, denom, strategy.ReferenceAsset, yield)
		if err != nil {
			return math.ZeroInt(), err
		}
	}
	if err := k.assetKeeper.Send(ctx, account, recipient, strategy.ReferenceAsset, yield); err != nil {
		return math.ZeroInt(), err
	}

	k.logger.Info("yield harvested",
		"strategy_id", strategyID,
		"yield_denom", denom,
		"yield", yield.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("strategy_harvest",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("yield", yield.String()),
		),
	)
	return yield, nil
}
