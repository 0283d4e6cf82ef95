package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/controller/types"
	kvaulttypes "github.com/openalpha/kfund/x/kvault/types"
	strategytypes "github.com/openalpha/kfund/x/strategy/types"
)

// BindVault pairs a vault with a registered strategy, pulls the seed capital
// and opens the one-shot miner-fee window.
func (k *Keeper) BindVault(ctx sdk.Context, caller, vaultID, strategyID string, initialAmount, maxFee math.Int) error {
	if !k.isOperator(ctx, caller) {
		return types.ErrUnauthorized
	}
	if !k.IsRegistered(ctx, strategyID) {
		return types.ErrBindingViolation
	}
	if k.GetBinding(ctx, vaultID) != nil {
		return types.ErrBindingViolation
	}
	if _, bound := k.BoundVault(ctx, strategyID); bound {
		return types.ErrBindingViolation
	}
	if maxFee.IsNil() || maxFee.IsNegative() {
		return types.ErrExceedsMaxFee
	}

	if initialAmount.IsPositive() {
		if err := k.vaultKeeper.TransferCash(ctx, types.ControllerAccount, vaultID,
			strategytypes.StrategyAccount(strategyID), initialAmount); err != nil {
			return err
		}
		if err := k.strategyKeeper.Invest(ctx, strategyID, initialAmount); err != nil {
			return err
		}
	}

	binding := &types.Binding{
		VaultID:           vaultID,
		StrategyID:        strategyID,
		MaxFee:            maxFee,
		WithdrawFeeStatus: maxFee.IsPositive(),
		BoundAt:           ctx.BlockTime().Unix(),
	}
	k.setBinding(ctx, binding)

	if err := k.refreshStrategyAssets(ctx, vaultID, strategyID); err != nil {
		return err
	}

	k.logger.Info("vault bound",
		"vault_id", vaultID,
		"strategy_id", strategyID,
		"initial_amount", initialAmount.String(),
		"max_fee", maxFee.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("controller_bind_vault",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("initial_amount", initialAmount.String()),
			sdk.NewAttribute("max_fee", maxFee.String()),
		),
	)
	return nil
}

// refreshStrategyAssets re-reads the strategy valuation into the vault's
// deployed-value leg.
func (k *Keeper) refreshStrategyAssets(ctx sdk.Context, vaultID, strategyID string) error {
	value, err := k.strategyKeeper.Assets(ctx, strategyID)
	if err != nil {
		return err
	}
	return k.vaultKeeper.SetStrategyAssets(ctx, vaultID, value)
}

// Invest routes vault cash into the bound strategy.
func (k *Keeper) Invest(ctx sdk.Context, caller, vaultID string, amount math.Int) error {
	if !k.isOperator(ctx, caller) {
		return types.ErrUnauthorized
	}
	binding := k.GetBinding(ctx, vaultID)
	if binding == nil {
		return types.ErrBindingViolation
	}

	if err := k.vaultKeeper.TransferCash(ctx, types.ControllerAccount, vaultID,
		strategytypes.StrategyAccount(binding.StrategyID), amount); err != nil {
		return err
	}
	if err := k.strategyKeeper.Invest(ctx, binding.StrategyID, amount); err != nil {
		return err
	}
	if err := k.refreshStrategyAssets(ctx, vaultID, binding.StrategyID); err != nil {
		return err
	}

	k.logger.Info("invested",
		"vault_id", vaultID,
		"strategy_id", binding.StrategyID,
		"amount", amount.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("controller_invest",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("strategy_id", binding.StrategyID),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// Harvest realizes yield for a strategy-initiated request. The strategy must
// be the bound counterpart of the vault it names.
func (k *Keeper) Harvest(ctx sdk.Context, strategyID, vaultID string) (math.Int, error) {
	boundVault, ok := k.BoundVault(ctx, strategyID)
	if !ok || boundVault != vaultID {
		return math.ZeroInt(), types.ErrSenderNotVault
	}
	return k.harvest(ctx, vaultID, strategyID)
}

// HarvestAll realizes yield on a vault's bound strategy. Operator-gated.
func (k *Keeper) HarvestAll(ctx sdk.Context, caller, vaultID string) (math.Int, error) {
	if !k.isOperator(ctx, caller) {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	binding := k.GetBinding(ctx, vaultID)
	if binding == nil {
		return math.ZeroInt(), types.ErrBindingViolation
	}
	return k.harvest(ctx, vaultID, binding.StrategyID)
}

func (k *Keeper) harvest(ctx sdk.Context, vaultID, strategyID string) (math.Int, error) {
	yield, err := k.strategyKeeper.Harvest(ctx, strategyID, kvaulttypes.VaultAccount(vaultID))
	if err != nil {
		return math.ZeroInt(), err
	}
	if yield.IsPositive() {
		if err := k.vaultKeeper.CreditCash(ctx, vaultID, yield); err != nil {
			return math.ZeroInt(), err
		}
	}
	if err := k.refreshStrategyAssets(ctx, vaultID, strategyID); err != nil {
		return math.ZeroInt(), err
	}

	k.logger.Info("harvested",
		"vault_id", vaultID,
		"strategy_id", strategyID,
		"yield", yield.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("controller_harvest",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("yield", yield.String()),
		),
	)
	return yield, nil
}

// WithdrawMinnerFee draws the one-shot setup fee from vault cash into the fee
// sink. The window closes permanently on first use.
func (k *Keeper) WithdrawMinnerFee(ctx sdk.Context, caller, vaultID string, amount math.Int) error {
	if !k.isOperator(ctx, caller) {
		return types.ErrUnauthorized
	}
	binding := k.GetBinding(ctx, vaultID)
	if binding == nil || !binding.MaxFee.IsPositive() {
		return types.ErrMaxFeeZero
	}
	if !binding.WithdrawFeeStatus {
		return types.ErrAlreadyExtracted
	}
	if amount.IsNil() || amount.IsNegative() || amount.GT(binding.MaxFee) {
		return types.ErrExceedsMaxFee
	}

	if amount.IsPositive() {
		if err := k.vaultKeeper.TransferCash(ctx, types.ControllerAccount, vaultID,
			kvaulttypes.FeeCollector, amount); err != nil {
			return err
		}
	}
	binding.WithdrawFeeStatus = false
	k.setBinding(ctx, binding)

	k.logger.Info("miner fee withdrawn",
		"vault_id", vaultID,
		"amount", amount.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("controller_withdraw_miner_fee",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}
