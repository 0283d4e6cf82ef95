package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/kvault/types"
)

// InitVault creates a vault. A vault id can only be initialised once.
func (k *Keeper) InitVault(ctx sdk.Context, caller, vaultID, name, symbol, referenceAsset string) error {
	if !k.govKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	if k.GetVault(ctx, vaultID) != nil {
		return types.ErrAlreadyInitialised
	}

	vault := types.NewVault(vaultID, name, symbol, referenceAsset, ctx.BlockTime())
	k.SetVault(ctx, vault)

	k.logger.Info("vault initialised",
		"vault_id", vaultID,
		"symbol", symbol,
		"reference_asset", referenceAsset,
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_init",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("name", name),
			sdk.NewAttribute("symbol", symbol),
			sdk.NewAttribute("reference_asset", referenceAsset),
		),
	)
	return nil
}

// SetController assigns the controller account once. Governance-only.
func (k *Keeper) SetController(ctx sdk.Context, caller, vaultID, controller string) error {
	if !k.govKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if vault.Controller != "" {
		return types.ErrControllerSet
	}

	vault.Controller = controller
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)

	k.logger.Info("controller set", "vault_id", vaultID, "controller", controller)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_set_controller",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("controller", controller),
		),
	)
	return nil
}

// JoinPool deposits reference asset and mints shares at the pre-deposit NAV.
// The join fee is taken out of the minted shares.
func (k *Keeper) JoinPool(ctx sdk.Context, vaultID, depositor string, amount math.Int) (math.Int, error) {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientBalance
	}
	if k.assetKeeper.Balance(ctx, depositor, vault.ReferenceAsset).LT(amount) {
		return math.ZeroInt(), types.ErrInsufficientBalance
	}

	grossShares := vault.CalcTokenToKf(amount)
	feeShares := k.GetFee(ctx, vaultID, types.FeeJoin).CalcFee(grossShares)

	if err := k.assetKeeper.Send(ctx, depositor, types.VaultAccount(vaultID), vault.ReferenceAsset, amount); err != nil {
		return math.ZeroInt(), err
	}
	vault.Cash = vault.Cash.Add(amount)
	k.mintShares(ctx, vault, depositor, grossShares)
	k.chargeFeeShares(ctx, vault, depositor, types.FeeJoin, feeShares)
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)

	netShares := grossShares.Sub(feeShares)
	// Advance the performance watermark by the deposit's value so principal
	// never counts as gain.
	mark := k.GetHighWaterMark(ctx, vaultID, depositor)
	k.setHighWaterMark(ctx, vaultID, depositor, mark.Add(vault.CalcKfToToken(netShares)))
	k.logger.Info("join pool",
		"vault_id", vaultID,
		"depositor", depositor,
		"amount", amount.String(),
		"shares", netShares.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_join",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("depositor", depositor),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("shares", netShares.String()),
			sdk.NewAttribute("fee_shares", feeShares.String()),
		),
	)
	return netShares, nil
}

// exitShares runs the common exit gating and fee path. It deducts the exit
// fee from the share amount first, then charges the vault-wide management
// dilution, and returns the net shares to redeem. The caller converts the net
// shares, burns them and persists vault.
func (k *Keeper) exitShares(ctx sdk.Context, vault *types.Vault, holder string, shares math.Int) (math.Int, error) {
	if shares.IsNil() || !shares.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientBalance
	}
	if k.GetBalance(ctx, vault.VaultID, holder).LT(shares) {
		return math.ZeroInt(), types.ErrInsufficientBalance
	}

	feeShares := k.GetFee(ctx, vault.VaultID, types.FeeExit).CalcFee(shares)
	k.chargeFeeShares(ctx, vault, holder, types.FeeExit, feeShares)
	k.chargeManagementFee(ctx, vault)

	return shares.Sub(feeShares), nil
}

// ExitPool burns shares and pays out reference asset at the post-fee NAV.
// Payouts come from vault cash only: a redemption worth more than the cash on
// hand fails, and the holder either exits in smaller slices or takes the
// deployed value in kind through ExitPoolOfUnderlying.
func (k *Keeper) ExitPool(ctx sdk.Context, vaultID, holder string, shares math.Int) (math.Int, error) {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	netShares, err := k.exitShares(ctx, vault, holder, shares)
	if err != nil {
		return math.ZeroInt(), err
	}

	tokenOut := vault.CalcKfToToken(netShares)
	if tokenOut.GT(vault.Cash) {
		return math.ZeroInt(), types.ErrInsufficientBalance
	}
	k.burnShares(ctx, vault, holder, netShares)
	vault.Cash = vault.Cash.Sub(tokenOut)
	if err := k.assetKeeper.Send(ctx, types.VaultAccount(vaultID), holder, vault.ReferenceAsset, tokenOut); err != nil {
		return math.ZeroInt(), err
	}
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)

	k.logger.Info("exit pool",
		"vault_id", vaultID,
		"holder", holder,
		"shares", shares.String(),
		"token_out", tokenOut.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_exit",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("token_out", tokenOut.String()),
		),
	)
	return tokenOut, nil
}

// ExitPoolOfUnderlying burns shares and pays the holder their pro-rata slice
// of the bound strategy's underlying basket instead of reference asset.
func (k *Keeper) ExitPoolOfUnderlying(ctx sdk.Context, vaultID, holder string, shares math.Int) error {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	strategyID, ok := k.controllerKeeper.BoundStrategy(ctx, vaultID)
	if !ok {
		return types.ErrNoBoundStrategy
	}
	netShares, err := k.exitShares(ctx, vault, holder, shares)
	if err != nil {
		return err
	}

	value := vault.CalcKfToToken(netShares)
	denoms, amounts, err := k.strategyKeeper.ExtractableUnderlyingNumber(ctx, strategyID, value)
	if err != nil {
		return err
	}
	if err := k.strategyKeeper.PayOutUnderlying(ctx, strategyID, holder, denoms, amounts); err != nil {
		return err
	}
	k.burnShares(ctx, vault, holder, netShares)
	vault.StrategyAssets = vault.StrategyAssets.Sub(value)
	if vault.StrategyAssets.IsNegative() {
		vault.StrategyAssets = math.ZeroInt()
	}
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)

	k.logger.Info("exit pool of underlying",
		"vault_id", vaultID,
		"holder", holder,
		"shares", shares.String(),
		"value", value.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_exit_underlying",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("value", value.String()),
		),
	)
	return nil
}

// TransferCash moves vault cash out to an external account. Controller-only;
// this is the routing primitive invest and fee extraction are built on.
func (k *Keeper) TransferCash(ctx sdk.Context, caller, vaultID, to string, amount math.Int) error {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.Controller || vault.Controller == "" {
		return types.ErrNotController
	}
	if amount.IsNil() || !amount.IsPositive() || amount.GT(vault.Cash) {
		return types.ErrInsufficientBalance
	}

	vault.Cash = vault.Cash.Sub(amount)
	if err := k.assetKeeper.Send(ctx, types.VaultAccount(vaultID), to, vault.ReferenceAsset, amount); err != nil {
		return err
	}
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)

	k.logger.Info("cash transferred",
		"vault_id", vaultID,
		"to", to,
		"amount", amount.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_transfer_cash",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// CreditCash books reference asset arriving at the vault account, used by the
// controller when harvest proceeds are returned.
func (k *Keeper) CreditCash(ctx sdk.Context, vaultID string, amount math.Int) error {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInsufficientBalance
	}
	vault.Cash = vault.Cash.Add(amount)
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)
	return nil
}

// SetStrategyAssets refreshes the deployed-value leg of the NAV after
// invest/harvest, from the strategy's own valuation.
func (k *Keeper) SetStrategyAssets(ctx sdk.Context, vaultID string, value math.Int) error {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if value.IsNil() || value.IsNegative() {
		value = math.ZeroInt()
	}
	vault.StrategyAssets = value
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)
	return nil
}

// CalcTokenToKf converts a reference-asset amount to shares at the current NAV.
func (k *Keeper) CalcTokenToKf(ctx sdk.Context, vaultID string, amount math.Int) (math.Int, error) {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	return vault.CalcTokenToKf(amount), nil
}

// CalcKfToToken converts shares to a reference-asset amount at the current NAV.
func (k *Keeper) CalcKfToToken(ctx sdk.Context, vaultID string, shares math.Int) (math.Int, error) {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	return vault.CalcKfToToken(shares), nil
}
