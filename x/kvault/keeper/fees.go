package keeper

import (
	"encoding/json"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"

	"github.com/openalpha/kfund/x/kvault/types"
)

func feeRecordKey(vaultID string, kind types.FeeKind) []byte {
	key := append(FeeRecordKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	return append(key, byte(kind))
}

func feeChargeKey(vaultID, chargeID string) []byte {
	key := append(FeeChargeKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	return append(key, []byte(chargeID)...)
}

// recordFeeCharge writes the audit trail entry for a collected fee.
func (k *Keeper) recordFeeCharge(ctx sdk.Context, vaultID string, kind types.FeeKind, holder string, feeShares math.Int) {
	charge := types.FeeCharge{
		ChargeID:  uuid.NewString(),
		VaultID:   vaultID,
		Kind:      kind,
		Holder:    holder,
		FeeShares: feeShares,
		ChargedAt: ctx.BlockTime().Unix(),
	}
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(charge)
	store.Set(feeChargeKey(vaultID, charge.ChargeID), bz)
}

// GetFeeCharges returns the fee audit trail of a vault.
func (k *Keeper) GetFeeCharges(ctx sdk.Context, vaultID string) []types.FeeCharge {
	store := k.GetStore(ctx)
	prefix := append(FeeChargeKeyPrefix, []byte(vaultID)...)
	iterator := storetypes.KVStorePrefixIterator(store, append(prefix, '/'))
	defer iterator.Close()

	var charges []types.FeeCharge
	for ; iterator.Valid(); iterator.Next() {
		var charge types.FeeCharge
		if err := json.Unmarshal(iterator.Value(), &charge); err != nil {
			continue
		}
		charges = append(charges, charge)
	}
	return charges
}

func highWaterMarkKey(vaultID, holder string) []byte {
	key := append(HighWaterMarkKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	return append(key, []byte(holder)...)
}

// SetFee validates and stores one of the vault's four fee records.
// Governance-only.
func (k *Keeper) SetFee(ctx sdk.Context, caller, vaultID string, record types.FeeRecord) error {
	if !k.govKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if err := record.Validate(); err != nil {
		return err
	}

	store := k.GetStore(ctx)
	bz, _ := json.Marshal(record)
	store.Set(feeRecordKey(vaultID, record.Kind), bz)

	k.logger.Info("fee record updated",
		"vault_id", vaultID,
		"kind", record.Kind.String(),
		"numerator", record.Numerator.String(),
		"denominator", record.Denominator.String(),
		"cap", record.Cap.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_set_fee",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("kind", record.Kind.String()),
			sdk.NewAttribute("numerator", record.Numerator.String()),
			sdk.NewAttribute("denominator", record.Denominator.String()),
			sdk.NewAttribute("cap", record.Cap.String()),
		),
	)
	return nil
}

// GetFee returns the stored record of the given kind, defaulting to a zero
// rate when none was set.
func (k *Keeper) GetFee(ctx sdk.Context, vaultID string, kind types.FeeKind) types.FeeRecord {
	store := k.GetStore(ctx)
	bz := store.Get(feeRecordKey(vaultID, kind))
	if bz == nil {
		return types.ZeroFeeRecord(kind)
	}
	var record types.FeeRecord
	if err := json.Unmarshal(bz, &record); err != nil {
		return types.ZeroFeeRecord(kind)
	}
	return record
}

// CalcJoinAndExitFee previews the join or exit fee on an amount.
func (k *Keeper) CalcJoinAndExitFee(ctx sdk.Context, vaultID string, kind types.FeeKind, amount math.Int) (math.Int, error) {
	if kind != types.FeeJoin && kind != types.FeeExit {
		return math.ZeroInt(), types.ErrInvalidFeeRate
	}
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	return k.GetFee(ctx, vaultID, kind).CalcFee(amount), nil
}

// CalcManagementFee previews the share dilution the management fee would mint
// for the time elapsed since the last charge.
func (k *Keeper) CalcManagementFee(ctx sdk.Context, vaultID string) (math.Int, error) {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	return k.managementFeeShares(ctx, vault), nil
}

// managementFeeShares computes the pro-rata supply dilution accrued since the
// vault's last management charge. Accrual base is supply-seconds over a year.
func (k *Keeper) managementFeeShares(ctx sdk.Context, vault *types.Vault) math.Int {
	elapsed := ctx.BlockTime().Unix() - vault.LastManagementFeeAt
	if elapsed <= 0 || vault.TotalSupply.IsZero() {
		return math.ZeroInt()
	}
	record := k.GetFee(ctx, vault.VaultID, types.FeeManagement)
	base := vault.TotalSupply.Mul(math.NewInt(elapsed)).Quo(math.NewInt(types.SecondsPerYear))
	return record.CalcFee(base)
}

// ChargeOutstandingManagementFee mints the accrued management dilution to the
// fee sink and stamps the charge time. Governance-only; zero elapsed time is a
// no-op.
func (k *Keeper) ChargeOutstandingManagementFee(ctx sdk.Context, caller, vaultID string) (math.Int, error) {
	if !k.govKeeper.IsGovernance(ctx, caller) {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	fee := k.chargeManagementFee(ctx, vault)
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)
	return fee, nil
}

func (k *Keeper) chargeManagementFee(ctx sdk.Context, vault *types.Vault) math.Int {
	fee := k.managementFeeShares(ctx, vault)
	vault.LastManagementFeeAt = ctx.BlockTime().Unix()
	if !fee.IsPositive() {
		return math.ZeroInt()
	}
	k.mintShares(ctx, vault, types.FeeCollector, fee)
	k.recordFeeCharge(ctx, vault.VaultID, types.FeeManagement, "", fee)

	k.logger.Info("management fee charged",
		"vault_id", vault.VaultID,
		"fee_shares", fee.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_fee_charged",
			sdk.NewAttribute("vault_id", vault.VaultID),
			sdk.NewAttribute("kind", types.FeeManagement.String()),
			sdk.NewAttribute("fee_shares", fee.String()),
		),
	)
	return fee
}

// GetHighWaterMark returns the holder's stored performance watermark in
// reference-asset terms, zero if never charged.
func (k *Keeper) GetHighWaterMark(ctx sdk.Context, vaultID, holder string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(highWaterMarkKey(vaultID, holder))
	if bz == nil {
		return math.ZeroInt()
	}
	var mark math.Int
	if err := mark.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return mark
}

func (k *Keeper) setHighWaterMark(ctx sdk.Context, vaultID, holder string, mark math.Int) {
	store := k.GetStore(ctx)
	bz, _ := mark.Marshal()
	store.Set(highWaterMarkKey(vaultID, holder), bz)
}

// CalcPerformanceFee previews the performance fee the holder would owe on the
// gain over their watermark, in reference-asset terms.
func (k *Keeper) CalcPerformanceFee(ctx sdk.Context, vaultID, holder string) (math.Int, error) {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	fee, _ := k.performanceFee(ctx, vault, holder)
	return fee, nil
}

// performanceFee returns the fee in reference-asset terms and the holder's
// current net value, which becomes the new watermark.
func (k *Keeper) performanceFee(ctx sdk.Context, vault *types.Vault, holder string) (fee, net math.Int) {
	balance := k.GetBalance(ctx, vault.VaultID, holder)
	net = vault.CalcKfToToken(balance)
	mark := k.GetHighWaterMark(ctx, vault.VaultID, holder)
	if net.LTE(mark) {
		return math.ZeroInt(), net
	}
	record := k.GetFee(ctx, vault.VaultID, types.FeePerformance)
	return record.CalcFee(net.Sub(mark)), net
}

// ChargeOutstandingPerformanceFee charges the holder's gain over their
// watermark, paid by moving the fee's share equivalent to the fee sink. The
// watermark advances to the current net value whether or not a fee was due,
// so charging twice at the same NAV collects nothing the second time.
// Governance-only: charging moves the holder's watermark, so the trigger
// cannot be left to arbitrary callers.
func (k *Keeper) ChargeOutstandingPerformanceFee(ctx sdk.Context, caller, vaultID, holder string) (math.Int, error) {
	if !k.govKeeper.IsGovernance(ctx, caller) {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	fee := k.chargePerformanceFee(ctx, vault, holder)
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)
	return fee, nil
}

func (k *Keeper) chargePerformanceFee(ctx sdk.Context, vault *types.Vault, holder string) math.Int {
	fee, net := k.performanceFee(ctx, vault, holder)
	k.setHighWaterMark(ctx, vault.VaultID, holder, net)
	if !fee.IsPositive() {
		return math.ZeroInt()
	}

	feeShares := vault.CalcTokenToKf(fee)
	if !feeShares.IsPositive() {
		return math.ZeroInt()
	}
	balance := k.GetBalance(ctx, vault.VaultID, holder)
	if feeShares.GT(balance) {
		feeShares = balance
	}
	k.setBalance(ctx, vault.VaultID, holder, balance.Sub(feeShares))
	k.setBalance(ctx, vault.VaultID, types.FeeCollector,
		k.GetBalance(ctx, vault.VaultID, types.FeeCollector).Add(feeShares))
	k.recordFeeCharge(ctx, vault.VaultID, types.FeePerformance, holder, feeShares)

	k.logger.Info("performance fee charged",
		"vault_id", vault.VaultID,
		"holder", holder,
		"fee", fee.String(),
		"fee_shares", feeShares.String(),
	)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_fee_charged",
			sdk.NewAttribute("vault_id", vault.VaultID),
			sdk.NewAttribute("kind", types.FeePerformance.String()),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("fee_shares", feeShares.String()),
		),
	)
	return fee
}

// chargeFeeShares moves fee shares from the holder to the fee sink and emits
// the standard fee event. Used by the join/exit flows.
func (k *Keeper) chargeFeeShares(ctx sdk.Context, vault *types.Vault, holder string, kind types.FeeKind, feeShares math.Int) {
	if !feeShares.IsPositive() {
		return
	}
	k.setBalance(ctx, vault.VaultID, holder, k.GetBalance(ctx, vault.VaultID, holder).Sub(feeShares))
	k.setBalance(ctx, vault.VaultID, types.FeeCollector,
		k.GetBalance(ctx, vault.VaultID, types.FeeCollector).Add(feeShares))
	k.recordFeeCharge(ctx, vault.VaultID, kind, holder, feeShares)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_fee_charged",
			sdk.NewAttribute("vault_id", vault.VaultID),
			sdk.NewAttribute("kind", kind.String()),
			sdk.NewAttribute("holder", holder),
			sdk.NewAttribute("fee_shares", feeShares.String()),
		),
	)
}

// GetAllFees returns the four fee records of a vault in kind order.
func (k *Keeper) GetAllFees(ctx sdk.Context, vaultID string) ([]types.FeeRecord, error) {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return nil, types.ErrVaultNotFound
	}
	records := make([]types.FeeRecord, 0, 4)
	for kind := types.FeeJoin; kind <= types.FeePerformance; kind++ {
		records = append(records, k.GetFee(ctx, vaultID, kind))
	}
	return records, nil
}
