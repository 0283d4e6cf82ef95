package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/kvault/types"
)

// Share ledger. Every supply mutation adjusts a holder balance and the vault
// TotalSupply in the same call so the supply always equals the balance sum.

func balanceKey(vaultID, holder string) []byte {
	key := append(BalanceKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	return append(key, []byte(holder)...)
}

func allowanceKey(vaultID, owner, spender string) []byte {
	key := append(AllowanceKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	key = append(key, []byte(owner)...)
	key = append(key, '/')
	return append(key, []byte(spender)...)
}

// GetBalance returns the holder's share balance, zero if absent.
func (k *Keeper) GetBalance(ctx sdk.Context, vaultID, holder string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(balanceKey(vaultID, holder))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return amount
}

func (k *Keeper) setBalance(ctx sdk.Context, vaultID, holder string, amount math.Int) {
	store := k.GetStore(ctx)
	if amount.IsZero() {
		store.Delete(balanceKey(vaultID, holder))
		return
	}
	bz, _ := amount.Marshal()
	store.Set(balanceKey(vaultID, holder), bz)
}

// GetAllowance returns the remaining spend allowance owner granted spender.
func (k *Keeper) GetAllowance(ctx sdk.Context, vaultID, owner, spender string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(allowanceKey(vaultID, owner, spender))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return amount
}

func (k *Keeper) setAllowance(ctx sdk.Context, vaultID, owner, spender string, amount math.Int) {
	store := k.GetStore(ctx)
	if amount.IsZero() {
		store.Delete(allowanceKey(vaultID, owner, spender))
		return
	}
	bz, _ := amount.Marshal()
	store.Set(allowanceKey(vaultID, owner, spender), bz)
}

// mintShares credits holder and grows the supply. The caller persists vault.
func (k *Keeper) mintShares(ctx sdk.Context, vault *types.Vault, holder string, amount math.Int) {
	if !amount.IsPositive() {
		return
	}
	k.setBalance(ctx, vault.VaultID, holder, k.GetBalance(ctx, vault.VaultID, holder).Add(amount))
	vault.TotalSupply = vault.TotalSupply.Add(amount)
}

// burnShares debits holder and shrinks the supply. The caller checks the
// balance first and persists vault.
func (k *Keeper) burnShares(ctx sdk.Context, vault *types.Vault, holder string, amount math.Int) {
	if !amount.IsPositive() {
		return
	}
	k.setBalance(ctx, vault.VaultID, holder, k.GetBalance(ctx, vault.VaultID, holder).Sub(amount))
	vault.TotalSupply = vault.TotalSupply.Sub(amount)
}

// TransferShares moves shares between holders without touching the supply.
func (k *Keeper) TransferShares(ctx sdk.Context, vaultID, from, to string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInsufficientBalance
	}
	fromBal := k.GetBalance(ctx, vaultID, from)
	if fromBal.LT(amount) {
		return types.ErrInsufficientBalance
	}
	k.setBalance(ctx, vaultID, from, fromBal.Sub(amount))
	k.setBalance(ctx, vaultID, to, k.GetBalance(ctx, vaultID, to).Add(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_transfer",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// ApproveShares sets spender's allowance over owner's shares.
func (k *Keeper) ApproveShares(ctx sdk.Context, vaultID, owner, spender string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInsufficientBalance
	}
	k.setAllowance(ctx, vaultID, owner, spender, amount)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("kvault_approve",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("spender", spender),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// TransferSharesFrom spends an allowance to move owner's shares.
func (k *Keeper) TransferSharesFrom(ctx sdk.Context, vaultID, spender, owner, to string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInsufficientBalance
	}
	allowance := k.GetAllowance(ctx, vaultID, owner, spender)
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance
	}
	if err := k.TransferShares(ctx, vaultID, owner, to, amount); err != nil {
		return err
	}
	k.setAllowance(ctx, vaultID, owner, spender, allowance.Sub(amount))
	return nil
}
