package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/kvault/types"
)

// Store key prefixes
var (
	VaultKeyPrefix         = []byte{0x01}
	BalanceKeyPrefix       = []byte{0x02}
	FeeRecordKeyPrefix     = []byte{0x03}
	HighWaterMarkKeyPrefix = []byte{0x04}
	AllowanceKeyPrefix     = []byte{0x05}
	FeeChargeKeyPrefix     = []byte{0x06}
)

// Keeper manages the kvault module state
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	assetKeeper      types.AssetKeeper
	govKeeper        types.GovKeeper
	controllerKeeper types.ControllerKeeper
	strategyKeeper   types.StrategyKeeper
}

// NewKeeper creates a new kvault keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	assetKeeper types.AssetKeeper,
	govKeeper types.GovKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:         cdc,
		storeKey:    storeKey,
		assetKeeper: assetKeeper,
		govKeeper:   govKeeper,
		logger:      logger.With("module", "x/kvault"),
	}
}

// SetControllerKeeper wires the controller keeper after construction. The
// controller module depends on this one, so the reverse edge is injected.
func (k *Keeper) SetControllerKeeper(ck types.ControllerKeeper) {
	k.controllerKeeper = ck
}

// SetStrategyKeeper wires the strategy keeper after construction.
func (k *Keeper) SetStrategyKeeper(sk types.StrategyKeeper) {
	k.strategyKeeper = sk
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Vault Records ============

func vaultKey(vaultID string) []byte {
	return append(VaultKeyPrefix, []byte(vaultID)...)
}

// SetVault saves a vault to the store
func (k *Keeper) SetVault(ctx sdk.Context, vault *types.Vault) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(vault)
	store.Set(vaultKey(vault.VaultID), bz)
}

// GetVault retrieves a vault from the store
func (k *Keeper) GetVault(ctx sdk.Context, vaultID string) *types.Vault {
	store := k.GetStore(ctx)
	bz := store.Get(vaultKey(vaultID))
	if bz == nil {
		return nil
	}
	var vault types.Vault
	if err := json.Unmarshal(bz, &vault); err != nil {
		return nil
	}
	return &vault
}

// GetAllVaults returns all vaults
func (k *Keeper) GetAllVaults(ctx sdk.Context) []*types.Vault {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, VaultKeyPrefix)
	defer iterator.Close()

	var vaults []*types.Vault
	for ; iterator.Valid(); iterator.Next() {
		var vault types.Vault
		if err := json.Unmarshal(iterator.Value(), &vault); err != nil {
			continue
		}
		vaults = append(vaults, &vault)
	}
	return vaults
}
