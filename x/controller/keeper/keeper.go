package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/controller/types"
)

// Store key prefixes
var (
	RegistrationKeyPrefix      = []byte{0x01}
	BindingByVaultKeyPrefix    = []byte{0x02}
	BindingByStrategyKeyPrefix = []byte{0x03}
	ExecRecordKeyPrefix        = []byte{0x04}
)

// Keeper manages the controller module state
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	vaultKeeper    types.VaultKeeper
	strategyKeeper types.StrategyKeeper
	govKeeper      types.GovKeeper
}

// NewKeeper creates a new controller keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	vaultKeeper types.VaultKeeper,
	strategyKeeper types.StrategyKeeper,
	govKeeper types.GovKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		vaultKeeper:    vaultKeeper,
		strategyKeeper: strategyKeeper,
		govKeeper:      govKeeper,
		logger:         logger.With("module", "x/controller"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// isOperator reports whether addr may drive routing operations.
func (k *Keeper) isOperator(ctx sdk.Context, addr string) bool {
	return k.govKeeper.IsGovernance(ctx, addr) || k.govKeeper.IsStrategist(ctx, addr)
}

// ============ Registry ============

func registrationKey(strategyID string) []byte {
	return append(RegistrationKeyPrefix, []byte(strategyID)...)
}

// Register adds a strategy to the registry. Governance-only.
func (k *Keeper) Register(ctx sdk.Context, caller, strategyID string, strategist bool) error {
	if !k.govKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	store := k.GetStore(ctx)
	if store.Has(registrationKey(strategyID)) {
		return types.ErrAlreadyRegistered
	}

	reg := types.Registration{
		StrategyID:   strategyID,
		Strategist:   strategist,
		RegisteredAt: ctx.BlockTime().Unix(),
	}
	bz, _ := json.Marshal(reg)
	store.Set(registrationKey(strategyID), bz)

	k.logger.Info("strategy registered", "strategy_id", strategyID, "strategist", strategist)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent("controller_register",
			sdk.NewAttribute("strategy_id", strategyID),
		),
	)
	return nil
}

// GetRegistration returns the registry record of a strategy, nil if unknown.
func (k *Keeper) GetRegistration(ctx sdk.Context, strategyID string) *types.Registration {
	bz := k.GetStore(ctx).Get(registrationKey(strategyID))
	if bz == nil {
		return nil
	}
	var reg types.Registration
	if err := json.Unmarshal(bz, &reg); err != nil {
		return nil
	}
	return &reg
}

// IsRegistered reports whether the strategy is in the registry.
func (k *Keeper) IsRegistered(ctx sdk.Context, strategyID string) bool {
	return k.GetStore(ctx).Has(registrationKey(strategyID))
}

// ============ Binding Table ============

func bindingByVaultKey(vaultID string) []byte {
	return append(BindingByVaultKeyPrefix, []byte(vaultID)...)
}

func bindingByStrategyKey(strategyID string) []byte {
	return append(BindingByStrategyKeyPrefix, []byte(strategyID)...)
}

// setBinding writes both directions of the pairing.
func (k *Keeper) setBinding(ctx sdk.Context, binding *types.Binding) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(binding)
	store.Set(bindingByVaultKey(binding.VaultID), bz)
	store.Set(bindingByStrategyKey(binding.StrategyID), []byte(binding.VaultID))
}

// GetBinding returns the binding of a vault, nil if unbound.
func (k *Keeper) GetBinding(ctx sdk.Context, vaultID string) *types.Binding {
	bz := k.GetStore(ctx).Get(bindingByVaultKey(vaultID))
	if bz == nil {
		return nil
	}
	var binding types.Binding
	if err := json.Unmarshal(bz, &binding); err != nil {
		return nil
	}
	return &binding
}

// BoundStrategy returns the strategy bound to a vault.
func (k *Keeper) BoundStrategy(ctx sdk.Context, vaultID string) (string, bool) {
	binding := k.GetBinding(ctx, vaultID)
	if binding == nil {
		return "", false
	}
	return binding.StrategyID, true
}

// BoundVault returns the vault bound to a strategy.
func (k *Keeper) BoundVault(ctx sdk.Context, strategyID string) (string, bool) {
	bz := k.GetStore(ctx).Get(bindingByStrategyKey(strategyID))
	if bz == nil {
		return "", false
	}
	return string(bz), true
}

// GetAllBindings returns every vault binding.
func (k *Keeper) GetAllBindings(ctx sdk.Context) []*types.Binding {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, BindingByVaultKeyPrefix)
	defer iterator.Close()

	var bindings []*types.Binding
	for ; iterator.Valid(); iterator.Next() {
		var binding types.Binding
		if err := json.Unmarshal(iterator.Value(), &binding); err != nil {
			continue
		}
		bindings = append(bindings, &binding)
	}
	return bindings
}

// SyncStrategyAssets re-reads the valuation of every bound strategy into its
// vault. Returns the number of vaults refreshed.
func (k *Keeper) SyncStrategyAssets(ctx sdk.Context) int {
	synced := 0
	for _, binding := range k.GetAllBindings(ctx) {
		if err := k.refreshStrategyAssets(ctx, binding.VaultID, binding.StrategyID); err != nil {
			k.logger.Error("strategy asset sync failed",
				"vault_id", binding.VaultID,
				"strategy_id", binding.StrategyID,
				"error", err,
			)
			continue
		}
		synced++
	}
	return synced
}
