package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/strategy/types"
)

// Store key prefixes
var (
	StrategyKeyPrefix = []byte{0x01}
)

// Keeper manages the strategy module state
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	assetKeeper  types.AssetKeeper
	oracleKeeper types.OracleKeeper
	venueKeeper  types.VenueKeeper
	govKeeper    types.GovKeeper
}

// NewKeeper creates a new strategy keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	assetKeeper types.AssetKeeper,
	oracleKeeper types.OracleKeeper,
	venueKeeper types.VenueKeeper,
	govKeeper types.GovKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:          cdc,
		storeKey:     storeKey,
		assetKeeper:  assetKeeper,
		oracleKeeper: oracleKeeper,
		venueKeeper:  venueKeeper,
		govKeeper:    govKeeper,
		logger:       logger.With("module", "x/strategy"),
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

func strategyKey(strategyID string) []byte {
	return append(StrategyKeyPrefix, []byte(strategyID)...)
}

// SetStrategy saves a strategy to the store
func (k *Keeper) SetStrategy(ctx sdk.Context, strategy *types.Strategy) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(strategy)
	store.Set(strategyKey(strategy.StrategyID), bz)
}

// GetStrategy retrieves a strategy from the store
func (k *Keeper) GetStrategy(ctx sdk.Context, strategyID string) *types.Strategy {
	store := k.GetStore(ctx)
	bz := store.Get(strategyKey(strategyID))
	if bz == nil {
		return nil
	}
	var strategy types.Strategy
	if err := json.Unmarshal(bz, &strategy); err != nil {
		return nil
	}
	return &strategy
}

// GetAllStrategies returns all strategies
func (k *Keeper) GetAllStrategies(ctx sdk.Context) []*types.Strategy {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, StrategyKeyPrefix)
	defer iterator.Close()

	var strategies []*types.Strategy
	for ; iterator.Valid(); iterator.Next() {
		var strategy types.Strategy
		if err := json.Unmarshal(iterator.Value(), &strategy); err != nil {
			continue
		}
		strategies = append(strategies, &strategy)
	}
	return strategies
}
