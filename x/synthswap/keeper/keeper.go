package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/synthswap/types"
)

// Store key prefixes
var (
	TicketKeyPrefix      = []byte{0x01}
	TicketCounterKey     = []byte{0x02}
	SettleWaitSecondsKey = []byte{0x03}
)

// Keeper manages the synthswap ticket arena
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	assetKeeper  types.AssetKeeper
	oracleKeeper types.OracleKeeper
}

// NewKeeper creates a new synthswap keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	assetKeeper types.AssetKeeper,
	oracleKeeper types.OracleKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:          cdc,
		storeKey:     storeKey,
		assetKeeper:  assetKeeper,
		oracleKeeper: oracleKeeper,
		logger:       logger.With("module", "x/synthswap"),
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

func ticketKey(id uint64) []byte {
	return append(TicketKeyPrefix, sdk.Uint64ToBigEndian(id)...)
}

// nextTicketID returns and advances the monotonic ticket counter.
func (k *Keeper) nextTicketID(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	id := uint64(1)
	if bz := store.Get(TicketCounterKey); bz != nil {
		id = sdk.BigEndianToUint64(bz) + 1
	}
	store.Set(TicketCounterKey, sdk.Uint64ToBigEndian(id))
	return id
}

// SetTicket saves a ticket to the store
func (k *Keeper) SetTicket(ctx sdk.Context, ticket *types.Ticket) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(ticket)
	store.Set(ticketKey(ticket.TicketID), bz)
}

// GetTicket retrieves a ticket from the store
func (k *Keeper) GetTicket(ctx sdk.Context, id uint64) *types.Ticket {
	store := k.GetStore(ctx)
	bz := store.Get(ticketKey(id))
	if bz == nil {
		return nil
	}
	var ticket types.Ticket
	if err := json.Unmarshal(bz, &ticket); err != nil {
		return nil
	}
	return &ticket
}

// GetAllTickets returns all tickets in id order
func (k *Keeper) GetAllTickets(ctx sdk.Context) []*types.Ticket {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, TicketKeyPrefix)
	defer iterator.Close()

	var tickets []*types.Ticket
	for ; iterator.Valid(); iterator.Next() {
		var ticket types.Ticket
		if err := json.Unmarshal(iterator.Value(), &ticket); err != nil {
			continue
		}
		tickets = append(tickets, &ticket)
	}
	return tickets
}

// SetSettleWaitSeconds overrides the realize-phase gate for new tickets.
func (k *Keeper) SetSettleWaitSeconds(ctx sdk.Context, seconds int64) {
	store := k.GetStore(ctx)
	store.Set(SettleWaitSecondsKey, sdk.Uint64ToBigEndian(uint64(seconds)))
}

// GetSettleWaitSeconds returns the configured gate, defaulting when unset.
func (k *Keeper) GetSettleWaitSeconds(ctx sdk.Context) int64 {
	bz := k.GetStore(ctx).Get(SettleWaitSecondsKey)
	if bz == nil {
		return types.DefaultSettleWaitSeconds
	}
	return int64(sdk.BigEndianToUint64(bz))
}
