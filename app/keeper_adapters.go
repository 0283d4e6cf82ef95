package app

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
)

// VenueAccount holds the sim venue's token inventory.
const VenueAccount = "kfund_venue"

// accountAddress resolves a module-internal account name to an address.
// Bech32 strings pass through; named accounts ("kvault/<id>", "strategy/<id>",
// the fee collector) derive a module address from the full name.
func accountAddress(account string) sdk.AccAddress {
	if addr, err := sdk.AccAddressFromBech32(account); err == nil {
		return addr
	}
	return authtypes.NewModuleAddress(account)
}

// bankAssetAdapter adapts the SDK bank keeper to the string-account asset
// interface the kfund modules share.
type bankAssetAdapter struct {
	bank bankkeeper.BaseKeeper
}

func newBankAssetAdapter(bank bankkeeper.BaseKeeper) *bankAssetAdapter {
	return &bankAssetAdapter{bank: bank}
}

func (a *bankAssetAdapter) Balance(ctx sdk.Context, account, denom string) math.Int {
	return a.bank.GetBalance(ctx, accountAddress(account), denom).Amount
}

func (a *bankAssetAdapter) Send(ctx sdk.Context, from, to, denom string, amount math.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	return a.bank.SendCoins(ctx, accountAddress(from), accountAddress(to), coins)
}

// govAdapter answers the governance and strategist identity predicates from
// an address set fixed at app construction.
type govAdapter struct {
	governance  string
	strategists map[string]bool
}

func newGovAdapter(governance string, strategists []string) *govAdapter {
	set := make(map[string]bool, len(strategists))
	for _, addr := range strategists {
		set[addr] = true
	}
	return &govAdapter{governance: governance, strategists: set}
}

func (a *govAdapter) IsGovernance(ctx sdk.Context, addr string) bool {
	return addr == a.governance
}

func (a *govAdapter) IsStrategist(ctx sdk.Context, addr string) bool {
	return addr == a.governance || a.strategists[addr]
}

// priceOracle values token amounts against stored per-denom prices. Prices
// are integer rates in a common quote unit; unset denoms price at par.
type priceOracle struct {
	storeKey storetypes.StoreKey
}

var oraclePricePrefix = []byte{0x01}

func newPriceOracle(storeKey storetypes.StoreKey) *priceOracle {
	return &priceOracle{storeKey: storeKey}
}

// SetPrice writes the rate for one denom.
func (o *priceOracle) SetPrice(ctx sdk.Context, denom string, price math.Int) {
	store := ctx.KVStore(o.storeKey)
	bz, err := price.Marshal()
	if err != nil {
		return
	}
	store.Set(append(oraclePricePrefix, []byte(denom)...), bz)
}

func (o *priceOracle) price(ctx sdk.Context, denom string) math.Int {
	store := ctx.KVStore(o.storeKey)
	bz := store.Get(append(oraclePricePrefix, []byte(denom)...))
	if bz == nil {
		return math.OneInt()
	}
	var price math.Int
	if err := price.Unmarshal(bz); err != nil || !price.IsPositive() {
		return math.OneInt()
	}
	return price
}

func (o *priceOracle) Value(ctx sdk.Context, denom string, amount math.Int, quoteDenom string) math.Int {
	if denom == quoteDenom {
		return amount
	}
	return amount.Mul(o.price(ctx, denom)).Quo(o.price(ctx, quoteDenom))
}

// assetSender is the slice of the asset interface the sim venue settles
// through.
type assetSender interface {
	Balance(ctx sdk.Context, account, denom string) math.Int
	Send(ctx sdk.Context, from, to, denom string, amount math.Int) error
}

// venuePool tracks one account's position at the sim venue.
type venuePool struct {
	Shares     math.Int            `json:"shares"`
	Balances   map[string]math.Int `json:"balances"`
	Yield      math.Int            `json:"yield"`
	YieldDenom string              `json:"yield_denom"`
}

// simVenue is a bank-settled trading venue used until an external venue is
// integrated. Swaps price through the oracle against the venue inventory and
// pool shares mint one per unit deposited.
type simVenue struct {
	storeKey storetypes.StoreKey
	assets   assetSender
	oracle   *priceOracle
}

var venuePoolPrefix = []byte{0x02}

func newSimVenue(storeKey storetypes.StoreKey, assets assetSender, oracle *priceOracle) *simVenue {
	return &simVenue{storeKey: storeKey, assets: assets, oracle: oracle}
}

func venuePoolKey(account string) []byte {
	return append(venuePoolPrefix, []byte(account)...)
}

func (v *simVenue) pool(ctx sdk.Context, account string) *venuePool {
	store := ctx.KVStore(v.storeKey)
	pool := &venuePool{
		Shares:   math.ZeroInt(),
		Balances: map[string]math.Int{},
		Yield:    math.ZeroInt(),
	}
	bz := store.Get(venuePoolKey(account))
	if bz == nil {
		return pool
	}
	if err := json.Unmarshal(bz, pool); err != nil {
		return pool
	}
	if pool.Balances == nil {
		pool.Balances = map[string]math.Int{}
	}
	return pool
}

func (v *simVenue) setPool(ctx sdk.Context, account string, pool *venuePool) {
	store := ctx.KVStore(v.storeKey)
	bz, _ := json.Marshal(pool)
	store.Set(venuePoolKey(account), bz)
}

func (v *simVenue) Swap(ctx sdk.Context, account, fromDenom, toDenom string, amount math.Int) (math.Int, error) {
	out := v.oracle.Value(ctx, fromDenom, amount, toDenom)
	if err := v.assets.Send(ctx, account, VenueAccount, fromDenom, amount); err != nil {
		return math.ZeroInt(), err
	}
	if err := v.assets.Send(ctx, VenueAccount, account, toDenom, out); err != nil {
		return math.ZeroInt(), err
	}
	return out, nil
}

func (v *simVenue) AddLiquidity(ctx sdk.Context, account string, denoms []string, amounts []math.Int) (math.Int, error) {
	if len(denoms) != len(amounts) {
		return math.ZeroInt(), fmt.Errorf("denoms and amounts length mismatch")
	}
	pool := v.pool(ctx, account)
	minted := math.ZeroInt()
	for i, denom := range denoms {
		if err := v.assets.Send(ctx, account, VenueAccount, denom, amounts[i]); err != nil {
			return math.ZeroInt(), err
		}
		balance, ok := pool.Balances[denom]
		if !ok {
			balance = math.ZeroInt()
		}
		pool.Balances[denom] = balance.Add(amounts[i])
		minted = minted.Add(amounts[i])
	}
	pool.Shares = pool.Shares.Add(minted)
	v.setPool(ctx, account, pool)
	return minted, nil
}

func (v *simVenue) RemoveLiquidity(ctx sdk.Context, account string, shares math.Int, denoms []string) ([]math.Int, error) {
	pool := v.pool(ctx, account)
	if !shares.IsPositive() || shares.GT(pool.Shares) {
		return nil, fmt.Errorf("venue shares %s exceed position %s", shares, pool.Shares)
	}

	out := make([]math.Int, len(denoms))
	for i, denom := range denoms {
		balance, ok := pool.Balances[denom]
		if !ok {
			balance = math.ZeroInt()
		}
		out[i] = balance.Mul(shares).Quo(pool.Shares)
	}

	for i, denom := range denoms {
		pool.Balances[denom] = pool.Balances[denom].Sub(out[i])
		if err := v.assets.Send(ctx, VenueAccount, account, denom, out[i]); err != nil {
			return nil, err
		}
	}
	pool.Shares = pool.Shares.Sub(shares)
	v.setPool(ctx, account, pool)
	return out, nil
}

func (v *simVenue) CollectYield(ctx sdk.Context, account, recipient string) (math.Int, string, error) {
	pool := v.pool(ctx, account)
	if pool.Yield.IsNil() || !pool.Yield.IsPositive() {
		return math.ZeroInt(), "", nil
	}
	yield := pool.Yield
	denom := pool.YieldDenom
	if err := v.assets.Send(ctx, VenueAccount, recipient, denom, yield); err != nil {
		return math.ZeroInt(), "", err
	}
	pool.Yield = math.ZeroInt()
	v.setPool(ctx, account, pool)
	return yield, denom, nil
}

// AccrueYield books venue earnings against an account's position. Driven by
// genesis seeding and tests.
func (v *simVenue) AccrueYield(ctx sdk.Context, account, denom string, amount math.Int) {
	pool := v.pool(ctx, account)
	if pool.Yield.IsNil() {
		pool.Yield = math.ZeroInt()
	}
	pool.Yield = pool.Yield.Add(amount)
	pool.YieldDenom = denom
	v.setPool(ctx, account, pool)
}
