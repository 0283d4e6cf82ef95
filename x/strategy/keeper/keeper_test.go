package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/kfund/x/strategy/types"
)

const (
	governanceAddr = "cosmos1gov"
	strategistAddr = "cosmos1strategist"
	controllerAddr = "cosmos1controller"
	aliceAddr      = "cosmos1alice"

	testStrategyID = "strat-1"
	refAsset       = "usdc"
)

// fakeAssetKeeper is an in-memory asset ledger for tests.
type fakeAssetKeeper struct {
	balances map[string]map[string]math.Int
}

func newFakeAssetKeeper() *fakeAssetKeeper {
	return &fakeAssetKeeper{balances: make(map[string]map[string]math.Int)}
}

func (f *fakeAssetKeeper) fund(account, denom string, amount int64) {
	if f.balances[account] == nil {
		f.balances[account] = make(map[string]math.Int)
	}
	f.balances[account][denom] = math.NewInt(amount)
}

func (f *fakeAssetKeeper) Balance(_ sdk.Context, account, denom string) math.Int {
	if f.balances[account] == nil {
		return math.ZeroInt()
	}
	bal, ok := f.balances[account][denom]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

func (f *fakeAssetKeeper) Send(ctx sdk.Context, from, to, denom string, amount math.Int) error {
	if f.Balance(ctx, from, denom).LT(amount) {
		return types.ErrInsufficientBalance
	}
	f.balances[from][denom] = f.balances[from][denom].Sub(amount)
	if f.balances[to] == nil {
		f.balances[to] = make(map[string]math.Int)
	}
	if _, ok := f.balances[to][denom]; !ok {
		f.balances[to][denom] = math.ZeroInt()
	}
	f.balances[to][denom] = f.balances[to][denom].Add(amount)
	return nil
}

// fakeOracleKeeper prices every denom 1:1 against the quote unless a price is
// set.
type fakeOracleKeeper struct {
	prices map[string]math.Int
}

func newFakeOracleKeeper() *fakeOracleKeeper {
	return &fakeOracleKeeper{prices: make(map[string]math.Int)}
}

func (f *fakeOracleKeeper) Value(_ sdk.Context, denom string, amount math.Int, quoteDenom string) math.Int {
	if denom == quoteDenom {
		return amount
	}
	price, ok := f.prices[denom]
	if !ok {
		return amount
	}
	return amount.Mul(price)
}

// fakeVenueKeeper swaps 1:1 and mints one pool share per token unit added.
type fakeVenueKeeper struct {
	pool         map[string]math.Int
	totalShares  math.Int
	pendingYield math.Int
	yieldDenom   string
	swaps        []fakeSwap
}

type fakeSwap struct {
	fromDenom string
	toDenom   string
	amount    math.Int
}

func newFakeVenueKeeper() *fakeVenueKeeper {
	return &fakeVenueKeeper{
		pool:         make(map[string]math.Int),
		totalShares:  math.ZeroInt(),
		pendingYield: math.ZeroInt(),
	}
}

func (f *fakeVenueKeeper) Swap(_ sdk.Context, account, fromDenom, toDenom string, amount math.Int) (math.Int, error) {
	f.swaps = append(f.swaps, fakeSwap{fromDenom: fromDenom, toDenom: toDenom, amount: amount})
	return amount, nil
}

func (f *fakeVenueKeeper) AddLiquidity(_ sdk.Context, account string, denoms []string, amounts []math.Int) (math.Int, error) {
	shares := math.ZeroInt()
	for i, denom := range denoms {
		if _, ok := f.pool[denom]; !ok {
			f.pool[denom] = math.ZeroInt()
		}
		f.pool[denom] = f.pool[denom].Add(amounts[i])
		shares = shares.Add(amounts[i])
	}
	f.totalShares = f.totalShares.Add(shares)
	return shares, nil
}

func (f *fakeVenueKeeper) RemoveLiquidity(_ sdk.Context, account string, shares math.Int, denoms []string) ([]math.Int, error) {
	amounts := make([]math.Int, len(denoms))
	for i, denom := range denoms {
		bal, ok := f.pool[denom]
		if !ok {
			amounts[i] = math.ZeroInt()
			continue
		}
		amounts[i] = bal.Mul(shares).Quo(f.totalShares)
		f.pool[denom] = bal.Sub(amounts[i])
	}
	f.totalShares = f.totalShares.Sub(shares)
	return amounts, nil
}

func (f *fakeVenueKeeper) CollectYield(_ sdk.Context, account, recipient string) (math.Int, string, error) {
	yield := f.pendingYield
	f.pendingYield = math.ZeroInt()
	return yield, f.yieldDenom, nil
}

// fakeGovKeeper recognizes fixed governance and strategist accounts.
type fakeGovKeeper struct{}

func (fakeGovKeeper) IsGovernance(_ sdk.Context, addr string) bool {
	return addr == governanceAddr
}

func (fakeGovKeeper) IsStrategist(_ sdk.Context, addr string) bool {
	return addr == strategistAddr
}

func setupKeeper(t *testing.T) (sdk.Context, *Keeper, *fakeAssetKeeper, *fakeVenueKeeper) {
	t.Helper()

	key := storetypes.NewKVStoreKey(types.StoreKey)
	tkey := storetypes.NewTransientStoreKey("transient_test")
	testCtx := testutil.DefaultContextWithDB(t, key, tkey)
	ctx := testCtx.Ctx.WithBlockTime(time.Unix(1_700_000_000, 0))

	assets := newFakeAssetKeeper()
	venue := newFakeVenueKeeper()
	k := NewKeeper(nil, key, assets, newFakeOracleKeeper(), venue, fakeGovKeeper{}, log.NewNopLogger())
	return ctx, k, assets, venue
}

// setupActive creates an initialised, approved strategy holding idle capital.
func setupActive(t *testing.T, variant types.Variant, idle int64) (sdk.Context, *Keeper, *fakeAssetKeeper, *fakeVenueKeeper) {
	t.Helper()

	ctx, k, assets, venue := setupKeeper(t)
	require.NoError(t, k.CreateStrategy(ctx, governanceAddr, testStrategyID, variant, refAsset, controllerAddr))
	require.NoError(t, k.Init(ctx, controllerAddr, testStrategyID))
	require.NoError(t, k.ApproveTokens(ctx, controllerAddr, testStrategyID))
	if idle > 0 {
		require.NoError(t, k.Invest(ctx, testStrategyID, math.NewInt(idle)))
	}
	return ctx, k, assets, venue
}
