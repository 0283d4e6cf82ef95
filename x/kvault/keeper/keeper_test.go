package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/kvault/types"
)

const (
	governanceAddr = "cosmos1gov"
	strategistAddr = "cosmos1strategist"
	controllerAddr = "cosmos1controller"
	aliceAddr      = "cosmos1alice"
	bobAddr        = "cosmos1bob"

	testVaultID = "kf-main"
	testAsset   = "usdc"
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

// fakeGovKeeper recognizes fixed governance and strategist accounts.
type fakeGovKeeper struct{}

func (fakeGovKeeper) IsGovernance(_ sdk.Context, addr string) bool {
	return addr == governanceAddr
}

func (fakeGovKeeper) IsStrategist(_ sdk.Context, addr string) bool {
	return addr == strategistAddr
}

// fakeControllerKeeper reports a fixed binding.
type fakeControllerKeeper struct {
	strategyID string
}

func (f fakeControllerKeeper) BoundStrategy(_ sdk.Context, vaultID string) (string, bool) {
	if f.strategyID == "" {
		return "", false
	}
	return f.strategyID, true
}

// fakeStrategyKeeper pays out a fixed two-token basket proportional to value.
type fakeStrategyKeeper struct {
	assets *fakeAssetKeeper
	paid   map[string]math.Int
}

func (f *fakeStrategyKeeper) ExtractableUnderlyingNumber(_ sdk.Context, strategyID string, value math.Int) ([]string, []math.Int, error) {
	half := value.Quo(math.NewInt(2))
	return []string{"atom", "osmo"}, []math.Int{half, value.Sub(half)}, nil
}

func (f *fakeStrategyKeeper) PayOutUnderlying(_ sdk.Context, strategyID, recipient string, denoms []string, amounts []math.Int) error {
	if f.paid == nil {
		f.paid = make(map[string]math.Int)
	}
	for i, denom := range denoms {
		f.paid[denom] = amounts[i]
	}
	return nil
}

func setupKeeper(t *testing.T) (sdk.Context, *Keeper, *fakeAssetKeeper) {
	t.Helper()

	key := storetypes.NewKVStoreKey(types.StoreKey)
	tkey := storetypes.NewTransientStoreKey("transient_test")
	testCtx := testutil.DefaultContextWithDB(t, key, tkey)
	ctx := testCtx.Ctx.WithBlockTime(time.Unix(1_700_000_000, 0))

	assets := newFakeAssetKeeper()
	k := NewKeeper(nil, key, assets, fakeGovKeeper{}, log.NewNopLogger())
	return ctx, k, assets
}

// setupVault initialises a vault ready for joins.
func setupVault(t *testing.T) (sdk.Context, *Keeper, *fakeAssetKeeper) {
	t.Helper()

	ctx, k, assets := setupKeeper(t)
	if err := k.InitVault(ctx, governanceAddr, testVaultID, "KFund Main", "KF", testAsset); err != nil {
		t.Fatalf("init vault: %v", err)
	}
	return ctx, k, assets
}

// sumBalances adds every holder balance recorded for the vault.
func sumBalances(ctx sdk.Context, k *Keeper, vaultID string, holders ...string) math.Int {
	total := math.ZeroInt()
	for _, holder := range holders {
		total = total.Add(k.GetBalance(ctx, vaultID, holder))
	}
	return total
}
