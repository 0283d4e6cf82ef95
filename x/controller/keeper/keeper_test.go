package keeper

import (
	"errors"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/kfund/x/controller/types"
)

const (
	governanceAddr = "cosmos1gov"
	strategistAddr = "cosmos1strategist"
	aliceAddr      = "cosmos1alice"

	testVaultID    = "kf-main"
	testStrategyID = "strat-1"
)

// fakeVaultKeeper tracks vault cash and the transfers routed out of it.
type fakeVaultKeeper struct {
	cash           map[string]math.Int
	strategyAssets map[string]math.Int
	transfers      []fakeTransfer
}

type fakeTransfer struct {
	vaultID string
	to      string
	amount  math.Int
}

func newFakeVaultKeeper() *fakeVaultKeeper {
	return &fakeVaultKeeper{
		cash:           make(map[string]math.Int),
		strategyAssets: make(map[string]math.Int),
	}
}

func (f *fakeVaultKeeper) fund(vaultID string, amount int64) {
	f.cash[vaultID] = math.NewInt(amount)
}

func (f *fakeVaultKeeper) balance(vaultID string) math.Int {
	bal, ok := f.cash[vaultID]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

func (f *fakeVaultKeeper) TransferCash(_ sdk.Context, caller, vaultID, to string, amount math.Int) error {
	if caller != types.ControllerAccount {
		return errors.New("caller is not the controller account")
	}
	if f.balance(vaultID).LT(amount) {
		return errors.New("transfer exceeds vault cash")
	}
	f.cash[vaultID] = f.balance(vaultID).Sub(amount)
	f.transfers = append(f.transfers, fakeTransfer{vaultID: vaultID, to: to, amount: amount})
	return nil
}

func (f *fakeVaultKeeper) CreditCash(_ sdk.Context, vaultID string, amount math.Int) error {
	f.cash[vaultID] = f.balance(vaultID).Add(amount)
	return nil
}

func (f *fakeVaultKeeper) SetStrategyAssets(_ sdk.Context, vaultID string, value math.Int) error {
	f.strategyAssets[vaultID] = value
	return nil
}

// fakeStrategyKeeper records invested capital and forwarded commands. A
// command kind listed in failKinds errors on dispatch.
type fakeStrategyKeeper struct {
	invested     map[string]math.Int
	pendingYield map[string]math.Int
	assets       map[string]math.Int
	commands     []string
	failKinds    map[string]bool
}

func newFakeStrategyKeeper() *fakeStrategyKeeper {
	return &fakeStrategyKeeper{
		invested:     make(map[string]math.Int),
		pendingYield: make(map[string]math.Int),
		assets:       make(map[string]math.Int),
		failKinds:    make(map[string]bool),
	}
}

func (f *fakeStrategyKeeper) Invest(_ sdk.Context, strategyID string, amount math.Int) error {
	prev, ok := f.invested[strategyID]
	if !ok {
		prev = math.ZeroInt()
	}
	f.invested[strategyID] = prev.Add(amount)
	f.assets[strategyID] = f.invested[strategyID]
	return nil
}

func (f *fakeStrategyKeeper) Harvest(_ sdk.Context, strategyID, recipient string) (math.Int, error) {
	yield, ok := f.pendingYield[strategyID]
	if !ok {
		return math.ZeroInt(), nil
	}
	delete(f.pendingYield, strategyID)
	return yield, nil
}

func (f *fakeStrategyKeeper) Assets(_ sdk.Context, strategyID string) (math.Int, error) {
	value, ok := f.assets[strategyID]
	if !ok {
		return math.ZeroInt(), nil
	}
	return value, nil
}

func (f *fakeStrategyKeeper) run(kind string) error {
	if f.failKinds[kind] {
		return errors.New(kind + " rejected by venue")
	}
	f.commands = append(f.commands, kind)
	return nil
}

func (f *fakeStrategyKeeper) NewPool(_ sdk.Context, strategyID string) error {
	return f.run("new_pool")
}

func (f *fakeStrategyKeeper) BindToken(_ sdk.Context, strategyID, denom string, weight math.Int) error {
	return f.run("bind_token")
}

func (f *fakeStrategyKeeper) UnbindToken(_ sdk.Context, strategyID, denom string) error {
	return f.run("unbind_token")
}

func (f *fakeStrategyKeeper) RebindToken(_ sdk.Context, strategyID, denom string, weight math.Int) error {
	return f.run("rebind_token")
}

func (f *fakeStrategyKeeper) SetUnderlyingTokens(_ sdk.Context, strategyID string, denoms []string) error {
	return f.run("set_underlying_tokens")
}

func (f *fakeStrategyKeeper) AddLiquidity(_ sdk.Context, strategyID string, amount math.Int) error {
	return f.run("add_liquidity")
}

func (f *fakeStrategyKeeper) RemoveLiquidity(_ sdk.Context, strategyID string, amount math.Int) error {
	return f.run("remove_liquidity")
}

// fakeGovKeeper recognizes fixed governance and strategist accounts.
type fakeGovKeeper struct{}

func (fakeGovKeeper) IsGovernance(_ sdk.Context, addr string) bool {
	return addr == governanceAddr
}

func (fakeGovKeeper) IsStrategist(_ sdk.Context, addr string) bool {
	return addr == strategistAddr
}

func setupKeeper(t *testing.T) (sdk.Context, *Keeper, *fakeVaultKeeper, *fakeStrategyKeeper) {
	t.Helper()

	key := storetypes.NewKVStoreKey(types.StoreKey)
	tkey := storetypes.NewTransientStoreKey("transient_test")
	testCtx := testutil.DefaultContextWithDB(t, key, tkey)
	ctx := testCtx.Ctx.WithBlockTime(time.Unix(1_700_000_000, 0))

	vaults := newFakeVaultKeeper()
	strategies := newFakeStrategyKeeper()
	k := NewKeeper(nil, key, vaults, strategies, fakeGovKeeper{}, log.NewNopLogger())
	return ctx, k, vaults, strategies
}

// setupBound registers the strategy and binds it with seed capital and a
// miner-fee allowance.
func setupBound(t *testing.T, seed, maxFee int64) (sdk.Context, *Keeper, *fakeVaultKeeper, *fakeStrategyKeeper) {
	t.Helper()

	ctx, k, vaults, strategies := setupKeeper(t)
	vaults.fund(testVaultID, 1_000_000_000)
	require.NoError(t, k.Register(ctx, governanceAddr, testStrategyID, true))
	require.NoError(t, k.BindVault(ctx, governanceAddr, testVaultID, testStrategyID,
		math.NewInt(seed), math.NewInt(maxFee)))
	return ctx, k, vaults, strategies
}
