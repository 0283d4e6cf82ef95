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

	"github.com/openalpha/kfund/x/synthswap/types"
)

const (
	aliceAddr = "cosmos1alice"
	bobAddr   = "cosmos1bob"

	srcAsset  = "usdc"
	destAsset = "atom"
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

// fakeOracleKeeper converts at a mutable numerator/denominator rate.
type fakeOracleKeeper struct {
	num math.Int
	den math.Int
}

func newFakeOracleKeeper(num, den int64) *fakeOracleKeeper {
	return &fakeOracleKeeper{num: math.NewInt(num), den: math.NewInt(den)}
}

func (f *fakeOracleKeeper) Value(_ sdk.Context, denom string, amount math.Int, quoteDenom string) math.Int {
	if denom == quoteDenom {
		return amount
	}
	return amount.Mul(f.num).Quo(f.den)
}

func setupKeeper(t *testing.T) (sdk.Context, *Keeper, *fakeAssetKeeper, *fakeOracleKeeper) {
	t.Helper()

	key := storetypes.NewKVStoreKey(types.StoreKey)
	tkey := storetypes.NewTransientStoreKey("transient_test")
	testCtx := testutil.DefaultContextWithDB(t, key, tkey)
	ctx := testCtx.Ctx.WithBlockTime(time.Unix(1_700_000_000, 0))

	assets := newFakeAssetKeeper()
	oracle := newFakeOracleKeeper(1, 10) // 10 usdc per atom
	k := NewKeeper(nil, key, assets, oracle, log.NewNopLogger())
	return ctx, k, assets, oracle
}

func afterGate(ctx sdk.Context) sdk.Context {
	return ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(types.DefaultSettleWaitSeconds+1) * time.Second))
}

func TestSwapIntoOpensTicket(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000_000)

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000_000))
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	require.True(t, assets.Balance(ctx, aliceAddr, srcAsset).IsZero())
	require.Equal(t, math.NewInt(1_000_000), assets.Balance(ctx, types.ArenaAccount, srcAsset))

	ticket := k.GetTicket(ctx, id)
	require.NotNil(t, ticket)
	require.Equal(t, types.TicketStatusCommitted, ticket.Status)
	require.Equal(t, math.NewInt(100_000), ticket.AmountSettled)
	require.Equal(t, ctx.BlockTime().Unix()+types.DefaultSettleWaitSeconds, ticket.MaxSettlementTime)
}

func TestSwapIntoZeroAmount(t *testing.T) {
	ctx, k, _, _ := setupKeeper(t)

	_, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestSwapIntoInsufficientFunds(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 100)

	_, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(101))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestTicketIDsMonotonic(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 300)

	for want := uint64(1); want <= 3; want++ {
		id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(100))
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
}

func TestSwapFromBeforeGate(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000_000)

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000_000))
	require.NoError(t, err)

	_, err = k.SwapFrom(ctx, aliceAddr, id, destAsset)
	require.ErrorIs(t, err, types.ErrTicketNotReady)

	// One second short of the gate still fails.
	almost := ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(types.DefaultSettleWaitSeconds-1) * time.Second))
	_, err = k.SwapFrom(almost, aliceAddr, id, destAsset)
	require.ErrorIs(t, err, types.ErrTicketNotReady)
}

func TestSwapFromAfterGate(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000_000)
	assets.fund(types.ArenaAccount, destAsset, 200_000)

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000_000))
	require.NoError(t, err)

	out, err := k.SwapFrom(afterGate(ctx), aliceAddr, id, destAsset)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100_000), out)
	require.Equal(t, math.NewInt(100_000), assets.Balance(ctx, aliceAddr, destAsset))

	ticket := k.GetTicket(ctx, id)
	require.Equal(t, types.TicketStatusConsumed, ticket.Status)
}

func TestSwapFromReplay(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000_000)
	assets.fund(types.ArenaAccount, destAsset, 200_000)

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000_000))
	require.NoError(t, err)

	settled := afterGate(ctx)
	_, err = k.SwapFrom(settled, aliceAddr, id, destAsset)
	require.NoError(t, err)

	_, err = k.SwapFrom(settled, aliceAddr, id, destAsset)
	require.ErrorIs(t, err, types.ErrTicketAlreadyConsumed)
}

func TestSwapFromWrongOwner(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000_000)

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000_000))
	require.NoError(t, err)

	_, err = k.SwapFrom(afterGate(ctx), bobAddr, id, destAsset)
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestSwapFromAssetMismatch(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000_000)

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000_000))
	require.NoError(t, err)

	_, err = k.SwapFrom(afterGate(ctx), aliceAddr, id, "osmo")
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}

func TestSwapFromUnknownTicket(t *testing.T) {
	ctx, k, _, _ := setupKeeper(t)

	_, err := k.SwapFrom(ctx, aliceAddr, 99, destAsset)
	require.ErrorIs(t, err, types.ErrTicketNotFound)
}

func TestEstimateTracksOracleUntilResolved(t *testing.T) {
	ctx, k, assets, oracle := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000_000)

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000_000))
	require.NoError(t, err)

	// Estimate moves with the oracle while the ticket is committed.
	oracle.num = math.NewInt(2)
	est, err := k.EstimateSettled(ctx, id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200_000), est)

	// First access past the gate freezes the settled amount.
	settled := afterGate(ctx)
	est, err = k.EstimateSettled(settled, id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200_000), est)

	oracle.num = math.NewInt(5)
	est, err = k.EstimateSettled(settled, id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200_000), est)
}

func TestSettleWaitSecondsOverride(t *testing.T) {
	ctx, k, assets, _ := setupKeeper(t)
	assets.fund(aliceAddr, srcAsset, 1_000)

	k.SetSettleWaitSeconds(ctx, 5)
	require.Equal(t, int64(5), k.GetSettleWaitSeconds(ctx))

	id, err := k.SwapInto(ctx, aliceAddr, srcAsset, destAsset, math.NewInt(1_000))
	require.NoError(t, err)

	ticket := k.GetTicket(ctx, id)
	require.Equal(t, ctx.BlockTime().Unix()+5, ticket.MaxSettlementTime)
}
