package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/kfund/x/strategy/types"
)

// setupDeployed prepares a pair strategy with 1_000_000 idle deployed into a
// usdc/atom basket.
func setupDeployed(t *testing.T) (sdk.Context, *Keeper, *fakeAssetKeeper, *fakeVenueKeeper) {
	t.Helper()

	ctx, k, assets, venue := setupActive(t, types.VariantPair, 1_000_000)
	require.NoError(t, k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset, "atom"}))
	require.NoError(t, k.AddLiquidity(ctx, testStrategyID, math.NewInt(1_000_000)))
	return ctx, k, assets, venue
}

func TestAddLiquidityDeploys(t *testing.T) {
	ctx, k, _, _ := setupDeployed(t)

	strategy := k.GetStrategy(ctx, testStrategyID)
	require.True(t, strategy.Idle.IsZero())
	require.Equal(t, math.NewInt(1_000_000), strategy.LiquidityShares)
	require.Equal(t, math.NewInt(1_000), strategy.InitialShareFloor)
	require.Equal(t, math.NewInt(500_000), strategy.Tokens[0].Balance)
	require.Equal(t, math.NewInt(500_000), strategy.Tokens[1].Balance)

	total, err := k.Assets(ctx, testStrategyID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), total)
}

func TestAddLiquidityRequiresApproval(t *testing.T) {
	ctx, k, _, _ := setupKeeper(t)
	require.NoError(t, k.CreateStrategy(ctx, governanceAddr, testStrategyID,
		types.VariantPair, refAsset, controllerAddr))
	require.NoError(t, k.Init(ctx, controllerAddr, testStrategyID))
	require.NoError(t, k.Invest(ctx, testStrategyID, math.NewInt(1_000)))
	require.NoError(t, k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset, "atom"}))

	err := k.AddLiquidity(ctx, testStrategyID, math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrNotApproved)
}

func TestAddLiquidityWithoutBasket(t *testing.T) {
	ctx, k, _, _ := setupActive(t, types.VariantPair, 1_000)

	err := k.AddLiquidity(ctx, testStrategyID, math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrNoUnderlyingTokens)
}

func TestAddLiquidityExceedsIdle(t *testing.T) {
	ctx, k, _, _ := setupActive(t, types.VariantPair, 1_000)
	require.NoError(t, k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset, "atom"}))

	err := k.AddLiquidity(ctx, testStrategyID, math.NewInt(1_001))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestAddLiquidityWeightedRejected(t *testing.T) {
	ctx, k, _, _ := setupActive(t, types.VariantWeighted, 1_000)

	err := k.AddLiquidity(ctx, testStrategyID, math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrVariantMismatch)
}

func TestSetUnderlyingTokensPairNeedsTwo(t *testing.T) {
	ctx, k, _, _ := setupActive(t, types.VariantPair, 0)

	err := k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset, "atom", "osmo"})
	require.ErrorIs(t, err, types.ErrVariantMismatch)

	err = k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset})
	require.ErrorIs(t, err, types.ErrVariantMismatch)
}

func TestSetUnderlyingTokensDynamicBasket(t *testing.T) {
	ctx, k, _, _ := setupActive(t, types.VariantDynamic, 0)

	require.NoError(t, k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset, "atom", "osmo"}))
	denoms, _, err := k.GetTokenNumbers(ctx, testStrategyID)
	require.NoError(t, err)
	require.Equal(t, []string{refAsset, "atom", "osmo"}, denoms)
}

func TestSetUnderlyingTokensWeightedRejected(t *testing.T) {
	ctx, k, _, _ := setupActive(t, types.VariantWeighted, 0)

	err := k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset, "atom"})
	require.ErrorIs(t, err, types.ErrVariantMismatch)
}

func TestSetUnderlyingTokensAfterDeploy(t *testing.T) {
	ctx, k, _, _ := setupDeployed(t)

	err := k.SetUnderlyingTokens(ctx, testStrategyID, []string{refAsset, "osmo"})
	require.ErrorIs(t, err, types.ErrPoolExists)
}

func TestRemoveLiquidity(t *testing.T) {
	ctx, k, _, _ := setupDeployed(t)

	require.NoError(t, k.RemoveLiquidity(ctx, testStrategyID, math.NewInt(999_000)))

	strategy := k.GetStrategy(ctx, testStrategyID)
	require.Equal(t, math.NewInt(999_000), strategy.Idle)
	require.Equal(t, math.NewInt(1_000), strategy.LiquidityShares)
	require.Equal(t, math.NewInt(500), strategy.Tokens[0].Balance)
	require.Equal(t, math.NewInt(500), strategy.Tokens[1].Balance)
}

func TestRemoveLiquidityBelowFloor(t *testing.T) {
	ctx, k, _, _ := setupDeployed(t)

	err := k.RemoveLiquidity(ctx, testStrategyID, math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrShareFloor)

	err = k.RemoveLiquidity(ctx, testStrategyID, math.NewInt(999_001))
	require.ErrorIs(t, err, types.ErrShareFloor)
}

func TestWithdrawAllLeavesFloor(t *testing.T) {
	ctx, k, assets, _ := setupDeployed(t)
	assets.fund(types.StrategyAccount(testStrategyID), refAsset, 1_000_000)

	total, err := k.WithdrawAll(ctx, controllerAddr, testStrategyID, aliceAddr)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(999_000), total)
	require.Equal(t, math.NewInt(999_000), assets.Balance(ctx, aliceAddr, refAsset))

	strategy := k.GetStrategy(ctx, testStrategyID)
	require.Equal(t, math.NewInt(1_000), strategy.LiquidityShares)

	// The floor itself can never be unwound.
	_, err = k.WithdrawAll(ctx, controllerAddr, testStrategyID, aliceAddr)
	require.ErrorIs(t, err, types.ErrShareFloor)
}

func TestExtractableMatchesValuation(t *testing.T) {
	ctx, k, _, _ := setupDeployed(t)

	denoms, amounts, err := k.ExtractableUnderlyingNumber(ctx, testStrategyID, math.NewInt(1_000_000))
	require.NoError(t, err)
	require.Equal(t, []string{refAsset, "atom"}, denoms)
	require.Equal(t, math.NewInt(500_000), amounts[0])
	require.Equal(t, math.NewInt(500_000), amounts[1])

	_, amounts, err = k.ExtractableUnderlyingNumber(ctx, testStrategyID, math.NewInt(500_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(250_000), amounts[0])
	require.Equal(t, math.NewInt(250_000), amounts[1])
}

func TestExtractableExceedsValuation(t *testing.T) {
	ctx, k, _, _ := setupDeployed(t)

	_, _, err := k.ExtractableUnderlyingNumber(ctx, testStrategyID, math.NewInt(1_000_001))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestPayOutUnderlying(t *testing.T) {
	ctx, k, assets, _ := setupDeployed(t)
	account := types.StrategyAccount(testStrategyID)
	assets.fund(account, refAsset, 500_000)
	assets.fund(account, "atom", 500_000)

	denoms, amounts, err := k.ExtractableUnderlyingNumber(ctx, testStrategyID, math.NewInt(500_000))
	require.NoError(t, err)
	require.NoError(t, k.PayOutUnderlying(ctx, testStrategyID, aliceAddr, denoms, amounts))

	require.Equal(t, math.NewInt(250_000), assets.Balance(ctx, aliceAddr, refAsset))
	require.Equal(t, math.NewInt(250_000), assets.Balance(ctx, aliceAddr, "atom"))

	strategy := k.GetStrategy(ctx, testStrategyID)
	require.Equal(t, math.NewInt(250_000), strategy.Tokens[0].Balance)
	require.Equal(t, math.NewInt(250_000), strategy.Tokens[1].Balance)
	require.Equal(t, math.NewInt(500_000), strategy.LiquidityShares)
}
