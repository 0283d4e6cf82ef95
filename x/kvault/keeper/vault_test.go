package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/kfund/x/kvault/types"
)

func TestInitVault(t *testing.T) {
	ctx, k, _ := setupKeeper(t)

	err := k.InitVault(ctx, governanceAddr, testVaultID, "KFund Main", "KF", testAsset)
	require.NoError(t, err)

	vault := k.GetVault(ctx, testVaultID)
	require.NotNil(t, vault)
	require.Equal(t, "KF", vault.Symbol)
	require.Equal(t, testAsset, vault.ReferenceAsset)
	require.True(t, vault.TotalSupply.IsZero())

	// Second init of the same id fails
	err = k.InitVault(ctx, governanceAddr, testVaultID, "KFund Main", "KF", testAsset)
	require.ErrorIs(t, err, types.ErrAlreadyInitialised)
}

func TestInitVaultUnauthorized(t *testing.T) {
	ctx, k, _ := setupKeeper(t)

	err := k.InitVault(ctx, aliceAddr, testVaultID, "KFund Main", "KF", testAsset)
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.Nil(t, k.GetVault(ctx, testVaultID))
}

func TestSetController(t *testing.T) {
	ctx, k, _ := setupVault(t)

	err := k.SetController(ctx, aliceAddr, testVaultID, controllerAddr)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = k.SetController(ctx, governanceAddr, testVaultID, controllerAddr)
	require.NoError(t, err)
	require.Equal(t, controllerAddr, k.GetVault(ctx, testVaultID).Controller)

	// Controller can only be set once
	err = k.SetController(ctx, governanceAddr, testVaultID, bobAddr)
	require.ErrorIs(t, err, types.ErrControllerSet)
}

func TestJoinPoolBootstrap(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000_000)

	shares, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000_000))
	require.NoError(t, err)

	// First join mints 1:1
	require.Equal(t, math.NewInt(1_000_000_000), shares)
	require.Equal(t, math.NewInt(1_000_000_000), k.GetBalance(ctx, testVaultID, aliceAddr))

	vault := k.GetVault(ctx, testVaultID)
	require.Equal(t, math.NewInt(1_000_000_000), vault.TotalSupply)
	require.Equal(t, math.NewInt(1_000_000_000), vault.Cash)
	require.True(t, assets.Balance(ctx, aliceAddr, testAsset).IsZero())
}

func TestJoinPoolZeroAmount(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000)

	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestJoinPoolInsufficientFunds(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 100)

	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(101))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestJoinPoolAtNAV(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	assets.fund(bobAddr, testAsset, 1_000_000)

	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	// Double the NAV, then Bob's deposit buys half the shares
	require.NoError(t, k.CreditCash(ctx, testVaultID, math.NewInt(1_000_000)))

	shares, err := k.JoinPool(ctx, testVaultID, bobAddr, math.NewInt(1_000_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500_000), shares)
}

func TestExitPoolRoundTripNoFees(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)

	shares, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	amount, err := k.ExitPool(ctx, testVaultID, aliceAddr, shares)
	require.NoError(t, err)

	// With zero fees and unchanged NAV the full deposit comes back
	require.Equal(t, math.NewInt(1_000_000), amount)
	require.Equal(t, math.NewInt(1_000_000), assets.Balance(ctx, aliceAddr, testAsset))

	vault := k.GetVault(ctx, testVaultID)
	require.True(t, vault.TotalSupply.IsZero())
	require.True(t, vault.Cash.IsZero())
}

func TestExitPoolZeroShares(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000))
	require.NoError(t, err)

	_, err = k.ExitPool(ctx, testVaultID, aliceAddr, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestExitPoolMoreThanBalance(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000))
	require.NoError(t, err)

	_, err = k.ExitPool(ctx, testVaultID, aliceAddr, math.NewInt(1_001))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestExitPoolLimitedToVaultCash(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	// Deploy most of the cash: NAV stays 1M (100k cash + 900k deployed) but
	// only 100k is redeemable in reference asset.
	require.NoError(t, k.SetController(ctx, governanceAddr, testVaultID, controllerAddr))
	require.NoError(t, k.TransferCash(ctx, controllerAddr, testVaultID, bobAddr, math.NewInt(900_000)))
	require.NoError(t, k.SetStrategyAssets(ctx, testVaultID, math.NewInt(900_000)))

	// A full redemption is worth more than the cash on hand and fails whole.
	_, err = k.ExitPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	require.Equal(t, math.NewInt(1_000_000), k.GetBalance(ctx, testVaultID, aliceAddr))

	// A slice covered by cash goes through at par.
	amount, err := k.ExitPool(ctx, testVaultID, aliceAddr, math.NewInt(100_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100_000), amount)
	require.True(t, k.GetVault(ctx, testVaultID).Cash.IsZero())
}

func TestJoinPoolChargesJoinFee(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)

	record := types.NewFeeRecord(types.FeeJoin, math.NewInt(5), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	shares, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	// 0.5% of the minted shares land on the fee sink
	require.Equal(t, math.NewInt(995_000), shares)
	require.Equal(t, math.NewInt(995_000), k.GetBalance(ctx, testVaultID, aliceAddr))
	require.Equal(t, math.NewInt(5_000), k.GetBalance(ctx, testVaultID, types.FeeCollector))

	// Supply still covers every balance
	vault := k.GetVault(ctx, testVaultID)
	require.Equal(t, vault.TotalSupply, sumBalances(ctx, k, testVaultID, aliceAddr, types.FeeCollector))
}

func TestExitPoolChargesExitFee(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)

	record := types.NewFeeRecord(types.FeeExit, math.NewInt(10), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	shares, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	amount, err := k.ExitPool(ctx, testVaultID, aliceAddr, shares)
	require.NoError(t, err)

	// 1% of the redeemed shares stay behind as fee shares
	require.Equal(t, math.NewInt(990_000), amount)
	require.Equal(t, math.NewInt(10_000), k.GetBalance(ctx, testVaultID, types.FeeCollector))
	require.True(t, k.GetBalance(ctx, testVaultID, aliceAddr).IsZero())
}

func TestExitPoolOfUnderlying(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)

	strategies := &fakeStrategyKeeper{assets: assets}
	k.SetControllerKeeper(fakeControllerKeeper{strategyID: "strat-1"})
	k.SetStrategyKeeper(strategies)

	shares, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	// Simulate deployment: cash moved out, deployed value tracked
	require.NoError(t, k.SetController(ctx, governanceAddr, testVaultID, controllerAddr))
	require.NoError(t, k.TransferCash(ctx, controllerAddr, testVaultID, "strat-1", math.NewInt(1_000_000)))
	require.NoError(t, k.SetStrategyAssets(ctx, testVaultID, math.NewInt(1_000_000)))

	err = k.ExitPoolOfUnderlying(ctx, testVaultID, aliceAddr, shares)
	require.NoError(t, err)

	// Basket paid out half and half
	require.Equal(t, math.NewInt(500_000), strategies.paid["atom"])
	require.Equal(t, math.NewInt(500_000), strategies.paid["osmo"])

	vault := k.GetVault(ctx, testVaultID)
	require.True(t, vault.TotalSupply.IsZero())
	require.True(t, vault.StrategyAssets.IsZero())
}

func TestExitPoolOfUnderlyingNoBinding(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000)
	k.SetControllerKeeper(fakeControllerKeeper{})
	k.SetStrategyKeeper(&fakeStrategyKeeper{})

	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000))
	require.NoError(t, err)

	err = k.ExitPoolOfUnderlying(ctx, testVaultID, aliceAddr, math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrNoBoundStrategy)
}

func TestTransferCashOnlyController(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	// No controller set yet
	err = k.TransferCash(ctx, controllerAddr, testVaultID, bobAddr, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrNotController)

	require.NoError(t, k.SetController(ctx, governanceAddr, testVaultID, controllerAddr))

	err = k.TransferCash(ctx, aliceAddr, testVaultID, bobAddr, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrNotController)

	err = k.TransferCash(ctx, controllerAddr, testVaultID, bobAddr, math.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), assets.Balance(ctx, bobAddr, testAsset))
	require.Equal(t, math.NewInt(999_900), k.GetVault(ctx, testVaultID).Cash)
}

func TestTransferCashExceedsCash(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000))
	require.NoError(t, err)
	require.NoError(t, k.SetController(ctx, governanceAddr, testVaultID, controllerAddr))

	err = k.TransferCash(ctx, controllerAddr, testVaultID, bobAddr, math.NewInt(1_001))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestShareTransfer(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000))
	require.NoError(t, err)

	require.NoError(t, k.TransferShares(ctx, testVaultID, aliceAddr, bobAddr, math.NewInt(400)))
	require.Equal(t, math.NewInt(600), k.GetBalance(ctx, testVaultID, aliceAddr))
	require.Equal(t, math.NewInt(400), k.GetBalance(ctx, testVaultID, bobAddr))

	// Supply unchanged by transfers
	require.Equal(t, math.NewInt(1_000), k.GetVault(ctx, testVaultID).TotalSupply)

	err = k.TransferShares(ctx, testVaultID, aliceAddr, bobAddr, math.NewInt(601))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestShareApproveAndTransferFrom(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000))
	require.NoError(t, err)

	require.NoError(t, k.ApproveShares(ctx, testVaultID, aliceAddr, bobAddr, math.NewInt(300)))
	require.Equal(t, math.NewInt(300), k.GetAllowance(ctx, testVaultID, aliceAddr, bobAddr))

	err = k.TransferSharesFrom(ctx, testVaultID, bobAddr, aliceAddr, bobAddr, math.NewInt(301))
	require.ErrorIs(t, err, types.ErrInsufficientAllowance)

	require.NoError(t, k.TransferSharesFrom(ctx, testVaultID, bobAddr, aliceAddr, bobAddr, math.NewInt(200)))
	require.Equal(t, math.NewInt(200), k.GetBalance(ctx, testVaultID, bobAddr))
	require.Equal(t, math.NewInt(100), k.GetAllowance(ctx, testVaultID, aliceAddr, bobAddr))
}

func TestCalcQueries(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	shares, err := k.CalcTokenToKf(ctx, testVaultID, math.NewInt(500_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500_000), shares)

	tokens, err := k.CalcKfToToken(ctx, testVaultID, math.NewInt(500_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500_000), tokens)

	_, err = k.CalcTokenToKf(ctx, "missing", math.NewInt(1))
	require.ErrorIs(t, err, types.ErrVaultNotFound)
}
