package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/kfund/x/kvault/types"
)

func TestSetFeeValidation(t *testing.T) {
	ctx, k, _ := setupVault(t)

	bad := types.NewFeeRecord(types.FeeJoin, math.NewInt(1001), math.NewInt(1000), math.ZeroInt())
	err := k.SetFee(ctx, governanceAddr, testVaultID, bad)
	require.ErrorIs(t, err, types.ErrInvalidFeeRate)

	good := types.NewFeeRecord(types.FeeJoin, math.NewInt(5), math.NewInt(1000), math.ZeroInt())
	err = k.SetFee(ctx, aliceAddr, testVaultID, good)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, good))
	stored := k.GetFee(ctx, testVaultID, types.FeeJoin)
	require.Equal(t, math.NewInt(5), stored.Numerator)
}

func TestGetFeeDefaultsToZero(t *testing.T) {
	ctx, k, _ := setupVault(t)

	record := k.GetFee(ctx, testVaultID, types.FeePerformance)
	require.True(t, record.Numerator.IsZero())
	require.True(t, record.CalcFee(math.NewInt(1_000_000)).IsZero())
}

func TestManagementFeeAccrual(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	// 2% per year
	record := types.NewFeeRecord(types.FeeManagement, math.NewInt(20), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	// One year later the full annual dilution is due
	later := ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(types.SecondsPerYear) * time.Second))
	fee, err := k.ChargeOutstandingManagementFee(later, governanceAddr, testVaultID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(20_000), fee)
	require.Equal(t, math.NewInt(20_000), k.GetBalance(later, testVaultID, types.FeeCollector))

	vault := k.GetVault(later, testVaultID)
	require.Equal(t, math.NewInt(1_020_000), vault.TotalSupply)
	require.Equal(t, later.BlockTime().Unix(), vault.LastManagementFeeAt)
}

func TestManagementFeeZeroElapsed(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	record := types.NewFeeRecord(types.FeeManagement, math.NewInt(20), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	// Charging in the block of the last stamp mints nothing
	fee, err := k.ChargeOutstandingManagementFee(ctx, governanceAddr, testVaultID)
	require.NoError(t, err)
	require.True(t, fee.IsZero())
	require.True(t, k.GetBalance(ctx, testVaultID, types.FeeCollector).IsZero())
}

func TestManagementFeeChargeTwice(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	record := types.NewFeeRecord(types.FeeManagement, math.NewInt(20), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	later := ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(types.SecondsPerYear) * time.Second))
	first, err := k.ChargeOutstandingManagementFee(later, governanceAddr, testVaultID)
	require.NoError(t, err)
	require.True(t, first.IsPositive())

	// Immediate second charge accrues nothing
	second, err := k.ChargeOutstandingManagementFee(later, governanceAddr, testVaultID)
	require.NoError(t, err)
	require.True(t, second.IsZero())
}

func TestChargeManagementFeeUnauthorized(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	record := types.NewFeeRecord(types.FeeManagement, math.NewInt(20), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	later := ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(types.SecondsPerYear) * time.Second))
	_, err = k.ChargeOutstandingManagementFee(later, bobAddr, testVaultID)
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.True(t, k.GetBalance(later, testVaultID, types.FeeCollector).IsZero())

	vault := k.GetVault(later, testVaultID)
	require.Equal(t, math.NewInt(1_000_000), vault.TotalSupply)
}

func TestChargePerformanceFeeUnauthorized(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	record := types.NewFeeRecord(types.FeePerformance, math.NewInt(200), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	// Double the NAV, then have a stranger try to force the charge at the
	// peak. Neither alice's shares nor her watermark may move.
	require.NoError(t, k.CreditCash(ctx, testVaultID, math.NewInt(1_000_000)))
	markBefore := k.GetHighWaterMark(ctx, testVaultID, aliceAddr)

	_, err = k.ChargeOutstandingPerformanceFee(ctx, bobAddr, testVaultID, aliceAddr)
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.Equal(t, math.NewInt(1_000_000), k.GetBalance(ctx, testVaultID, aliceAddr))
	require.True(t, k.GetBalance(ctx, testVaultID, types.FeeCollector).IsZero())
	require.Equal(t, markBefore, k.GetHighWaterMark(ctx, testVaultID, aliceAddr))
}

func TestPerformanceFeeOnGain(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	// 20% of gains
	record := types.NewFeeRecord(types.FeePerformance, math.NewInt(200), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	// The join already set the watermark at the deposit value, so charging
	// with no gain collects nothing
	fee, err := k.ChargeOutstandingPerformanceFee(ctx, governanceAddr, testVaultID, aliceAddr)
	require.NoError(t, err)
	require.True(t, fee.IsZero())

	// Grow the NAV by 50%: alice's net value rises to 1_500_000
	require.NoError(t, k.CreditCash(ctx, testVaultID, math.NewInt(500_000)))

	fee, err = k.ChargeOutstandingPerformanceFee(ctx, governanceAddr, testVaultID, aliceAddr)
	require.NoError(t, err)
	// 20% of the 500_000 gain
	require.Equal(t, math.NewInt(100_000), fee)
	require.True(t, k.GetBalance(ctx, testVaultID, types.FeeCollector).IsPositive())
}

func TestPerformanceFeeIdempotentAtSameNAV(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	record := types.NewFeeRecord(types.FeePerformance, math.NewInt(200), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	// Establish the watermark, then grow the NAV by 10%
	_, err = k.ChargeOutstandingPerformanceFee(ctx, governanceAddr, testVaultID, aliceAddr)
	require.NoError(t, err)
	markBefore := k.GetHighWaterMark(ctx, testVaultID, aliceAddr)

	require.NoError(t, k.CreditCash(ctx, testVaultID, math.NewInt(100_000)))

	fee, err := k.ChargeOutstandingPerformanceFee(ctx, governanceAddr, testVaultID, aliceAddr)
	require.NoError(t, err)
	require.True(t, fee.IsPositive())
	require.True(t, k.GetHighWaterMark(ctx, testVaultID, aliceAddr).GT(markBefore))

	// Charging again at the same NAV collects nothing
	fee, err = k.ChargeOutstandingPerformanceFee(ctx, governanceAddr, testVaultID, aliceAddr)
	require.NoError(t, err)
	require.True(t, fee.IsZero())
}

func TestPerformanceFeeMarkAdvancesOnLoss(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	record := types.NewFeeRecord(types.FeePerformance, math.NewInt(200), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	_, err = k.ChargeOutstandingPerformanceFee(ctx, governanceAddr, testVaultID, aliceAddr)
	require.NoError(t, err)
	markBefore := k.GetHighWaterMark(ctx, testVaultID, aliceAddr)

	// Simulate a drawdown by moving cash out through the controller
	require.NoError(t, k.SetController(ctx, governanceAddr, testVaultID, controllerAddr))
	require.NoError(t, k.TransferCash(ctx, controllerAddr, testVaultID, bobAddr, math.NewInt(200_000)))

	fee, err := k.ChargeOutstandingPerformanceFee(ctx, governanceAddr, testVaultID, aliceAddr)
	require.NoError(t, err)
	require.True(t, fee.IsZero())

	// Watermark is written to the lower net value as well
	require.True(t, k.GetHighWaterMark(ctx, testVaultID, aliceAddr).LT(markBefore))
}

func TestCalcFeePreviews(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)
	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	record := types.NewFeeRecord(types.FeeExit, math.NewInt(10), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	fee, err := k.CalcJoinAndExitFee(ctx, testVaultID, types.FeeExit, math.NewInt(100_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000), fee)

	_, err = k.CalcJoinAndExitFee(ctx, testVaultID, types.FeeManagement, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInvalidFeeRate)

	mgmt, err := k.CalcManagementFee(ctx, testVaultID)
	require.NoError(t, err)
	require.True(t, mgmt.IsZero())

	perfRecord := types.NewFeeRecord(types.FeePerformance, math.NewInt(200), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, perfRecord))
	require.NoError(t, k.CreditCash(ctx, testVaultID, math.NewInt(100_000)))

	perf, err := k.CalcPerformanceFee(ctx, testVaultID, aliceAddr)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(20_000), perf)
}

func TestFeeChargeAuditTrail(t *testing.T) {
	ctx, k, assets := setupVault(t)
	assets.fund(aliceAddr, testAsset, 1_000_000)

	record := types.NewFeeRecord(types.FeeJoin, math.NewInt(5), math.NewInt(1000), math.ZeroInt())
	require.NoError(t, k.SetFee(ctx, governanceAddr, testVaultID, record))

	_, err := k.JoinPool(ctx, testVaultID, aliceAddr, math.NewInt(1_000_000))
	require.NoError(t, err)

	charges := k.GetFeeCharges(ctx, testVaultID)
	require.Len(t, charges, 1)
	require.Equal(t, types.FeeJoin, charges[0].Kind)
	require.Equal(t, aliceAddr, charges[0].Holder)
	require.Equal(t, math.NewInt(5_000), charges[0].FeeShares)
	require.NotEmpty(t, charges[0].ChargeID)
}
