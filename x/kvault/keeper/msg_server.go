package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/metrics"
	"github.com/openalpha/kfund/x/kvault/types"
)

// MsgServer defines the kvault MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

func parseInt(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.ZeroInt(), errors.New("invalid integer amount: " + s)
	}
	return amount, nil
}

// InitVault handles MsgInitVault
func (m *MsgServer) InitVault(ctx context.Context, msg *types.MsgInitVault) (*types.MsgInitVaultResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.InitVault(sdkCtx, msg.Authority, msg.VaultID, msg.Name, msg.Symbol, msg.ReferenceAsset); err != nil {
		return nil, err
	}
	return &types.MsgInitVaultResponse{VaultID: msg.VaultID}, nil
}

// SetController handles MsgSetController
func (m *MsgServer) SetController(ctx context.Context, msg *types.MsgSetController) (*types.MsgSetControllerResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetController(sdkCtx, msg.Authority, msg.VaultID, msg.Controller); err != nil {
		return nil, err
	}
	return &types.MsgSetControllerResponse{}, nil
}

// JoinPool handles MsgJoinPool
func (m *MsgServer) JoinPool(ctx context.Context, msg *types.MsgJoinPool) (*types.MsgJoinPoolResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	shares, err := m.keeper.JoinPool(sdkCtx, msg.VaultID, msg.Depositor, amount)
	if err != nil {
		return nil, err
	}

	metrics.RecordJoin(msg.VaultID, amount, shares)
	if vault := m.keeper.GetVault(sdkCtx, msg.VaultID); vault != nil {
		metrics.UpdateVaultState(msg.VaultID, vault.TotalSupply, vault.TotalAssets())
	}
	return &types.MsgJoinPoolResponse{SharesReceived: shares.String()}, nil
}

// ExitPool handles MsgExitPool
func (m *MsgServer) ExitPool(ctx context.Context, msg *types.MsgExitPool) (*types.MsgExitPoolResponse, error) {
	shares, err := parseInt(msg.Shares)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amount, err := m.keeper.ExitPool(sdkCtx, msg.VaultID, msg.Holder, shares)
	if err != nil {
		return nil, err
	}

	metrics.RecordExit(msg.VaultID, shares, amount)
	if vault := m.keeper.GetVault(sdkCtx, msg.VaultID); vault != nil {
		metrics.UpdateVaultState(msg.VaultID, vault.TotalSupply, vault.TotalAssets())
	}
	return &types.MsgExitPoolResponse{AmountReceived: amount.String()}, nil
}

// ExitPoolOfUnderlying handles MsgExitPoolOfUnderlying
func (m *MsgServer) ExitPoolOfUnderlying(ctx context.Context, msg *types.MsgExitPoolOfUnderlying) (*types.MsgExitPoolOfUnderlyingResponse, error) {
	shares, err := parseInt(msg.Shares)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.ExitPoolOfUnderlying(sdkCtx, msg.VaultID, msg.Holder, shares); err != nil {
		return nil, err
	}
	return &types.MsgExitPoolOfUnderlyingResponse{}, nil
}

// SetFee handles MsgSetFee
func (m *MsgServer) SetFee(ctx context.Context, msg *types.MsgSetFee) (*types.MsgSetFeeResponse, error) {
	numerator, err := parseInt(msg.Numerator)
	if err != nil {
		return nil, err
	}
	denominator, err := parseInt(msg.Denominator)
	if err != nil {
		return nil, err
	}
	cap, err := parseInt(msg.Cap)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	record := types.NewFeeRecord(types.FeeKind(msg.Kind), numerator, denominator, cap)
	if err := m.keeper.SetFee(sdkCtx, msg.Authority, msg.VaultID, record); err != nil {
		return nil, err
	}
	return &types.MsgSetFeeResponse{}, nil
}

// TransferShares handles MsgTransferShares
func (m *MsgServer) TransferShares(ctx context.Context, msg *types.MsgTransferShares) (*types.MsgTransferSharesResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.TransferShares(sdkCtx, msg.VaultID, msg.From, msg.To, amount); err != nil {
		return nil, err
	}
	return &types.MsgTransferSharesResponse{}, nil
}

// ApproveShares handles MsgApproveShares
func (m *MsgServer) ApproveShares(ctx context.Context, msg *types.MsgApproveShares) (*types.MsgApproveSharesResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.ApproveShares(sdkCtx, msg.VaultID, msg.Owner, msg.Spender, amount); err != nil {
		return nil, err
	}
	return &types.MsgApproveSharesResponse{}, nil
}

// TransferSharesFrom handles MsgTransferSharesFrom
func (m *MsgServer) TransferSharesFrom(ctx context.Context, msg *types.MsgTransferSharesFrom) (*types.MsgTransferSharesFromResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.TransferSharesFrom(sdkCtx, msg.VaultID, msg.Spender, msg.Owner, msg.To, amount); err != nil {
		return nil, err
	}
	return &types.MsgTransferSharesFromResponse{}, nil
}

// ChargeManagementFee handles MsgChargeManagementFee
func (m *MsgServer) ChargeManagementFee(ctx context.Context, msg *types.MsgChargeManagementFee) (*types.MsgChargeManagementFeeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	fee, err := m.keeper.ChargeOutstandingManagementFee(sdkCtx, msg.Caller, msg.VaultID)
	if err != nil {
		return nil, err
	}

	metrics.RecordFeeCharge(msg.VaultID, types.FeeManagement.String(), fee)
	return &types.MsgChargeManagementFeeResponse{FeeShares: fee.String()}, nil
}

// ChargePerformanceFee handles MsgChargePerformanceFee
func (m *MsgServer) ChargePerformanceFee(ctx context.Context, msg *types.MsgChargePerformanceFee) (*types.MsgChargePerformanceFeeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	fee, err := m.keeper.ChargeOutstandingPerformanceFee(sdkCtx, msg.Caller, msg.VaultID, msg.Holder)
	if err != nil {
		return nil, err
	}

	metrics.RecordFeeCharge(msg.VaultID, types.FeePerformance.String(), fee)
	return &types.MsgChargePerformanceFeeResponse{Fee: fee.String()}, nil
}
