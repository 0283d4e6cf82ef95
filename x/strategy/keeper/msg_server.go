package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/x/strategy/types"
)

// MsgServer defines the strategy MsgServer
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

// CreateStrategy handles MsgCreateStrategy
func (m *MsgServer) CreateStrategy(ctx context.Context, msg *types.MsgCreateStrategy) (*types.MsgCreateStrategyResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.CreateStrategy(sdkCtx, msg.Caller, msg.StrategyID,
		types.Variant(msg.Variant), msg.ReferenceAsset, msg.Controller); err != nil {
		return nil, err
	}
	return &types.MsgCreateStrategyResponse{}, nil
}

// InitStrategy handles MsgInitStrategy
func (m *MsgServer) InitStrategy(ctx context.Context, msg *types.MsgInitStrategy) (*types.MsgInitStrategyResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.Init(sdkCtx, msg.Caller, msg.StrategyID); err != nil {
		return nil, err
	}
	return &types.MsgInitStrategyResponse{}, nil
}

// ApproveTokens handles MsgApproveTokens
func (m *MsgServer) ApproveTokens(ctx context.Context, msg *types.MsgApproveTokens) (*types.MsgApproveTokensResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.ApproveTokens(sdkCtx, msg.Caller, msg.StrategyID); err != nil {
		return nil, err
	}
	return &types.MsgApproveTokensResponse{}, nil
}

// Withdraw handles MsgWithdraw
func (m *MsgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.Withdraw(sdkCtx, msg.Caller, msg.StrategyID, msg.Recipient, amount); err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{}, nil
}

// WithdrawAll handles MsgWithdrawAll
func (m *MsgServer) WithdrawAll(ctx context.Context, msg *types.MsgWithdrawAll) (*types.MsgWithdrawAllResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amount, err := m.keeper.WithdrawAll(sdkCtx, msg.Caller, msg.StrategyID, msg.Recipient)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawAllResponse{Amount: amount.String()}, nil
}
