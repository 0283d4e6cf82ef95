package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/metrics"
	"github.com/openalpha/kfund/x/controller/types"
)

// MsgServer defines the controller MsgServer
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

func parseOptionalInt(s string) (math.Int, error) {
	if s == "" {
		return math.ZeroInt(), nil
	}
	return parseInt(s)
}

// Register handles MsgRegister
func (m *MsgServer) Register(ctx context.Context, msg *types.MsgRegister) (*types.MsgRegisterResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.Register(sdkCtx, msg.Caller, msg.StrategyID, msg.Strategist); err != nil {
		return nil, err
	}
	return &types.MsgRegisterResponse{}, nil
}

// BindVault handles MsgBindVault
func (m *MsgServer) BindVault(ctx context.Context, msg *types.MsgBindVault) (*types.MsgBindVaultResponse, error) {
	initialAmount, err := parseOptionalInt(msg.InitialAmount)
	if err != nil {
		return nil, err
	}
	maxFee, err := parseOptionalInt(msg.MaxFee)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.BindVault(sdkCtx, msg.Caller, msg.VaultID, msg.StrategyID, initialAmount, maxFee); err != nil {
		return nil, err
	}

	if initialAmount.IsPositive() {
		metrics.RecordInvest(msg.VaultID, msg.StrategyID, initialAmount)
	}
	return &types.MsgBindVaultResponse{}, nil
}

// Invest handles MsgInvest
func (m *MsgServer) Invest(ctx context.Context, msg *types.MsgInvest) (*types.MsgInvestResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.Invest(sdkCtx, msg.Caller, msg.VaultID, amount); err != nil {
		return nil, err
	}

	if binding := m.keeper.GetBinding(sdkCtx, msg.VaultID); binding != nil {
		metrics.RecordInvest(msg.VaultID, binding.StrategyID, amount)
	}
	return &types.MsgInvestResponse{}, nil
}

// HarvestAll handles MsgHarvestAll
func (m *MsgServer) HarvestAll(ctx context.Context, msg *types.MsgHarvestAll) (*types.MsgHarvestAllResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	yield, err := m.keeper.HarvestAll(sdkCtx, msg.Caller, msg.VaultID)
	if err != nil {
		return nil, err
	}

	if binding := m.keeper.GetBinding(sdkCtx, msg.VaultID); binding != nil {
		metrics.RecordHarvest(msg.VaultID, binding.StrategyID, yield)
	}
	return &types.MsgHarvestAllResponse{Yield: yield.String()}, nil
}

// Exec handles MsgExec
func (m *MsgServer) Exec(ctx context.Context, msg *types.MsgExec) (*types.MsgExecResponse, error) {
	pullAmount, err := parseOptionalInt(msg.PullAmount)
	if err != nil {
		return nil, err
	}
	weight, err := parseOptionalInt(msg.Weight)
	if err != nil {
		return nil, err
	}
	amount, err := parseOptionalInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	cmd := types.StrategyCommand{
		Kind:   types.CommandKind(msg.Kind),
		Denom:  msg.Denom,
		Denoms: msg.Denoms,
		Weight: weight,
		Amount: amount,
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.Exec(sdkCtx, msg.Caller, msg.StrategyID, msg.PullFromVault, pullAmount, cmd); err != nil {
		metrics.RecordExecCommand(msg.StrategyID, msg.Kind, types.ExecStatusReverted)
		return nil, err
	}

	metrics.RecordExecCommand(msg.StrategyID, msg.Kind, types.ExecStatusOK)
	return &types.MsgExecResponse{}, nil
}

// WithdrawMinnerFee handles MsgWithdrawMinnerFee
func (m *MsgServer) WithdrawMinnerFee(ctx context.Context, msg *types.MsgWithdrawMinnerFee) (*types.MsgWithdrawMinnerFeeResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.WithdrawMinnerFee(sdkCtx, msg.Caller, msg.VaultID, amount); err != nil {
		return nil, err
	}

	metrics.RecordMinerFee(msg.VaultID)
	return &types.MsgWithdrawMinnerFeeResponse{}, nil
}
