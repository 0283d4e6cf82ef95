package keeper

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/kfund/metrics"
	"github.com/openalpha/kfund/x/synthswap/types"
)

// MsgServer defines the synthswap MsgServer
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

// SwapInto handles MsgSwapInto
func (m *MsgServer) SwapInto(ctx context.Context, msg *types.MsgSwapInto) (*types.MsgSwapIntoResponse, error) {
	amountIn, err := parseInt(msg.AmountIn)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ticketID, err := m.keeper.SwapInto(sdkCtx, msg.Owner, msg.SourceAsset, msg.DestAsset, amountIn)
	if err != nil {
		return nil, err
	}

	metrics.RecordTicketOpened(msg.SourceAsset, msg.DestAsset)
	return &types.MsgSwapIntoResponse{TicketID: ticketID}, nil
}

// SwapFrom handles MsgSwapFrom
func (m *MsgServer) SwapFrom(ctx context.Context, msg *types.MsgSwapFrom) (*types.MsgSwapFromResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ticket := m.keeper.GetTicket(sdkCtx, msg.TicketID)

	amountOut, err := m.keeper.SwapFrom(sdkCtx, msg.Owner, msg.TicketID, msg.DestAsset)
	if err != nil {
		return nil, err
	}

	if ticket != nil {
		latency := sdkCtx.BlockTime().Sub(time.Unix(ticket.CreatedAt, 0))
		metrics.RecordTicketSettled(ticket.SourceAsset, ticket.DestAsset, latency.Seconds())
	}
	return &types.MsgSwapFromResponse{AmountOut: amountOut.String()}, nil
}
