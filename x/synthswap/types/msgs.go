package types

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgSwapInto = "swap_into"
	TypeMsgSwapFrom = "swap_from"
)

// MsgSwapInto defines the SwapInto message
type MsgSwapInto struct {
	Owner       string `json:"owner"`
	SourceAsset string `json:"source_asset"`
	DestAsset   string `json:"dest_asset"`
	AmountIn    string `json:"amount_in"`
}

// Route implements sdk.Msg
func (msg MsgSwapInto) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSwapInto) Type() string { return TypeMsgSwapInto }

// ValidateBasic implements sdk.Msg
func (msg MsgSwapInto) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if msg.SourceAsset == "" || msg.DestAsset == "" {
		return errors.New("source and destination assets cannot be empty")
	}
	if msg.SourceAsset == msg.DestAsset {
		return errors.New("source and destination assets must differ")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSwapInto) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSwapInto) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSwapInto) Reset() { *msg = MsgSwapInto{} }

// String implements proto.Message
func (msg MsgSwapInto) String() string {
	return fmt.Sprintf("MsgSwapInto{Owner: %s, SourceAsset: %s, DestAsset: %s, AmountIn: %s}",
		msg.Owner, msg.SourceAsset, msg.DestAsset, msg.AmountIn)
}

// MsgSwapIntoResponse defines the SwapInto response
type MsgSwapIntoResponse struct {
	TicketID uint64 `json:"ticket_id"`
}

// MsgSwapFrom defines the SwapFrom message
type MsgSwapFrom struct {
	Owner     string `json:"owner"`
	TicketID  uint64 `json:"ticket_id"`
	DestAsset string `json:"dest_asset"`
}

// Route implements sdk.Msg
func (msg MsgSwapFrom) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSwapFrom) Type() string { return TypeMsgSwapFrom }

// ValidateBasic implements sdk.Msg
func (msg MsgSwapFrom) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if msg.TicketID == 0 {
		return errors.New("ticket id cannot be zero")
	}
	if msg.DestAsset == "" {
		return errors.New("destination asset cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSwapFrom) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSwapFrom) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSwapFrom) Reset() { *msg = MsgSwapFrom{} }

// String implements proto.Message
func (msg MsgSwapFrom) String() string {
	return fmt.Sprintf("MsgSwapFrom{Owner: %s, TicketID: %d, DestAsset: %s}",
		msg.Owner, msg.TicketID, msg.DestAsset)
}

// MsgSwapFromResponse defines the SwapFrom response
type MsgSwapFromResponse struct {
	AmountOut string `json:"amount_out"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgSwapInto{}
	_ sdk.Msg = &MsgSwapFrom{}
)
