package types

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateStrategy = "create_strategy"
	TypeMsgInitStrategy   = "init_strategy"
	TypeMsgApproveTokens  = "approve_tokens"
	TypeMsgWithdraw       = "withdraw"
	TypeMsgWithdrawAll    = "withdraw_all"
)

// MsgCreateStrategy defines the CreateStrategy message
type MsgCreateStrategy struct {
	Caller         string `json:"caller"`
	StrategyID     string `json:"strategy_id"`
	Variant        string `json:"variant"`
	ReferenceAsset string `json:"reference_asset"`
	Controller     string `json:"controller"`
}

// Route implements sdk.Msg
func (msg MsgCreateStrategy) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateStrategy) Type() string { return TypeMsgCreateStrategy }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateStrategy) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return errors.New("strategy id cannot be empty")
	}
	if !Variant(msg.Variant).Valid() {
		return ErrVariantMismatch
	}
	if msg.ReferenceAsset == "" {
		return errors.New("reference asset cannot be empty")
	}
	if msg.Controller == "" {
		return errors.New("controller cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateStrategy) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateStrategy) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateStrategy) Reset() { *msg = MsgCreateStrategy{} }

// String implements proto.Message
func (msg MsgCreateStrategy) String() string {
	return fmt.Sprintf("MsgCreateStrategy{StrategyID: %s, Variant: %s, ReferenceAsset: %s}",
		msg.StrategyID, msg.Variant, msg.ReferenceAsset)
}

// MsgCreateStrategyResponse defines the CreateStrategy response
type MsgCreateStrategyResponse struct{}

// MsgInitStrategy defines the InitStrategy message
type MsgInitStrategy struct {
	Caller     string `json:"caller"`
	StrategyID string `json:"strategy_id"`
}

// Route implements sdk.Msg
func (msg MsgInitStrategy) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgInitStrategy) Type() string { return TypeMsgInitStrategy }

// ValidateBasic implements sdk.Msg
func (msg MsgInitStrategy) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return errors.New("strategy id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgInitStrategy) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgInitStrategy) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgInitStrategy) Reset() { *msg = MsgInitStrategy{} }

// String implements proto.Message
func (msg MsgInitStrategy) String() string {
	return fmt.Sprintf("MsgInitStrategy{StrategyID: %s}", msg.StrategyID)
}

// MsgInitStrategyResponse defines the InitStrategy response
type MsgInitStrategyResponse struct{}

// MsgApproveTokens defines the ApproveTokens message
type MsgApproveTokens struct {
	Caller     string `json:"caller"`
	StrategyID string `json:"strategy_id"`
}

// Route implements sdk.Msg
func (msg MsgApproveTokens) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApproveTokens) Type() string { return TypeMsgApproveTokens }

// ValidateBasic implements sdk.Msg
func (msg MsgApproveTokens) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return errors.New("strategy id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgApproveTokens) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgApproveTokens) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgApproveTokens) Reset() { *msg = MsgApproveTokens{} }

// String implements proto.Message
func (msg MsgApproveTokens) String() string {
	return fmt.Sprintf("MsgApproveTokens{StrategyID: %s}", msg.StrategyID)
}

// MsgApproveTokensResponse defines the ApproveTokens response
type MsgApproveTokensResponse struct{}

// MsgWithdraw defines the Withdraw message
type MsgWithdraw struct {
	Caller     string `json:"caller"`
	StrategyID string `json:"strategy_id"`
	Recipient  string `json:"recipient"`
	Amount     string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgWithdraw) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdraw) Type() string { return TypeMsgWithdraw }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return errors.New("strategy id cannot be empty")
	}
	if msg.Recipient == "" {
		return errors.New("recipient cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdraw) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdraw) Reset() { *msg = MsgWithdraw{} }

// String implements proto.Message
func (msg MsgWithdraw) String() string {
	return fmt.Sprintf("MsgWithdraw{StrategyID: %s, Recipient: %s, Amount: %s}",
		msg.StrategyID, msg.Recipient, msg.Amount)
}

// MsgWithdrawResponse defines the Withdraw response
type MsgWithdrawResponse struct{}

// MsgWithdrawAll defines the WithdrawAll message
type MsgWithdrawAll struct {
	Caller     string `json:"caller"`
	StrategyID string `json:"strategy_id"`
	Recipient  string `json:"recipient"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawAll) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawAll) Type() string { return TypeMsgWithdrawAll }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawAll) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return errors.New("strategy id cannot be empty")
	}
	if msg.Recipient == "" {
		return errors.New("recipient cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawAll) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawAll) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawAll) Reset() { *msg = MsgWithdrawAll{} }

// String implements proto.Message
func (msg MsgWithdrawAll) String() string {
	return fmt.Sprintf("MsgWithdrawAll{StrategyID: %s, Recipient: %s}", msg.StrategyID, msg.Recipient)
}

// MsgWithdrawAllResponse defines the WithdrawAll response
type MsgWithdrawAllResponse struct {
	Amount string `json:"amount"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateStrategy{}
	_ sdk.Msg = &MsgInitStrategy{}
	_ sdk.Msg = &MsgApproveTokens{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgWithdrawAll{}
)
