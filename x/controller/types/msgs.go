package types

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgRegister          = "register"
	TypeMsgBindVault         = "bind_vault"
	TypeMsgInvest            = "invest"
	TypeMsgHarvestAll        = "harvest_all"
	TypeMsgExec              = "exec"
	TypeMsgWithdrawMinnerFee = "withdraw_minner_fee"
)

// MsgRegister defines the Register message
type MsgRegister struct {
	Caller     string `json:"caller"`
	StrategyID string `json:"strategy_id"`
	Strategist bool   `json:"strategist"`
}

// Route implements sdk.Msg
func (msg MsgRegister) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRegister) Type() string { return TypeMsgRegister }

// ValidateBasic implements sdk.Msg
func (msg MsgRegister) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return errors.New("strategy id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRegister) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRegister) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRegister) Reset() { *msg = MsgRegister{} }

// String implements proto.Message
func (msg MsgRegister) String() string {
	return fmt.Sprintf("MsgRegister{Caller: %s, StrategyID: %s, Strategist: %t}", msg.Caller, msg.StrategyID, msg.Strategist)
}

// MsgRegisterResponse defines the Register response
type MsgRegisterResponse struct{}

// MsgBindVault defines the BindVault message
type MsgBindVault struct {
	Caller        string `json:"caller"`
	VaultID       string `json:"vault_id"`
	StrategyID    string `json:"strategy_id"`
	InitialAmount string `json:"initial_amount"`
	MaxFee        string `json:"max_fee"`
}

// Route implements sdk.Msg
func (msg MsgBindVault) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgBindVault) Type() string { return TypeMsgBindVault }

// ValidateBasic implements sdk.Msg
func (msg MsgBindVault) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" || msg.StrategyID == "" {
		return errors.New("vault id and strategy id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgBindVault) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgBindVault) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBindVault) Reset() { *msg = MsgBindVault{} }

// String implements proto.Message
func (msg MsgBindVault) String() string {
	return fmt.Sprintf("MsgBindVault{VaultID: %s, StrategyID: %s, InitialAmount: %s, MaxFee: %s}",
		msg.VaultID, msg.StrategyID, msg.InitialAmount, msg.MaxFee)
}

// MsgBindVaultResponse defines the BindVault response
type MsgBindVaultResponse struct{}

// MsgInvest defines the Invest message
type MsgInvest struct {
	Caller  string `json:"caller"`
	VaultID string `json:"vault_id"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgInvest) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgInvest) Type() string { return TypeMsgInvest }

// ValidateBasic implements sdk.Msg
func (msg MsgInvest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return errors.New("vault id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgInvest) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgInvest) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgInvest) Reset() { *msg = MsgInvest{} }

// String implements proto.Message
func (msg MsgInvest) String() string {
	return fmt.Sprintf("MsgInvest{VaultID: %s, Amount: %s}", msg.VaultID, msg.Amount)
}

// MsgInvestResponse defines the Invest response
type MsgInvestResponse struct{}

// MsgHarvestAll defines the HarvestAll message
type MsgHarvestAll struct {
	Caller  string `json:"caller"`
	VaultID string `json:"vault_id"`
}

// Route implements sdk.Msg
func (msg MsgHarvestAll) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgHarvestAll) Type() string { return TypeMsgHarvestAll }

// ValidateBasic implements sdk.Msg
func (msg MsgHarvestAll) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return errors.New("vault id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgHarvestAll) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgHarvestAll) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgHarvestAll) Reset() { *msg = MsgHarvestAll{} }

// String implements proto.Message
func (msg MsgHarvestAll) String() string {
	return fmt.Sprintf("MsgHarvestAll{VaultID: %s}", msg.VaultID)
}

// MsgHarvestAllResponse defines the HarvestAll response
type MsgHarvestAllResponse struct {
	Yield string `json:"yield"`
}

// MsgExec defines the Exec message
type MsgExec struct {
	Caller        string   `json:"caller"`
	StrategyID    string   `json:"strategy_id"`
	PullFromVault bool     `json:"pull_from_vault"`
	PullAmount    string   `json:"pull_amount"`
	Kind          string   `json:"kind"`
	Denom         string   `json:"denom,omitempty"`
	Denoms        []string `json:"denoms,omitempty"`
	Weight        string   `json:"weight,omitempty"`
	Amount        string   `json:"amount,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgExec) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExec) Type() string { return TypeMsgExec }

// ValidateBasic implements sdk.Msg
func (msg MsgExec) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return errors.New("strategy id cannot be empty")
	}
	if !CommandKind(msg.Kind).Valid() {
		return ErrUnknownCommand
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgExec) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExec) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExec) Reset() { *msg = MsgExec{} }

// String implements proto.Message
func (msg MsgExec) String() string {
	return fmt.Sprintf("MsgExec{StrategyID: %s, Kind: %s}", msg.StrategyID, msg.Kind)
}

// MsgExecResponse defines the Exec response
type MsgExecResponse struct{}

// MsgWithdrawMinnerFee defines the WithdrawMinnerFee message
type MsgWithdrawMinnerFee struct {
	Caller  string `json:"caller"`
	VaultID string `json:"vault_id"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawMinnerFee) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawMinnerFee) Type() string { return TypeMsgWithdrawMinnerFee }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawMinnerFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return errors.New("vault id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawMinnerFee) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawMinnerFee) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawMinnerFee) Reset() { *msg = MsgWithdrawMinnerFee{} }

// String implements proto.Message
func (msg MsgWithdrawMinnerFee) String() string {
	return fmt.Sprintf("MsgWithdrawMinnerFee{VaultID: %s, Amount: %s}", msg.VaultID, msg.Amount)
}

// MsgWithdrawMinnerFeeResponse defines the WithdrawMinnerFee response
type MsgWithdrawMinnerFeeResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgRegister{}
	_ sdk.Msg = &MsgBindVault{}
	_ sdk.Msg = &MsgInvest{}
	_ sdk.Msg = &MsgHarvestAll{}
	_ sdk.Msg = &MsgExec{}
	_ sdk.Msg = &MsgWithdrawMinnerFee{}
)
