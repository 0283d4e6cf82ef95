package types

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgInitVault            = "init_vault"
	TypeMsgSetController        = "set_controller"
	TypeMsgJoinPool             = "join_pool"
	TypeMsgExitPool             = "exit_pool"
	TypeMsgExitPoolOfUnderlying = "exit_pool_of_underlying"
	TypeMsgSetFee               = "set_fee"
	TypeMsgTransferShares       = "transfer_shares"
	TypeMsgApproveShares        = "approve_shares"
	TypeMsgTransferSharesFrom   = "transfer_shares_from"
	TypeMsgChargeManagementFee  = "charge_management_fee"
	TypeMsgChargePerformanceFee = "charge_performance_fee"
)

// MsgInitVault defines the InitVault message
type MsgInitVault struct {
	Authority      string `json:"authority"`
	VaultID        string `json:"vault_id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	ReferenceAsset string `json:"reference_asset"`
}

// Route implements sdk.Msg
func (msg MsgInitVault) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgInitVault) Type() string { return TypeMsgInitVault }

// ValidateBasic implements sdk.Msg
func (msg MsgInitVault) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if msg.Name == "" || msg.Symbol == "" {
		return errors.New("vault name and symbol cannot be empty")
	}
	if msg.ReferenceAsset == "" {
		return errors.New("reference asset cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgInitVault) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgInitVault) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgInitVault) Reset() { *msg = MsgInitVault{} }

// String implements proto.Message
func (msg MsgInitVault) String() string {
	return fmt.Sprintf("MsgInitVault{VaultID: %s, Symbol: %s, ReferenceAsset: %s}", msg.VaultID, msg.Symbol, msg.ReferenceAsset)
}

// MsgInitVaultResponse defines the InitVault response
type MsgInitVaultResponse struct {
	VaultID string `json:"vault_id"`
}

// MsgSetController defines the SetController message
type MsgSetController struct {
	Authority  string `json:"authority"`
	VaultID    string `json:"vault_id"`
	Controller string `json:"controller"`
}

// Route implements sdk.Msg
func (msg MsgSetController) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetController) Type() string { return TypeMsgSetController }

// ValidateBasic implements sdk.Msg
func (msg MsgSetController) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if msg.Controller == "" {
		return errors.New("controller cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetController) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetController) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetController) Reset() { *msg = MsgSetController{} }

// String implements proto.Message
func (msg MsgSetController) String() string {
	return fmt.Sprintf("MsgSetController{VaultID: %s, Controller: %s}", msg.VaultID, msg.Controller)
}

// MsgSetControllerResponse defines the SetController response
type MsgSetControllerResponse struct{}

// MsgJoinPool defines the JoinPool message
type MsgJoinPool struct {
	Depositor string `json:"depositor"`
	VaultID   string `json:"vault_id"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgJoinPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgJoinPool) Type() string { return TypeMsgJoinPool }

// ValidateBasic implements sdk.Msg
func (msg MsgJoinPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgJoinPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgJoinPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgJoinPool) Reset() { *msg = MsgJoinPool{} }

// String implements proto.Message
func (msg MsgJoinPool) String() string {
	return fmt.Sprintf("MsgJoinPool{Depositor: %s, VaultID: %s, Amount: %s}", msg.Depositor, msg.VaultID, msg.Amount)
}

// MsgJoinPoolResponse defines the JoinPool response
type MsgJoinPoolResponse struct {
	SharesReceived string `json:"shares_received"`
}

// MsgExitPool defines the ExitPool message
type MsgExitPool struct {
	Holder  string `json:"holder"`
	VaultID string `json:"vault_id"`
	Shares  string `json:"shares"`
}

// Route implements sdk.Msg
func (msg MsgExitPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExitPool) Type() string { return TypeMsgExitPool }

// ValidateBasic implements sdk.Msg
func (msg MsgExitPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgExitPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Holder)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExitPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExitPool) Reset() { *msg = MsgExitPool{} }

// String implements proto.Message
func (msg MsgExitPool) String() string {
	return fmt.Sprintf("MsgExitPool{Holder: %s, VaultID: %s, Shares: %s}", msg.Holder, msg.VaultID, msg.Shares)
}

// MsgExitPoolResponse defines the ExitPool response
type MsgExitPoolResponse struct {
	AmountReceived string `json:"amount_received"`
}

// MsgExitPoolOfUnderlying defines the ExitPoolOfUnderlying message
type MsgExitPoolOfUnderlying struct {
	Holder  string `json:"holder"`
	VaultID string `json:"vault_id"`
	Shares  string `json:"shares"`
}

// Route implements sdk.Msg
func (msg MsgExitPoolOfUnderlying) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExitPoolOfUnderlying) Type() string { return TypeMsgExitPoolOfUnderlying }

// ValidateBasic implements sdk.Msg
func (msg MsgExitPoolOfUnderlying) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgExitPoolOfUnderlying) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Holder)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExitPoolOfUnderlying) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExitPoolOfUnderlying) Reset() { *msg = MsgExitPoolOfUnderlying{} }

// String implements proto.Message
func (msg MsgExitPoolOfUnderlying) String() string {
	return fmt.Sprintf("MsgExitPoolOfUnderlying{Holder: %s, VaultID: %s, Shares: %s}", msg.Holder, msg.VaultID, msg.Shares)
}

// MsgExitPoolOfUnderlyingResponse defines the ExitPoolOfUnderlying response
type MsgExitPoolOfUnderlyingResponse struct{}

// MsgSetFee defines the SetFee message
type MsgSetFee struct {
	Authority   string `json:"authority"`
	VaultID     string `json:"vault_id"`
	Kind        int32  `json:"kind"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
	Cap         string `json:"cap"`
}

// Route implements sdk.Msg
func (msg MsgSetFee) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetFee) Type() string { return TypeMsgSetFee }

// ValidateBasic implements sdk.Msg
func (msg MsgSetFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if !FeeKind(msg.Kind).Valid() {
		return ErrInvalidFeeRate
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetFee) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetFee) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetFee) Reset() { *msg = MsgSetFee{} }

// String implements proto.Message
func (msg MsgSetFee) String() string {
	return fmt.Sprintf("MsgSetFee{VaultID: %s, Kind: %s, Rate: %s/%s}", msg.VaultID, FeeKind(msg.Kind).String(), msg.Numerator, msg.Denominator)
}

// MsgSetFeeResponse defines the SetFee response
type MsgSetFeeResponse struct{}

// MsgTransferShares defines the TransferShares message
type MsgTransferShares struct {
	From    string `json:"from"`
	To      string `json:"to"`
	VaultID string `json:"vault_id"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransferShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferShares) Type() string { return TypeMsgTransferShares }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if msg.To == "" {
		return errors.New("recipient cannot be empty")
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferShares) Reset() { *msg = MsgTransferShares{} }

// String implements proto.Message
func (msg MsgTransferShares) String() string {
	return fmt.Sprintf("MsgTransferShares{From: %s, To: %s, Amount: %s}", msg.From, msg.To, msg.Amount)
}

// MsgTransferSharesResponse defines the TransferShares response
type MsgTransferSharesResponse struct{}

// MsgApproveShares defines the ApproveShares message
type MsgApproveShares struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	VaultID string `json:"vault_id"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgApproveShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApproveShares) Type() string { return TypeMsgApproveShares }

// ValidateBasic implements sdk.Msg
func (msg MsgApproveShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if msg.Spender == "" {
		return errors.New("spender cannot be empty")
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgApproveShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgApproveShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgApproveShares) Reset() { *msg = MsgApproveShares{} }

// String implements proto.Message
func (msg MsgApproveShares) String() string {
	return fmt.Sprintf("MsgApproveShares{Owner: %s, Spender: %s, Amount: %s}", msg.Owner, msg.Spender, msg.Amount)
}

// MsgApproveSharesResponse defines the ApproveShares response
type MsgApproveSharesResponse struct{}

// MsgTransferSharesFrom defines the TransferSharesFrom message
type MsgTransferSharesFrom struct {
	Spender string `json:"spender"`
	Owner   string `json:"owner"`
	To      string `json:"to"`
	VaultID string `json:"vault_id"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransferSharesFrom) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferSharesFrom) Type() string { return TypeMsgTransferSharesFrom }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferSharesFrom) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return err
	}
	if msg.Owner == "" || msg.To == "" {
		return errors.New("owner and recipient cannot be empty")
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferSharesFrom) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Spender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferSharesFrom) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferSharesFrom) Reset() { *msg = MsgTransferSharesFrom{} }

// String implements proto.Message
func (msg MsgTransferSharesFrom) String() string {
	return fmt.Sprintf("MsgTransferSharesFrom{Spender: %s, Owner: %s, To: %s, Amount: %s}", msg.Spender, msg.Owner, msg.To, msg.Amount)
}

// MsgTransferSharesFromResponse defines the TransferSharesFrom response
type MsgTransferSharesFromResponse struct{}

// MsgChargeManagementFee defines the ChargeManagementFee message
type MsgChargeManagementFee struct {
	Caller  string `json:"caller"`
	VaultID string `json:"vault_id"`
}

// Route implements sdk.Msg
func (msg MsgChargeManagementFee) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgChargeManagementFee) Type() string { return TypeMsgChargeManagementFee }

// ValidateBasic implements sdk.Msg
func (msg MsgChargeManagementFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgChargeManagementFee) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgChargeManagementFee) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgChargeManagementFee) Reset() { *msg = MsgChargeManagementFee{} }

// String implements proto.Message
func (msg MsgChargeManagementFee) String() string {
	return fmt.Sprintf("MsgChargeManagementFee{VaultID: %s}", msg.VaultID)
}

// MsgChargeManagementFeeResponse defines the ChargeManagementFee response
type MsgChargeManagementFeeResponse struct {
	FeeShares string `json:"fee_shares"`
}

// MsgChargePerformanceFee defines the ChargePerformanceFee message
type MsgChargePerformanceFee struct {
	Caller  string `json:"caller"`
	VaultID string `json:"vault_id"`
	Holder  string `json:"holder"`
}

// Route implements sdk.Msg
func (msg MsgChargePerformanceFee) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgChargePerformanceFee) Type() string { return TypeMsgChargePerformanceFee }

// ValidateBasic implements sdk.Msg
func (msg MsgChargePerformanceFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if msg.Holder == "" {
		return errors.New("holder cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgChargePerformanceFee) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgChargePerformanceFee) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgChargePerformanceFee) Reset() { *msg = MsgChargePerformanceFee{} }

// String implements proto.Message
func (msg MsgChargePerformanceFee) String() string {
	return fmt.Sprintf("MsgChargePerformanceFee{VaultID: %s, Holder: %s}", msg.VaultID, msg.Holder)
}

// MsgChargePerformanceFeeResponse defines the ChargePerformanceFee response
type MsgChargePerformanceFeeResponse struct {
	Fee string `json:"fee"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgInitVault{}
	_ sdk.Msg = &MsgSetController{}
	_ sdk.Msg = &MsgJoinPool{}
	_ sdk.Msg = &MsgExitPool{}
	_ sdk.Msg = &MsgExitPoolOfUnderlying{}
	_ sdk.Msg = &MsgSetFee{}
	_ sdk.Msg = &MsgTransferShares{}
	_ sdk.Msg = &MsgApproveShares{}
	_ sdk.Msg = &MsgTransferSharesFrom{}
	_ sdk.Msg = &MsgChargeManagementFee{}
	_ sdk.Msg = &MsgChargePerformanceFee{}
)
