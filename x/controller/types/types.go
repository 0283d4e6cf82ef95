package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "controller"
	StoreKey   = ModuleName
)

// ControllerAccount is the account the controller acts as when moving vault
// cash. Vaults are pointed at it via SetController.
const ControllerAccount = "kfund_controller"

// Registration marks a strategy as known to the controller. Only registered
// strategies can be bound to vaults. Strategist records whether the strategy
// was admitted with strategist driving rights.
type Registration struct {
	StrategyID   string `json:"strategy_id"`
	Strategist   bool   `json:"strategist"`
	RegisteredAt int64  `json:"registered_at"`
}

// Binding pairs a vault with a strategy. The pairing is bijective: a vault
// binds at most one strategy and a strategy at most one vault.
type Binding struct {
	VaultID           string   `json:"vault_id"`
	StrategyID        string   `json:"strategy_id"`
	MaxFee            math.Int `json:"max_fee"`
	WithdrawFeeStatus bool     `json:"withdraw_fee_status"`
	BoundAt           int64    `json:"bound_at"`
}

// CommandKind enumerates the structural commands the controller can forward
// to a strategy. The set is closed: there is no untyped payload path.
type CommandKind string

const (
	CommandNewPool             CommandKind = "new_pool"
	CommandBindToken           CommandKind = "bind_token"
	CommandUnbindToken         CommandKind = "unbind_token"
	CommandRebindToken         CommandKind = "rebind_token"
	CommandSetUnderlyingTokens CommandKind = "set_underlying_tokens"
	CommandAddLiquidity        CommandKind = "add_liquidity"
	CommandRemoveLiquidity     CommandKind = "remove_liquidity"
)

// Valid reports whether k names a known command.
func (k CommandKind) Valid() bool {
	switch k {
	case CommandNewPool, CommandBindToken, CommandUnbindToken, CommandRebindToken,
		CommandSetUnderlyingTokens, CommandAddLiquidity, CommandRemoveLiquidity:
		return true
	}
	return false
}

// StrategyCommand is a typed command forwarded through Exec. Fields beyond
// Kind are read per command: BindToken/RebindToken use Denom and Weight,
// SetUnderlyingTokens uses Denoms, AddLiquidity/RemoveLiquidity use Amount.
type StrategyCommand struct {
	Kind   CommandKind `json:"kind"`
	Denom  string      `json:"denom,omitempty"`
	Denoms []string    `json:"denoms,omitempty"`
	Weight math.Int    `json:"weight"`
	Amount math.Int    `json:"amount"`
}

// Exec record statuses
const (
	ExecStatusOK       = "ok"
	ExecStatusReverted = "reverted"
)

// ExecRecord is the audit log entry of one forwarded command.
type ExecRecord struct {
	ExecID     string      `json:"exec_id"`
	StrategyID string      `json:"strategy_id"`
	Kind       CommandKind `json:"kind"`
	Status     string      `json:"status"`
	Error      string      `json:"error,omitempty"`
	ExecutedAt int64       `json:"executed_at"`
}
