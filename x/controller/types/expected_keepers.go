package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VaultKeeper defines the vault operations the controller routes capital
// through.
type VaultKeeper interface {
	TransferCash(ctx sdk.Context, caller, vaultID, to string, amount math.Int) error
	CreditCash(ctx sdk.Context, vaultID string, amount math.Int) error
	SetStrategyAssets(ctx sdk.Context, vaultID string, value math.Int) error
}

// StrategyKeeper defines the strategy surface the controller drives. One
// method per forwarded command keeps the dispatch closed.
type StrategyKeeper interface {
	Invest(ctx sdk.Context, strategyID string, amount math.Int) error
	Harvest(ctx sdk.Context, strategyID, recipient string) (math.Int, error)
	Assets(ctx sdk.Context, strategyID string) (math.Int, error)

	NewPool(ctx sdk.Context, strategyID string) error
	BindToken(ctx sdk.Context, strategyID, denom string, weight math.Int) error
	UnbindToken(ctx sdk.Context, strategyID, denom string) error
	RebindToken(ctx sdk.Context, strategyID, denom string, weight math.Int) error
	SetUnderlyingTokens(ctx sdk.Context, strategyID string, denoms []string) error
	AddLiquidity(ctx sdk.Context, strategyID string, amount math.Int) error
	RemoveLiquidity(ctx sdk.Context, strategyID string, amount math.Int) error
}

// GovKeeper defines the governance-identity predicates gating privileged
// calls.
type GovKeeper interface {
	IsGovernance(ctx sdk.Context, addr string) bool
	IsStrategist(ctx sdk.Context, addr string) bool
}
