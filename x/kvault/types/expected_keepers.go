package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetKeeper defines the expected interface for reference-asset and
// underlying-token transfers. Token transfer primitives are external to this
// module set; only balances and sends are consumed.
type AssetKeeper interface {
	Balance(ctx sdk.Context, account, denom string) math.Int
	Send(ctx sdk.Context, from, to, denom string, amount math.Int) error
}

// GovKeeper defines the expected governance-identity predicates gating
// privileged calls.
type GovKeeper interface {
	IsGovernance(ctx sdk.Context, addr string) bool
	IsStrategist(ctx sdk.Context, addr string) bool
}

// ControllerKeeper defines the expected interface for resolving a vault's
// bound strategy.
type ControllerKeeper interface {
	BoundStrategy(ctx sdk.Context, vaultID string) (string, bool)
}

// StrategyKeeper defines the expected interface for underlying-basket
// redemption. The strategy owns the computation so reference-asset and
// basket exits price against the same valuation.
type StrategyKeeper interface {
	ExtractableUnderlyingNumber(ctx sdk.Context, strategyID string, value math.Int) (denoms []string, amounts []math.Int, err error)
	PayOutUnderlying(ctx sdk.Context, strategyID, recipient string, denoms []string, amounts []math.Int) error
}
