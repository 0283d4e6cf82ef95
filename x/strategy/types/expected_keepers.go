package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetKeeper defines the expected token transfer interface.
type AssetKeeper interface {
	Balance(ctx sdk.Context, account, denom string) math.Int
	Send(ctx sdk.Context, from, to, denom string, amount math.Int) error
}

// OracleKeeper converts token amounts into a quote asset. Pricing internals
// are external; only spot valuation is consumed.
type OracleKeeper interface {
	Value(ctx sdk.Context, denom string, amount math.Int, quoteDenom string) math.Int
}

// VenueKeeper is the trading venue a strategy deploys into. Swaps and pool
// operations settle against the given account.
type VenueKeeper interface {
	Swap(ctx sdk.Context, account, fromDenom, toDenom string, amount math.Int) (math.Int, error)
	AddLiquidity(ctx sdk.Context, account string, denoms []string, amounts []math.Int) (math.Int, error)
	RemoveLiquidity(ctx sdk.Context, account string, shares math.Int, denoms []string) ([]math.Int, error)
	CollectYield(ctx sdk.Context, account, recipient string) (math.Int, string, error)
}

// GovKeeper defines the governance-identity predicate for strategy creation.
type GovKeeper interface {
	IsGovernance(ctx sdk.Context, addr string) bool
	IsStrategist(ctx sdk.Context, addr string) bool
}
