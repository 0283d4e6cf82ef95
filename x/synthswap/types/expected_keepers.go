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

// OracleKeeper prices conversions. The same call backs the pre-expiry
// estimate and the final settlement.
type OracleKeeper interface {
	Value(ctx sdk.Context, denom string, amount math.Int, quoteDenom string) math.Int
}
