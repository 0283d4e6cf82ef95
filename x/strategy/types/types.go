package types

import (
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "strategy"
	StoreKey   = ModuleName
)

// StrategyAccount is the asset-ledger account holding a strategy's tokens.
func StrategyAccount(strategyID string) string {
	return ModuleName + "/" + strategyID
}

// Variant selects the strategy behavior.
type Variant string

const (
	VariantPair     Variant = "pair"
	VariantWeighted Variant = "weighted"
	VariantDynamic  Variant = "dynamic"
)

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	return v == VariantPair || v == VariantWeighted || v == VariantDynamic
}

// BoundToken is one token of a strategy's basket. Weight only matters for
// the weighted variant; Balance is the deployed amount backing LP shares.
type BoundToken struct {
	Denom   string   `json:"denom"`
	Weight  math.Int `json:"weight"`
	Balance math.Int `json:"balance"`
}

// Strategy is the per-strategy state record. Idle is reference asset received
// from the controller but not yet deployed; LiquidityShares are venue pool
// shares backing the token balances. InitialShareFloor is locked at pool
// creation and can never be withdrawn.
type Strategy struct {
	StrategyID     string  `json:"strategy_id"`
	Variant        Variant `json:"variant"`
	ReferenceAsset string  `json:"reference_asset"`
	Controller     string  `json:"controller"`
	Initialised    bool    `json:"initialised"`
	Approved       bool    `json:"approved"`

	Tokens            []BoundToken `json:"tokens,omitempty"`
	Idle              math.Int     `json:"idle"`
	LiquidityShares   math.Int     `json:"liquidity_shares"`
	InitialShareFloor math.Int     `json:"initial_share_floor"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewStrategy creates an un-initialised strategy record.
func NewStrategy(strategyID string, variant Variant, referenceAsset, controller string, now time.Time) *Strategy {
	ts := now.Unix()
	return &Strategy{
		StrategyID:        strategyID,
		Variant:           variant,
		ReferenceAsset:    referenceAsset,
		Controller:        controller,
		Idle:              math.ZeroInt(),
		LiquidityShares:   math.ZeroInt(),
		InitialShareFloor: math.ZeroInt(),
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
}

// Token returns the bound token of the given denom and its index, or nil.
func (s *Strategy) Token(denom string) (*BoundToken, int) {
	for i := range s.Tokens {
		if s.Tokens[i].Denom == denom {
			return &s.Tokens[i], i
		}
	}
	return nil, -1
}

// HasToken reports whether denom is bound.
func (s *Strategy) HasToken(denom string) bool {
	token, _ := s.Token(denom)
	return token != nil
}
