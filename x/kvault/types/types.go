package types

import (
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "kvault"
	StoreKey   = ModuleName
)

// FeeCollector is the account that receives all vault fees (join/exit fee
// shares, management dilution, performance fee shares and the controller's
// one-shot miner fee).
const FeeCollector = "kfund_fee_collector"

// SecondsPerYear is the accrual base for the management fee.
const SecondsPerYear = int64(365 * 24 * 60 * 60)

// VaultAccount is the asset-ledger account holding a vault's cash.
func VaultAccount(vaultID string) string {
	return ModuleName + "/" + vaultID
}

// FeeKind identifies one of the four fee records of a vault.
type FeeKind int32

const (
	FeeJoin        FeeKind = 0
	FeeExit        FeeKind = 1
	FeeManagement  FeeKind = 2
	FeePerformance FeeKind = 3
)

// String returns the fee kind label used in events.
func (k FeeKind) String() string {
	switch k {
	case FeeJoin:
		return "join"
	case FeeExit:
		return "exit"
	case FeeManagement:
		return "management"
	case FeePerformance:
		return "performance"
	}
	return "unknown"
}

// Valid reports whether k names one of the four fee records.
func (k FeeKind) Valid() bool {
	return k >= FeeJoin && k <= FeePerformance
}

// FeeRecord holds one fee rate as a numerator/denominator pair with an
// optional absolute cap. A zero cap means uncapped.
type FeeRecord struct {
	Kind        FeeKind  `json:"kind"`
	Numerator   math.Int `json:"numerator"`
	Denominator math.Int `json:"denominator"`
	Cap         math.Int `json:"cap"`
}

// NewFeeRecord creates a fee record without validating it.
func NewFeeRecord(kind FeeKind, numerator, denominator, cap math.Int) FeeRecord {
	return FeeRecord{Kind: kind, Numerator: numerator, Denominator: denominator, Cap: cap}
}

// ZeroFeeRecord returns a 0/1000 record of the given kind.
func ZeroFeeRecord(kind FeeKind) FeeRecord {
	return NewFeeRecord(kind, math.ZeroInt(), math.NewInt(1000), math.ZeroInt())
}

// Validate rejects malformed rates. Rates above 100% are configuration
// errors and must never reach charge time.
func (f FeeRecord) Validate() error {
	if !f.Kind.Valid() {
		return ErrInvalidFeeRate
	}
	if f.Numerator.IsNegative() || f.Cap.IsNegative() {
		return ErrInvalidFeeRate
	}
	if !f.Denominator.IsPositive() {
		return ErrInvalidFeeRate
	}
	if f.Numerator.GT(f.Denominator) {
		return ErrInvalidFeeRate
	}
	return nil
}

// CalcFee computes amount*numerator/denominator, truncated toward zero and
// bounded by the cap when one is set.
func (f FeeRecord) CalcFee(amount math.Int) math.Int {
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt()
	}
	fee := amount.Mul(f.Numerator).Quo(f.Denominator)
	if f.Cap.IsPositive() && fee.GT(f.Cap) {
		fee = f.Cap
	}
	return fee
}

// FeeCharge is an audit record written whenever a fee is collected.
type FeeCharge struct {
	ChargeID  string   `json:"charge_id"`
	VaultID   string   `json:"vault_id"`
	Kind      FeeKind  `json:"kind"`
	Holder    string   `json:"holder,omitempty"`
	FeeShares math.Int `json:"fee_shares"`
	ChargedAt int64    `json:"charged_at"`
}

// Vault is the per-vault accounting record. Cash is the reference asset the
// vault holds directly; StrategyAssets is the deployed value last reported by
// the controller after invest/harvest.
type Vault struct {
	VaultID        string `json:"vault_id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	ReferenceAsset string `json:"reference_asset"`
	Initialised    bool   `json:"initialised"`
	Controller     string `json:"controller,omitempty"`

	Cash           math.Int `json:"cash"`
	StrategyAssets math.Int `json:"strategy_assets"`
	TotalSupply    math.Int `json:"total_supply"`

	LastManagementFeeAt int64 `json:"last_management_fee_at"`
	CreatedAt           int64 `json:"created_at"`
	UpdatedAt           int64 `json:"updated_at"`
}

// NewVault creates an initialised vault record with zero balances.
func NewVault(vaultID, name, symbol, referenceAsset string, now time.Time) *Vault {
	ts := now.Unix()
	return &Vault{
		VaultID:             vaultID,
		Name:                name,
		Symbol:              symbol,
		ReferenceAsset:      referenceAsset,
		Initialised:         true,
		Cash:                math.ZeroInt(),
		StrategyAssets:      math.ZeroInt(),
		TotalSupply:         math.ZeroInt(),
		LastManagementFeeAt: ts,
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}
}

// TotalAssets is the NAV numerator: direct cash plus deployed value.
func (v *Vault) TotalAssets() math.Int {
	return v.Cash.Add(v.StrategyAssets)
}

// CalcTokenToKf converts a reference-asset amount to shares at the current
// NAV. The bootstrap rate is 1:1 while no shares exist.
func (v *Vault) CalcTokenToKf(amount math.Int) math.Int {
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt()
	}
	if v.TotalSupply.IsZero() {
		return amount
	}
	total := v.TotalAssets()
	if total.IsZero() {
		return amount
	}
	return amount.Mul(v.TotalSupply).Quo(total)
}

// CalcKfToToken converts shares to a reference-asset amount at the current
// NAV, 1:1 while no shares exist.
func (v *Vault) CalcKfToToken(shares math.Int) math.Int {
	if shares.IsNil() || !shares.IsPositive() {
		return math.ZeroInt()
	}
	if v.TotalSupply.IsZero() {
		return shares
	}
	return shares.Mul(v.TotalAssets()).Quo(v.TotalSupply)
}
