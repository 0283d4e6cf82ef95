package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "synthswap"
	StoreKey   = ModuleName
)

// ArenaAccount holds committed source assets and the destination liquidity
// tickets settle from.
const ArenaAccount = "synthswap_arena"

// DefaultSettleWaitSeconds is the realize-phase gate applied to new tickets.
const DefaultSettleWaitSeconds = int64(360)

// Ticket states. A ticket only ever moves forward: Committed, then Resolved
// once the gate passes, then Consumed. Consumed tickets are retained.
const (
	TicketStatusCommitted = "committed"
	TicketStatusResolved  = "resolved"
	TicketStatusConsumed  = "consumed"
)

// Ticket is one two-phase conversion. AmountSettled is the oracle estimate
// until the ticket resolves, then final.
type Ticket struct {
	TicketID          uint64   `json:"ticket_id"`
	Owner             string   `json:"owner"`
	SourceAsset       string   `json:"source_asset"`
	DestAsset         string   `json:"dest_asset"`
	AmountCommitted   math.Int `json:"amount_committed"`
	AmountSettled     math.Int `json:"amount_settled"`
	Status            string   `json:"status"`
	CreatedAt         int64    `json:"created_at"`
	MaxSettlementTime int64    `json:"max_settlement_time"`
}

// Ready reports whether the realize gate has passed at the given unix time.
func (t *Ticket) Ready(now int64) bool {
	return now >= t.MaxSettlementTime
}
