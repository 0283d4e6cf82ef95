package metrics

import (
	"math/big"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// KFund Metrics Collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all KFund metrics
type Collector struct {
	// Vault flow metrics
	JoinsTotal    *prometheus.CounterVec
	ExitsTotal    *prometheus.CounterVec
	JoinVolume    *prometheus.CounterVec
	ExitVolume    *prometheus.CounterVec
	SharesSupply  *prometheus.GaugeVec
	TotalAssets   *prometheus.GaugeVec

	// Fee metrics
	FeesCharged   *prometheus.CounterVec
	FeeShareValue *prometheus.CounterVec

	// Routing metrics
	InvestsTotal   *prometheus.CounterVec
	InvestVolume   *prometheus.CounterVec
	HarvestsTotal  *prometheus.CounterVec
	HarvestYield   *prometheus.CounterVec
	ExecCommands   *prometheus.CounterVec
	MinerFeeDrawn  *prometheus.CounterVec

	// Settlement ticket metrics
	TicketsTotal    *prometheus.CounterVec
	TicketsSettled  *prometheus.CounterVec
	TicketLatency   *prometheus.HistogramVec

	// System metrics
	BlockHeight prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Vault flow metrics
	c.JoinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "vault",
			Name:      "joins_total",
			Help:      "Total number of pool joins",
		},
		[]string{"vault_id"},
	)

	c.ExitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "vault",
			Name:      "exits_total",
			Help:      "Total number of pool exits",
		},
		[]string{"vault_id"},
	)

	c.JoinVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "vault",
			Name:      "join_volume",
			Help:      "Total deposit volume in reference asset",
		},
		[]string{"vault_id"},
	)

	c.ExitVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "vault",
			Name:      "exit_volume",
			Help:      "Total withdrawal volume in reference asset",
		},
		[]string{"vault_id"},
	)

	c.SharesSupply = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "kfund",
			Subsystem: "vault",
			Name:      "shares_supply",
			Help:      "Current share supply",
		},
		[]string{"vault_id"},
	)

	c.TotalAssets = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "kfund",
			Subsystem: "vault",
			Name:      "total_assets",
			Help:      "Current total assets (cash plus deployed value)",
		},
		[]string{"vault_id"},
	)

	// Fee metrics
	c.FeesCharged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "fees",
			Name:      "charged_total",
			Help:      "Total fee charges by kind",
		},
		[]string{"vault_id", "kind"},
	)

	c.FeeShareValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "fees",
			Name:      "share_value",
			Help:      "Total fee value collected by kind",
		},
		[]string{"vault_id", "kind"},
	)

	// Routing metrics
	c.InvestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "controller",
			Name:      "invests_total",
			Help:      "Total invest operations routed",
		},
		[]string{"vault_id", "strategy_id"},
	)

	c.InvestVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "controller",
			Name:      "invest_volume",
			Help:      "Total capital routed to strategies",
		},
		[]string{"vault_id", "strategy_id"},
	)

	c.HarvestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "controller",
			Name:      "harvests_total",
			Help:      "Total harvest operations",
		},
		[]string{"vault_id", "strategy_id"},
	)

	c.HarvestYield = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "controller",
			Name:      "harvest_yield",
			Help:      "Total realized yield returned to vaults",
		},
		[]string{"vault_id", "strategy_id"},
	)

	c.ExecCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "controller",
			Name:      "exec_commands_total",
			Help:      "Total strategy commands forwarded",
		},
		[]string{"strategy_id", "command", "status"},
	)

	c.MinerFeeDrawn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "controller",
			Name:      "miner_fee_drawn",
			Help:      "Total one-shot miner fee extractions",
		},
		[]string{"vault_id"},
	)

	// Settlement ticket metrics
	c.TicketsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "synthswap",
			Name:      "tickets_total",
			Help:      "Total settlement tickets opened",
		},
		[]string{"source_asset", "dest_asset"},
	)

	c.TicketsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kfund",
			Subsystem: "synthswap",
			Name:      "tickets_settled",
			Help:      "Total settlement tickets consumed",
		},
		[]string{"source_asset", "dest_asset"},
	)

	c.TicketLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kfund",
			Subsystem: "synthswap",
			Name:      "ticket_latency_seconds",
			Help:      "Time between ticket commit and realize",
			Buckets:   []float64{60, 180, 360, 600, 1800, 3600},
		},
		[]string{"source_asset", "dest_asset"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "kfund",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	prometheus.MustRegister(c.JoinsTotal)
	prometheus.MustRegister(c.ExitsTotal)
	prometheus.MustRegister(c.JoinVolume)
	prometheus.MustRegister(c.ExitVolume)
	prometheus.MustRegister(c.SharesSupply)
	prometheus.MustRegister(c.TotalAssets)

	prometheus.MustRegister(c.FeesCharged)
	prometheus.MustRegister(c.FeeShareValue)

	prometheus.MustRegister(c.InvestsTotal)
	prometheus.MustRegister(c.InvestVolume)
	prometheus.MustRegister(c.HarvestsTotal)
	prometheus.MustRegister(c.HarvestYield)
	prometheus.MustRegister(c.ExecCommands)
	prometheus.MustRegister(c.MinerFeeDrawn)

	prometheus.MustRegister(c.TicketsTotal)
	prometheus.MustRegister(c.TicketsSettled)
	prometheus.MustRegister(c.TicketLatency)

	prometheus.MustRegister(c.BlockHeight)
}

// intToFloat converts a math.Int to float64 for gauge/counter values.
// Precision loss is acceptable for monitoring.
func intToFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

// ============ Recording Helpers ============

// RecordJoin records a pool join
func RecordJoin(vaultID string, amount, shares math.Int) {
	c := GetCollector()
	c.JoinsTotal.WithLabelValues(vaultID).Inc()
	c.JoinVolume.WithLabelValues(vaultID).Add(intToFloat(amount))
}

// RecordExit records a pool exit
func RecordExit(vaultID string, shares, amount math.Int) {
	c := GetCollector()
	c.ExitsTotal.WithLabelValues(vaultID).Inc()
	c.ExitVolume.WithLabelValues(vaultID).Add(intToFloat(amount))
}

// UpdateVaultState updates the supply and asset gauges of a vault
func UpdateVaultState(vaultID string, supply, totalAssets math.Int) {
	c := GetCollector()
	c.SharesSupply.WithLabelValues(vaultID).Set(intToFloat(supply))
	c.TotalAssets.WithLabelValues(vaultID).Set(intToFloat(totalAssets))
}

// RecordFeeCharge records a fee collection
func RecordFeeCharge(vaultID, kind string, value math.Int) {
	c := GetCollector()
	c.FeesCharged.WithLabelValues(vaultID, kind).Inc()
	c.FeeShareValue.WithLabelValues(vaultID, kind).Add(intToFloat(value))
}

// RecordInvest records a capital routing operation
func RecordInvest(vaultID, strategyID string, amount math.Int) {
	c := GetCollector()
	c.InvestsTotal.WithLabelValues(vaultID, strategyID).Inc()
	c.InvestVolume.WithLabelValues(vaultID, strategyID).Add(intToFloat(amount))
}

// RecordHarvest records a harvest and its realized yield
func RecordHarvest(vaultID, strategyID string, yield math.Int) {
	c := GetCollector()
	c.HarvestsTotal.WithLabelValues(vaultID, strategyID).Inc()
	c.HarvestYield.WithLabelValues(vaultID, strategyID).Add(intToFloat(yield))
}

// RecordExecCommand records a forwarded strategy command
func RecordExecCommand(strategyID, command, status string) {
	GetCollector().ExecCommands.WithLabelValues(strategyID, command, status).Inc()
}

// RecordMinerFee records a one-shot miner fee extraction
func RecordMinerFee(vaultID string) {
	GetCollector().MinerFeeDrawn.WithLabelValues(vaultID).Inc()
}

// RecordTicketOpened records a new settlement ticket
func RecordTicketOpened(sourceAsset, destAsset string) {
	GetCollector().TicketsTotal.WithLabelValues(sourceAsset, destAsset).Inc()
}

// RecordTicketSettled records a consumed settlement ticket
func RecordTicketSettled(sourceAsset, destAsset string, latencySeconds float64) {
	c := GetCollector()
	c.TicketsSettled.WithLabelValues(sourceAsset, destAsset).Inc()
	c.TicketLatency.WithLabelValues(sourceAsset, destAsset).Observe(latencySeconds)
}

// UpdateBlockHeight updates the block height gauge
func UpdateBlockHeight(height int64) {
	GetCollector().BlockHeight.Set(float64(height))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
