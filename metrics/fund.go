package metrics

import (
	"strconv"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openalpha/yieldfund/app"
	fundtypes "github.com/openalpha/yieldfund/types"
	fckeeper "github.com/openalpha/yieldfund/x/fundcontroller/keeper"
	fmkeeper "github.com/openalpha/yieldfund/x/fundmanager/keeper"
)

// FundSource is the read side of a node.
type FundSource interface {
	QueryOverview() (*app.Overview, error)
	QueryFund(instance string) (*fmkeeper.FundSummary, error)
	QueryController(instance string) (*fckeeper.ControllerSummary, error)
}

// FundCollector reads balances from the latest committed state on every scrape.
type FundCollector struct {
	source FundSource
	logger log.Logger

	instanceStatus *prometheus.Desc
	fundBalance    *prometheus.Desc
	rawBalance     *prometheus.Desc
	feesGenerated  *prometheus.Desc
	feesUnclaimed  *prometheus.Desc
	totalShares    *prometheus.Desc
	idleBalance    *prometheus.Desc
	poolBalance    *prometheus.Desc
}

var _ prometheus.Collector = (*FundCollector)(nil)

// NewFundCollector creates a scrape time collector over source
func NewFundCollector(source FundSource, logger log.Logger) *FundCollector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(Namespace, "fund", name), help, labels, nil)
	}
	return &FundCollector{
		source:         source,
		logger:         logger.With("module", "metrics"),
		instanceStatus: desc("instance_active", "1 when the instance is active, 0 otherwise", "module", "instance", "status"),
		fundBalance:    desc("balance_units", "Fund balance net of unclaimed fees", "manager"),
		rawBalance:     desc("raw_balance_units", "Idle capital plus every pool balance", "manager"),
		feesGenerated:  desc("fees_generated_units", "Interest fees generated to date", "manager"),
		feesUnclaimed:  desc("fees_unclaimed_units", "Interest fees not yet deposited or withdrawn", "manager"),
		totalShares:    desc("claim_token_supply_units", "Claim tokens outstanding", "manager"),
		idleBalance:    desc("idle_units", "Controller capital not deployed to a pool", "controller"),
		poolBalance:    desc("pool_balance_units", "Controller capital deployed to a pool", "controller", "pool_id", "venue"),
	}
}

// Describe implements prometheus.Collector
func (c *FundCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.instanceStatus
	ch <- c.fundBalance
	ch <- c.rawBalance
	ch <- c.feesGenerated
	ch <- c.feesUnclaimed
	ch <- c.totalShares
	ch <- c.idleBalance
	ch <- c.poolBalance
}

// Collect implements prometheus.Collector. Instances that fail to read are
// skipped and logged.
func (c *FundCollector) Collect(ch chan<- prometheus.Metric) {
	overview, err := c.source.QueryOverview()
	if err != nil {
		c.logger.Error("Failed to read overview", "error", err)
		return
	}

	for _, inst := range overview.Controllers {
		ch <- prometheus.MustNewConstMetric(c.instanceStatus, prometheus.GaugeValue, active(inst.Status), "fundcontroller", inst.Name, string(inst.Status))
		if inst.Status == fundtypes.StatusMigratedOut {
			continue
		}
		summary, err := c.source.QueryController(inst.Name)
		if err != nil {
			c.logger.Error("Failed to read controller", "instance", inst.Name, "error", err)
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.idleBalance, prometheus.GaugeValue, ToUnits(summary.Idle), inst.Name)
		for _, pb := range summary.Pools {
			ch <- prometheus.MustNewConstMetric(c.poolBalance, prometheus.GaugeValue,
				ToUnits(pb.Balance.String()), inst.Name, strconv.FormatUint(pb.Pool.PoolID, 10), string(pb.Pool.Venue))
		}
	}

	for _, inst := range overview.Managers {
		ch <- prometheus.MustNewConstMetric(c.instanceStatus, prometheus.GaugeValue, active(inst.Status), "fundmanager", inst.Name, string(inst.Status))
		if inst.Status == fundtypes.StatusMigratedOut {
			continue
		}
		fund, err := c.source.QueryFund(inst.Name)
		if err != nil {
			c.logger.Error("Failed to read manager", "instance", inst.Name, "error", err)
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.fundBalance, prometheus.GaugeValue, ToUnits(fund.FundBalance), inst.Name)
		ch <- prometheus.MustNewConstMetric(c.rawBalance, prometheus.GaugeValue, ToUnits(fund.RawFundBalance), inst.Name)
		ch <- prometheus.MustNewConstMetric(c.feesGenerated, prometheus.GaugeValue, ToUnits(fund.InterestFeesGenerated), inst.Name)
		ch <- prometheus.MustNewConstMetric(c.feesUnclaimed, prometheus.GaugeValue, ToUnits(fund.InterestFeesUnclaimed), inst.Name)
		ch <- prometheus.MustNewConstMetric(c.totalShares, prometheus.GaugeValue, ToUnits(fund.TotalShares), inst.Name)
	}
}

func active(status fundtypes.Status) float64 {
	if status.IsActive() {
		return 1
	}
	return 0
}

// ToUnits converts a fixed-point integer string into whole units. Unparsable
// input reads as zero.
func ToUnits(amount string) float64 {
	v, ok := math.NewIntFromString(amount)
	if !ok {
		return 0
	}
	f, err := math.LegacyNewDecFromIntWithPrec(v, fundtypes.Decimals).Float64()
	if err != nil {
		return 0
	}
	return f
}
