// Package metrics exposes ledger activity and HTTP traffic to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "fabrica"

// Metrics implements ledger.Observer.
type Metrics struct {
	reg *prometheus.Registry

	sales          prometheus.Counter
	salesAmount    prometheus.Counter
	expenses       prometheus.Counter
	expensesAmount prometheus.Counter
	unitsProduced  prometheus.Counter
	balance        prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		sales: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_total",
			Help:      "Number of sales recorded.",
		}),
		salesAmount: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_amount_guaranies_total",
			Help:      "Sum of sale totals in guaraníes.",
		}),
		expenses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_total",
			Help:      "Number of expenses recorded.",
		}),
		expensesAmount: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_amount_guaranies_total",
			Help:      "Sum of expense amounts in guaraníes.",
		}),
		unitsProduced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_produced_total",
			Help:      "Units added to stock by production runs.",
		}),
		balance: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_balance_guaranies",
			Help:      "Accumulated balance after the latest ledger movement.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) ProductionRecorded(units int) {
	m.unitsProduced.Add(float64(units))
}

func (m *Metrics) SaleRecorded(total decimal.Decimal) {
	m.sales.Inc()
	m.salesAmount.Add(total.InexactFloat64())
}

func (m *Metrics) ExpenseRecorded(amount decimal.Decimal) {
	m.expenses.Inc()
	m.expensesAmount.Add(amount.InexactFloat64())
}

func (m *Metrics) BalanceChanged(balance decimal.Decimal) {
	m.balance.Set(balance.InexactFloat64())
}

// SetBalance seeds the balance gauge at startup.
func (m *Metrics) SetBalance(balance decimal.Decimal) {
	m.BalanceChanged(balance)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Middleware records count and latency of every request by route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return nil
	}
}
