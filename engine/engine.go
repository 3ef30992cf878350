// Package engine drives the scan cycle: fetch candles, compute indicators,
// evaluate the strategy, size and submit orders, publish a state snapshot.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/config"
	"github.com/rustyeddy/fxbot/indicators"
	"github.com/rustyeddy/fxbot/journal"
	"github.com/rustyeddy/fxbot/pkg/id"
	"github.com/rustyeddy/fxbot/risk"
	"github.com/rustyeddy/fxbot/strategy"
)

// Bot is the run-loop handle. Construct with New; the hosting layer holds
// and passes this handle, there is no process-wide instance.
type Bot struct {
	cfg       *config.Config
	gateway   broker.Gateway
	journal   journal.Journal
	log       zerolog.Logger
	variant   strategy.Variant
	interval  time.Duration
	accountID string

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	snapMu   sync.RWMutex
	snapshot *Snapshot
}

// New validates the configuration and builds a stopped bot. The journal may
// be nil to disable journaling.
func New(cfg *config.Config, gw broker.Gateway, jr journal.Journal, accountID string, log zerolog.Logger) (*Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	interval, err := cfg.ParseInterval()
	if err != nil {
		return nil, err
	}
	return &Bot{
		cfg:       cfg,
		gateway:   gw,
		journal:   jr,
		log:       log,
		variant:   cfg.Variant(),
		interval:  interval,
		accountID: accountID,
	}, nil
}

// Start transitions Stopped -> Running by launching the cycle goroutine.
// Calling Start while Running is a no-op.
func (b *Bot) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		b.log.Debug().Msg("start ignored: already running")
		return
	}
	if b.doneCh != nil {
		// A previous Stop may still be draining its final cycle; wait so
		// two loops never run at once. The loop goroutine never takes b.mu.
		<-b.doneCh
	}
	b.running = true
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})

	b.log.Info().Str("strategy", b.variant.String()).
		Strs("instruments", b.cfg.Trading.Instruments).
		Dur("interval", b.interval).
		Msg("bot loop started")

	go b.loop(b.stopCh, b.doneCh)
}

// Stop requests a cooperative stop and waits for the in-flight cycle to
// finish. The flag is checked between cycles, never mid-cycle. Calling Stop
// while Stopped is a no-op; concurrent Stop calls are safe, only the first
// closes the channel.
func (b *Bot) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	stopCh, doneCh := b.stopCh, b.doneCh
	b.stopCh = nil
	b.mu.Unlock()

	close(stopCh)
	<-doneCh
	b.log.Info().Msg("bot loop stopped")
}

// Running reports whether the cycle goroutine is active.
func (b *Bot) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

func (b *Bot) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	for {
		select {
		case <-stopCh:
			return
		default:
		}

		b.runCycle(context.Background())

		select {
		case <-stopCh:
			return
		case <-time.After(b.interval):
		}
	}
}

// runCycle scans every configured instrument sequentially, then publishes
// one full-replace snapshot and rewrites the state file. A failure on one
// instrument never aborts the cycle for the rest.
func (b *Bot) runCycle(ctx context.Context) {
	states := make(map[string]InstrumentState, len(b.cfg.Trading.Instruments))

	for _, instrument := range b.cfg.Trading.Instruments {
		state, err := b.scanInstrument(ctx, instrument)
		if err != nil {
			b.log.Error().Err(err).Str("instrument", instrument).Msg("scan failed")
			continue
		}
		states[instrument] = state
	}

	// Open positions are display-only; a fetch failure is logged and the
	// list left empty rather than aborting the snapshot.
	positions, err := b.gateway.GetOpenPositions(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("open positions fetch failed")
		positions = nil
	}

	snap := Snapshot{
		Status:        "Running",
		Strategy:      b.variant.String(),
		AccountID:     b.accountID,
		Instruments:   states,
		OpenPositions: positions,
		UpdatedAt:     time.Now().UTC(),
	}
	b.publish(snap)

	if err := writeStateFile(b.cfg.Trading.StateFile, snap); err != nil {
		b.log.Warn().Err(err).Msg("state file write failed")
	}
}

// scanInstrument runs fetch -> indicators -> evaluate -> (size + submit)
// for one instrument and returns its snapshot entry.
func (b *Bot) scanInstrument(ctx context.Context, instrument string) (InstrumentState, error) {
	candles, err := b.gateway.GetCandles(ctx, instrument, b.cfg.Trading.Granularity, b.cfg.Trading.CandleCount)
	if err != nil {
		return InstrumentState{}, err
	}

	rows, err := indicators.Compute(candles)
	if err != nil {
		// Insufficient history: skip this instrument this cycle.
		return InstrumentState{}, err
	}

	sig := strategy.Evaluate(b.variant, rows)
	curr := rows[len(rows)-1]

	state := InstrumentState{
		Price:       roundPx(curr.Close),
		RSI:         round2(curr.RSI14),
		ATR:         roundPx(curr.ATR14),
		Efficiency:  round2(curr.Efficiency),
		Trend:       strategy.TrendLabel(curr),
		Signal:      string(sig.Direction),
		Reason:      sig.Reason,
		LastUpdated: time.Now().UTC(),
	}

	if sig.Direction == strategy.Hold {
		b.log.Info().Str("instrument", instrument).Msg("no signal")
		return state, nil
	}

	b.log.Info().
		Str("instrument", instrument).
		Str("direction", string(sig.Direction)).
		Str("reason", sig.Reason).
		Float64("atr", sig.ATR).
		Msg("signal found")
	b.recordSignal(instrument, sig)

	if err := b.executeSignal(ctx, instrument, sig, curr.Close); err != nil {
		// Order path failures are logged and skipped; the next scheduled
		// cycle retries naturally.
		b.log.Error().Err(err).Str("instrument", instrument).Msg("order submission failed")
	}
	return state, nil
}

// executeSignal fetches a fresh account snapshot, sizes the order, and
// submits it. A nil intent from the sizer is a deliberate no-trade outcome.
func (b *Bot) executeSignal(ctx context.Context, instrument string, sig strategy.Signal, price float64) error {
	account, err := b.gateway.GetAccount(ctx)
	if err != nil {
		return err
	}

	params := b.variant.Params()
	intent := risk.Size(account, sig, instrument, price, risk.Config{
		RiskFraction: b.cfg.Risk.RiskFraction,
		StopMult:     params.StopMult,
		RewardMult:   params.RewardMult,
		Leverage:     b.cfg.Risk.Leverage,
	})
	if intent == nil {
		b.log.Warn().Str("instrument", instrument).Msg("sizing rejected trade")
		return nil
	}

	b.log.Info().
		Str("instrument", instrument).
		Int64("units", intent.Units).
		Float64("stop", intent.StopPrice).
		Float64("take_profit", intent.TakeProfitPrice).
		Msg("placing order")

	err = b.gateway.CreateOrder(ctx, *intent)
	b.recordOrder(*intent, err)
	return err
}

func (b *Bot) recordSignal(instrument string, sig strategy.Signal) {
	if b.journal == nil {
		return
	}
	rec := journal.SignalRecord{
		ID:         id.New(),
		Time:       time.Now().UTC(),
		Instrument: instrument,
		Direction:  string(sig.Direction),
		Reason:     sig.Reason,
		ATR:        sig.ATR,
	}
	if err := b.journal.RecordSignal(rec); err != nil {
		b.log.Warn().Err(err).Msg("journal signal failed")
	}
}

func (b *Bot) recordOrder(intent broker.OrderIntent, submitErr error) {
	if b.journal == nil {
		return
	}
	rec := journal.OrderRecord{
		ID:              id.New(),
		Time:            time.Now().UTC(),
		Instrument:      intent.Instrument,
		Units:           intent.Units,
		StopPrice:       intent.StopPrice,
		TakeProfitPrice: intent.TakeProfitPrice,
		Status:          "submitted",
	}
	if submitErr != nil {
		rec.Status = "failed"
		rec.Error = submitErr.Error()
	}
	if err := b.journal.RecordOrder(rec); err != nil {
		b.log.Warn().Err(err).Msg("journal order failed")
	}
}
