package scheduler

import (
	"context"
	"fmt"
	"log"

	"QuantWatch/internal/ledger"
	"QuantWatch/internal/notifier"
	"QuantWatch/internal/recorder"
	"QuantWatch/internal/strategy"
	"QuantWatch/internal/trader"

	"github.com/robfig/cron/v3"
)

// Alert is one threshold-crossing event raised by the portfolio scan.
type Alert struct {
	Symbol  string
	Score   float64
	Message string
}

// Scheduler drives the periodic portfolio scan and handles chat commands.
type Scheduler struct {
	Cron       *cron.Cron
	Trader     *trader.Trader
	Budget     *ledger.Budget
	Notifier   *notifier.TelegramNotifier
	Recorder   recorder.Recorder
	AuthChatID string // when set, messages from other chats are ignored
	Ctx        context.Context
}

// NewScheduler creates a Scheduler. The cron chain skips a tick when the
// previous scan is still running instead of queueing it.
func NewScheduler(ctx context.Context, tr *trader.Trader, budget *ledger.Budget, tn *notifier.TelegramNotifier, rec recorder.Recorder, authChatID string) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Trader:     tr,
		Budget:     budget,
		Notifier:   tn,
		Recorder:   rec,
		AuthChatID: authChatID,
		Ctx:        ctx,
	}
}

// Register adds the periodic scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the portfolio scan immediately (for RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running portfolio scan")
	chatID := s.Budget.State().ChatID
	for _, a := range s.ScanOnce() {
		s.trySend(chatID, a.Message)
	}
}

// ScanOnce evaluates every open position and returns one alert per
// holding scoring below the danger threshold. Without a notification
// target the whole scan is a no-op. A holding that fails to evaluate is
// skipped; one bad symbol never aborts the scan.
func (s *Scheduler) ScanOnce() []Alert {
	state := s.Budget.State()
	if state.ChatID == "" {
		log.Println("[INFO] scan skipped: no notification target configured")
		return nil
	}

	var alerts []Alert
	for _, pos := range s.Trader.Portfolio.Positions() {
		res, err := s.Trader.Analyze(s.Ctx, pos.Symbol)
		if err != nil {
			log.Printf("[WARN] scan: analyze %s: %v", pos.Symbol, err)
			continue
		}
		if err := s.Recorder.RecordAnalysis(res); err != nil {
			log.Printf("[ERROR] record analysis: %v", err)
		}
		if res.FinalScore < strategy.DangerThreshold {
			a := Alert{
				Symbol:  pos.Symbol,
				Score:   res.FinalScore,
				Message: notifier.FormatAlert(pos.Symbol, res.FinalScore),
			}
			alerts = append(alerts, a)
			if err := s.Recorder.RecordAlert(&recorder.AlertEvent{
				Symbol: a.Symbol, Score: a.Score, Message: a.Message,
			}); err != nil {
				log.Printf("[ERROR] record alert: %v", err)
			}
		}
	}

	if len(alerts) == 0 {
		log.Println("[INFO] scan completed: all holdings nominal")
	}
	return alerts
}

func (s *Scheduler) trySend(chatID, text string) {
	if chatID == "" {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, chatID, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
