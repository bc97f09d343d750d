package worker

import (
	"context"
	"time"

	"github.com/blackcloro/transaction-validator/internal/domain/account"
	"github.com/blackcloro/transaction-validator/internal/validator"
	"github.com/blackcloro/transaction-validator/pkg/logger"
)

// Worker periodically snapshots the validator and logs ledger totals, so a
// long-running process leaves an audit trail of account and admission counts.
type Worker struct {
	validator      *validator.TransactionValidator
	interval       time.Duration
	stopChan       chan struct{}
	processingDone chan struct{}
}

func NewWorker(v *validator.TransactionValidator, interval time.Duration) *Worker {
	return &Worker{
		validator:      v,
		interval:       interval,
		stopChan:       make(chan struct{}),
		processingDone: make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(w.processingDone)
			return
		case <-w.stopChan:
			close(w.processingDone)
			return
		case <-ticker.C:
			w.runAudit()
		}
	}
}

func (w *Worker) runAudit() {
	var processed int64
	w.validator.Range(func(a *account.Account) bool {
		processed += a.ProcessedCount()
		return true
	})

	logger.Info("Ledger audit",
		"accounts", w.validator.AccountCount(),
		"processed_transactions", processed)
}

func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.processingDone
}
