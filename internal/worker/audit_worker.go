package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/events"
)

// AuditWorker records session and cart events to the terminal's local
// audit log.
type AuditWorker struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// StartAuditWorker subscribes audit handlers on the dispatcher.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	w := &AuditWorker{dispatcher: dispatcher, logger: logger}
	w.registerHandlers()
}

func (w *AuditWorker) registerHandlers() {
	w.dispatcher.Subscribe(events.EventAuthChanged, w.handleAuthChanged)
	w.dispatcher.Subscribe(events.EventModeSwitched, w.handleModeSwitched)
	w.dispatcher.Subscribe(events.EventCartChanged, w.handleCartChanged)
	w.dispatcher.Subscribe(events.EventThemeChanged, w.handleThemeChanged)
}

func (w *AuditWorker) handleAuthChanged(_ context.Context, event events.Event) error {
	w.logger.Info("AuthChanged", zap.String("slot", string(event.Slot)), zap.Any("payload", event.Payload))
	return nil
}

func (w *AuditWorker) handleModeSwitched(_ context.Context, event events.Event) error {
	w.logger.Info("ModeSwitched", zap.String("slot", string(event.Slot)), zap.Any("payload", event.Payload))
	return nil
}

func (w *AuditWorker) handleCartChanged(_ context.Context, event events.Event) error {
	w.logger.Debug("CartChanged", zap.Any("payload", event.Payload))
	return nil
}

func (w *AuditWorker) handleThemeChanged(_ context.Context, event events.Event) error {
	w.logger.Debug("ThemeChanged", zap.String("slot", string(event.Slot)), zap.Any("payload", event.Payload))
	return nil
}
