package shutdown

import (
	"context"
	"os"
	"sync"

	palSignal "linkwatch/infrastructure/PAL/signal"
	"linkwatch/presentation/signals"

	"go.uber.org/zap"
)

type Handler struct {
	// appCtx is the application context; once it is done the handler stops listening.
	appCtx context.Context
	// appCtxCancel cancels appCtx when a shutdown signal arrives.
	appCtxCancel   context.CancelFunc
	signalChan     chan os.Signal
	once           sync.Once
	signalProvider palSignal.Provider
	notifier       signals.Notifier
	logger         *zap.Logger
}

func NewHandler(
	appCtx context.Context,
	appCtxCancel context.CancelFunc,
	signalProvider palSignal.Provider,
	notifier signals.Notifier,
	logger *zap.Logger,
) signals.Handler {
	return &Handler{
		appCtx:       appCtx,
		appCtxCancel: appCtxCancel,
		// os/signal never blocks on send, so an unbuffered channel could drop the signal.
		signalChan:     make(chan os.Signal, 1),
		signalProvider: signalProvider,
		notifier:       notifier,
		logger:         logger,
	}
}

func (h *Handler) Handle() {
	h.once.Do(func() {
		h.listenAndHandleShutdownSignals()
	})
}

func (h *Handler) listenAndHandleShutdownSignals() {
	h.subscribe()
	go func() {
		defer h.unsubscribe()
		select {
		case sig := <-h.signalChan:
			h.logger.Info("shutdown signal received", zap.Stringer("signal", sig))
			h.appCtxCancel()
		case <-h.appCtx.Done():
		}
	}()
}

func (h *Handler) subscribe() {
	h.notifier.Notify(h.signalChan, h.signalProvider.ShutdownSignals()...)
}

func (h *Handler) unsubscribe() {
	h.notifier.Stop(h.signalChan)
}
