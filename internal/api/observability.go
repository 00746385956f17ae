package api

import "go.uber.org/zap"

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	Op        string
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver writes call events through a zap logger.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver creates an Observer logging events to log.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("op", event.Op),
		zap.Int("status", event.Status),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if event.Success {
		o.log.Info("api_call", fields...)
		return
	}
	o.log.Warn("api_call", append(fields, zap.String("error", event.ErrorCode))...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
