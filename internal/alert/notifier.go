// Package alert handles sending notifications about noteworthy run
// events, such as a strategy clearing a fitness threshold.
package alert

import (
	"fmt"
	"sync"

	"github.com/your-org/strategy-miner/internal/engine"
	"github.com/your-org/strategy-miner/pkg/logger"
)

// Notifier is the interface for sending alert messages.
type Notifier interface {
	Send(message string) error
	Close() error
}

// NoOpNotifier is a notifier that does nothing. It is used when
// alerting is disabled.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Send does nothing and returns nil.
func (n *NoOpNotifier) Send(message string) error {
	return nil
}

// Close does nothing and returns nil.
func (n *NoOpNotifier) Close() error {
	return nil
}

// LogNotifier writes alert messages to the application log.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(l logger.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

// Send logs the message at info level.
func (n *LogNotifier) Send(message string) error {
	n.log.Infof("ALERT: %s", message)
	return nil
}

// Close does nothing and returns nil.
func (n *LogNotifier) Close() error {
	return nil
}

// ThresholdSink notifies once when the best fitness of a generation
// first reaches the threshold. It plugs into the evolution engine as a
// stats sink.
type ThresholdSink struct {
	notifier  Notifier
	threshold float64

	mu    sync.Mutex
	fired bool
}

// NewThresholdSink wraps a notifier with a one-shot fitness trigger.
func NewThresholdSink(notifier Notifier, threshold float64) *ThresholdSink {
	return &ThresholdSink{notifier: notifier, threshold: threshold}
}

// PublishGeneration implements engine.StatsSink.
func (s *ThresholdSink) PublishGeneration(stats engine.GenerationStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fired || stats.Best < s.threshold {
		return
	}
	s.fired = true
	msg := fmt.Sprintf("fitness threshold %.4f reached at generation %d: %s",
		s.threshold, stats.Generation, stats.BestExpression)
	if err := s.notifier.Send(msg); err != nil {
		logger.Warnf("failed to send threshold alert: %v", err)
	}
}
