package notifierprovider

import (
	"sync"
	"time"

	"github.com/Senaseser/assetTracker/providers"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxRecent bounds the kept feed; older notifications are dropped.
const maxRecent = 50

// FeedNotifier collects store notifications in a bounded in-memory feed and
// mirrors each one to the log. It stands in for the toast layer, which is a
// presentation concern outside this module.
type FeedNotifier struct {
	logger providers.ZapLoggerProvider

	mu     sync.Mutex
	recent []providers.Notification
}

func NewNotifierProvider(logger providers.ZapLoggerProvider) providers.NotifierProvider {
	return &FeedNotifier{logger: logger}
}

func (n *FeedNotifier) Success(message string) {
	n.push(providers.NotificationSuccess, message)
	n.logger.GetLogger().Info(message, zap.String("level", "success"))
}

func (n *FeedNotifier) Error(message string) {
	n.push(providers.NotificationError, message)
	n.logger.GetLogger().Error(message)
}

func (n *FeedNotifier) Info(message string) {
	n.push(providers.NotificationInfo, message)
	n.logger.GetLogger().Info(message)
}

// Recent returns the kept notifications, oldest first.
func (n *FeedNotifier) Recent() []providers.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]providers.Notification, len(n.recent))
	copy(out, n.recent)
	return out
}

func (n *FeedNotifier) push(level providers.NotificationLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append(n.recent, providers.Notification{
		ID:      uuid.New(),
		Level:   level,
		Message: message,
		Time:    time.Now(),
	})
	if len(n.recent) > maxRecent {
		n.recent = n.recent[len(n.recent)-maxRecent:]
	}
}
