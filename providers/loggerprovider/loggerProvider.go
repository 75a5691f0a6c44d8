package loggerprovider

import (
	"log"

	"github.com/Senaseser/assetTracker/providers"
	"go.uber.org/zap"
)

type LogProvider struct {
	logger *zap.Logger
}

func NewLogProvider() providers.ZapLoggerProvider {
	return &LogProvider{}
}

func (l *LogProvider) InitLogger() {
	var err error
	l.logger, err = zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	zap.ReplaceGlobals(l.logger)
}

func (l *LogProvider) SyncLogger() {
	if l.logger != nil {
		_ = l.logger.Sync()
	}
}

func (l *LogProvider) GetLogger() *zap.Logger {
	if l.logger == nil {
		return zap.NewNop()
	}
	return l.logger
}
