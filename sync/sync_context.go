package sync

import "log/slog"

// SyncContext holds shared sync configuration and the injected logging
// capability. It is immutable after construction.
type SyncContext struct {
	Config         Config
	Logger         *slog.Logger
	RecordRequests bool
}

// NewSyncContext builds a SyncContext, defaulting the logger to slog.Default
// when none is provided.
func NewSyncContext(config Config, logger *slog.Logger, recordRequests bool) *SyncContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncContext{
		Config:         config,
		Logger:         logger,
		RecordRequests: recordRequests,
	}
}
