package inventory

import (
	"context"
	"log"
	"time"
)

// JobProcessor handles background jobs for the ticket inventory
type JobProcessor struct {
	service Service
	config  *JobConfig
	done    chan struct{}
}

// JobConfig contains configuration for background jobs
type JobConfig struct {
	CleanupInterval time.Duration
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		CleanupInterval: 1 * time.Minute, // Sweep expired holds every minute
	}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(service Service, config *JobConfig) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}

	return &JobProcessor{
		service: service,
		config:  config,
		done:    make(chan struct{}),
	}
}

// Start starts all background jobs
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Println("Starting inventory background jobs...")

	go jp.startCleanupProcessor(ctx)

	log.Println("Inventory background jobs started")
}

// Stop stops all background jobs
func (jp *JobProcessor) Stop() {
	log.Println("Stopping inventory background jobs...")
	close(jp.done)
	log.Println("Inventory background jobs stopped")
}

// startCleanupProcessor starts the expired hold sweeper. Expiry is
// already lazy at read and reserve time; this job only reclaims the
// rows so the table does not accumulate dead holds.
func (jp *JobProcessor) startCleanupProcessor(ctx context.Context) {
	ticker := time.NewTicker(jp.config.CleanupInterval)
	defer ticker.Stop()

	log.Printf("Started expired hold cleanup with %v interval", jp.config.CleanupInterval)

	for {
		select {
		case <-ticker.C:
			jp.processExpiredHolds(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// processExpiredHolds reclaims expired RESERVED tickets
func (jp *JobProcessor) processExpiredHolds(ctx context.Context) {
	reclaimed, err := jp.service.CleanupExpired(ctx)
	if err != nil {
		log.Printf("Error cleaning up expired holds: %v", err)
		return
	}

	if reclaimed > 0 {
		log.Printf("Reclaimed %d expired holds", reclaimed)
	}
}

// GetJobStatus returns the status of background jobs
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"cleanup_interval": jp.config.CleanupInterval.String(),
		"status":           "running",
	}
}
