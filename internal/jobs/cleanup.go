package jobs

import (
	"log"
	"time"

	"github.com/mybambu/transfer-backend/internal/services"
	"github.com/mybambu/transfer-backend/internal/storage"
)

const (
	sweepInterval = 5 * time.Minute
	sessionTTL    = 30 * time.Minute
)

// CleanupJob sweeps stale conversation sessions and expired verification codes
type CleanupJob struct {
	sessions     storage.SessionStore
	verification *services.VerificationService
	isRunning    bool
	stop         chan struct{}
}

// NewCleanupJob creates a new cleanup job scheduler
func NewCleanupJob(sessions storage.SessionStore, verification *services.VerificationService) *CleanupJob {
	return &CleanupJob{
		sessions:     sessions,
		verification: verification,
	}
}

// Start begins the periodic sweeps
func (j *CleanupJob) Start() {
	if j.isRunning {
		log.Println("Cleanup job already running")
		return
	}

	j.isRunning = true
	j.stop = make(chan struct{})
	log.Println("Starting cleanup job...")

	go j.run()
}

// Stop halts the sweeps
func (j *CleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping cleanup job...")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stop:
			return
		}
	}
}

func (j *CleanupJob) sweep() {
	if removed := j.sessions.SweepExpired(sessionTTL); removed > 0 {
		log.Printf("🧹 Removed %d inactive session(s)", removed)
	}
	if j.verification != nil {
		j.verification.Cleanup()
	}
}
