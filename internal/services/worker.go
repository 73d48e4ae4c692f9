package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"prepverse/answer-evaluator/internal/repositories"
)

type JobKind string

const (
	JobAttempt JobKind = "attempt"
	JobGate    JobKind = "gate"
)

type Job struct {
	Kind JobKind
	ID   uuid.UUID
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueAttempt(attemptID uuid.UUID)
	EnqueueGate(reportID uuid.UUID)
}

type worker struct {
	attemptRepo      repositories.AttemptRepository
	gateRepo         repositories.GateReportRepository
	evaluatorService EvaluatorService
	gateService      GateService
	jobQueue         chan Job
	concurrency      int
	wg               sync.WaitGroup
	stopChan         chan struct{}
}

func NewWorker(
	attemptRepo repositories.AttemptRepository,
	gateRepo repositories.GateReportRepository,
	evaluatorService EvaluatorService,
	gateService GateService,
	concurrency int,
) Worker {
	return &worker{
		attemptRepo:      attemptRepo,
		gateRepo:         gateRepo,
		evaluatorService: evaluatorService,
		gateService:      gateService,
		jobQueue:         make(chan Job, 100),
		concurrency:      concurrency,
		stopChan:         make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueAttempt implements Worker.
func (w *worker) EnqueueAttempt(attemptID uuid.UUID) {
	w.enqueue(Job{Kind: JobAttempt, ID: attemptID})
}

// EnqueueGate implements Worker.
func (w *worker) EnqueueGate(reportID uuid.UUID) {
	w.enqueue(Job{Kind: JobGate, ID: reportID})
}

func (w *worker) enqueue(job Job) {
	select {
	case w.jobQueue <- job:
		log.Printf("📥 %s job %s enqueued\n", job.Kind, job.ID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue %s job %s\n", job.Kind, job.ID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing %s job %s\n", workerID, job.Kind, job.ID)

			var err error
			switch job.Kind {
			case JobAttempt:
				err = w.evaluatorService.EvaluateAttempt(ctx, job.ID)
			case JobGate:
				err = w.gateService.RunGate(ctx, job.ID)
			}

			if err != nil {
				log.Printf("❌ Worker #%d failed to process %s job %s: %v\n", workerID, job.Kind, job.ID, err)
			} else {
				log.Printf("✅ Worker #%d completed %s job %s\n", workerID, job.Kind, job.ID)
			}
		}
	}
}

// pollPendingJobs re-enqueues work that never reached the queue, e.g.
// jobs left behind by a restart. Attempt evaluation is deterministic,
// so picking up an attempt a second time just rewrites the same result.
func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingAttempts, err := w.attemptRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending attempts: %v\n", err)
			} else {
				if len(pendingAttempts) > 0 {
					log.Printf("📋 Found %d pending attempts\n", len(pendingAttempts))
				}
				for _, attempt := range pendingAttempts {
					w.EnqueueAttempt(attempt.ID)
				}
			}

			pendingGates, err := w.gateRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending gate reports: %v\n", err)
			} else {
				if len(pendingGates) > 0 {
					log.Printf("📋 Found %d pending gate reports\n", len(pendingGates))
				}
				for _, report := range pendingGates {
					w.EnqueueGate(report.ID)
				}
			}
		}
	}
}
