package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"careersync/backend/internal/models"
)

// EmailJob carries everything needed to render and deliver one report
// off the request path.
type EmailJob struct {
	ID      uuid.UUID
	To      string
	JobRole string
	Report  models.AnalysisReport
}

// EmailDispatcher runs mail delivery on background workers so the analyze
// response never waits on a transport. Delivery failures are logged and
// dropped; they must not affect the response that already went out.
type EmailDispatcher interface {
	Start()
	Stop()
	Enqueue(job EmailJob)
}

type emailDispatcher struct {
	mailer      Mailer
	queue       chan EmailJob
	concurrency int
	timeout     time.Duration
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewEmailDispatcher(mailer Mailer, concurrency, queueSize int, timeout time.Duration) EmailDispatcher {
	return &emailDispatcher{
		mailer:      mailer,
		queue:       make(chan EmailJob, queueSize),
		concurrency: concurrency,
		timeout:     timeout,
		stopChan:    make(chan struct{}),
	}
}

// Start implements EmailDispatcher.
func (d *emailDispatcher) Start() {
	log.Printf("🚀 Starting email dispatcher with %d workers\n", d.concurrency)

	for i := 0; i < d.concurrency; i++ {
		d.wg.Add(1)
		go d.processJobs(i + 1)
	}
}

// Stop implements EmailDispatcher.
func (d *emailDispatcher) Stop() {
	log.Println("🛑 Stopping email dispatcher...")
	close(d.stopChan)
	d.wg.Wait()
	log.Println("✅ Email dispatcher stopped")
}

// Enqueue implements EmailDispatcher.
func (d *emailDispatcher) Enqueue(job EmailJob) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	select {
	case d.queue <- job:
		log.Printf("📥 Email job %s enqueued for %s\n", job.ID, job.To)
	case <-d.stopChan:
		log.Printf("⚠️  Dispatcher stopped, dropping email job %s\n", job.ID)
	default:
		log.Printf("⚠️  Email queue full, dropping job %s for %s\n", job.ID, job.To)
	}
}

func (d *emailDispatcher) processJobs(workerID int) {
	defer d.wg.Done()

	for {
		select {
		case <-d.stopChan:
			log.Printf("👷 Email worker #%d stopped\n", workerID)
			return
		case job := <-d.queue:
			if err := d.deliver(job); err != nil {
				log.Printf("❌ Email worker #%d failed to deliver job %s: %v\n", workerID, job.ID, err)
			} else {
				log.Printf("✅ Email worker #%d delivered job %s to %s\n", workerID, job.ID, job.To)
			}
		}
	}
}

func (d *emailDispatcher) deliver(job EmailJob) error {
	html, err := RenderAnalysisReport(job.Report, job.JobRole)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	return d.mailer.Send(ctx, EmailMessage{
		To:      job.To,
		Subject: fmt.Sprintf("Your Resume Analysis Report for %s", job.JobRole),
		HTML:    html,
	})
}
