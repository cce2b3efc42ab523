package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DhruvKhambhata/trackflow/internal/notification"
	"github.com/DhruvKhambhata/trackflow/internal/types/subscription"
)

type PushProvider interface {
	SendPush(ctx context.Context, sub *subscription.PushSubscription, payload *notification.PushPayload) error
}

type EmailProvider interface {
	SendReminderEmail(ctx context.Context, to, message string) error
	SendDailyReminderEmail(ctx context.Context, to string) error
}

// PushDeactivator marks a push subscription inactive after a failed
// delivery, so stale browser endpoints heal themselves.
type PushDeactivator interface {
	DeactivatePushSubscription(ctx context.Context, id uuid.UUID) error
}

// DispatchJob is one delivery attempt: either a push or an email.
type DispatchJob struct {
	Push        *subscription.PushSubscription
	PushPayload *notification.PushPayload

	Email        *subscription.EmailSubscription
	EmailMessage string // empty means the canned daily-reminder template
}

// ReminderDispatcher fans deliveries out through a fixed worker pool, so a
// large subscriber list never becomes one unbounded burst. One recipient
// failing never blocks the rest of the batch.
type ReminderDispatcher struct {
	push    PushProvider
	email   EmailProvider
	store   PushDeactivator
	workers int

	jobQueue chan *DispatchJob
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobWG    sync.WaitGroup
}

func NewReminderDispatcher(push PushProvider, email EmailProvider, store PushDeactivator) *ReminderDispatcher {
	d := &ReminderDispatcher{
		push:     push,
		email:    email,
		store:    store,
		workers:  5,
		jobQueue: make(chan *DispatchJob, 100),
		stopChan: make(chan struct{}),
	}
	d.startWorkers()
	return d
}

func (d *ReminderDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *ReminderDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.processJob(job)
			d.jobWG.Done()
		case <-d.stopChan:
			return
		}
	}
}

// Enqueue adds a delivery to the queue, dropping it with a log line if the
// queue stays full for 5 seconds.
func (d *ReminderDispatcher) Enqueue(job *DispatchJob) {
	d.jobWG.Add(1)
	select {
	case d.jobQueue <- job:
	case <-time.After(5 * time.Second):
		d.jobWG.Done()
		log.Println("Failed to queue reminder delivery: queue full")
	}
}

// Drain blocks until every enqueued job has been processed.
func (d *ReminderDispatcher) Drain() {
	d.jobWG.Wait()
}

// Stop shuts the worker pool down after in-flight jobs finish.
func (d *ReminderDispatcher) Stop() {
	log.Println("Stopping reminder dispatcher...")
	d.jobWG.Wait()
	close(d.stopChan)
	d.wg.Wait()
	log.Println("Reminder dispatcher stopped")
}

func (d *ReminderDispatcher) processJob(job *DispatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if job.Push != nil {
		if err := d.push.SendPush(ctx, job.Push, job.PushPayload); err != nil {
			if notification.IsSubscriptionGone(err) {
				log.Printf("Push subscription gone for user %s, deactivating", job.Push.UserID)
			} else {
				log.Printf("Push failed for user %s: %v", job.Push.UserID, err)
			}
			if dErr := d.store.DeactivatePushSubscription(ctx, job.Push.ID); dErr != nil {
				log.Printf("Failed to deactivate push subscription %s: %v", job.Push.ID, dErr)
			}
		}
		return
	}

	if job.Email != nil {
		var err error
		if job.EmailMessage != "" {
			err = d.email.SendReminderEmail(ctx, job.Email.Email, job.EmailMessage)
		} else {
			err = d.email.SendDailyReminderEmail(ctx, job.Email.Email)
		}
		if err != nil {
			log.Printf("Email failed for user %s: %v", job.Email.UserID, err)
		}
	}
}
