package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"alfredoptarigan/cv-screener/internal/models"
)

const defaultConcurrency = 3

// BatchProcessor runs a batch of uploads through the orchestrator on a
// bounded pool of workers.
type BatchProcessor interface {
	Process(ctx context.Context, jobs []FileJob) []models.FileResult
}

type batchJob struct {
	index int
	job   FileJob
}

type worker struct {
	orchestrator Orchestrator
	concurrency  int
}

func NewBatchProcessor(orchestrator Orchestrator, concurrency int) BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &worker{
		orchestrator: orchestrator,
		concurrency:  concurrency,
	}
}

// Process implements BatchProcessor. Results are index-aligned with jobs. A
// cancelled context marks every job not yet started as failed; finished jobs
// keep their result.
func (w *worker) Process(ctx context.Context, jobs []FileJob) []models.FileResult {
	results := make([]models.FileResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	workers := w.concurrency
	if workers > len(jobs) {
		workers = len(jobs)
	}
	log.Printf("🚀 Processing %d files with %d workers\n", len(jobs), workers)

	jobQueue := make(chan batchJob)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go w.processJobs(ctx, i+1, jobQueue, results, &wg)
	}

	enqueued := 0
enqueue:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			break enqueue
		case jobQueue <- batchJob{index: i, job: job}:
			enqueued++
		}
	}
	close(jobQueue)
	wg.Wait()

	for i := enqueued; i < len(jobs); i++ {
		results[i] = models.FileResult{
			FileName: jobs[i].FileName,
			Status:   models.StatusFailed,
			Error:    ctx.Err().Error(),
		}
	}

	return results
}

func (w *worker) processJobs(ctx context.Context, workerID int, jobQueue <-chan batchJob, results []models.FileResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for j := range jobQueue {
		log.Printf("👷 Worker #%d processing %s\n", workerID, j.job.FileName)
		results[j.index] = w.processOne(ctx, j.job)
	}
}

func (w *worker) processOne(ctx context.Context, job FileJob) (result models.FileResult) {
	result.FileName = job.FileName

	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic while processing %s: %v\n", job.FileName, r)
			result.Status = models.StatusFailed
			result.Error = "internal error while processing file"
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Status = models.StatusFailed
		result.Error = err.Error()
		return result
	}

	out, err := w.orchestrator.ProcessFile(ctx, job)
	if err != nil {
		log.Printf("❌ Failed to process %s: %v\n", job.FileName, err)
		result.Status = FailureStatus(err)
		result.Error = err.Error()
		return result
	}

	result.Status = out.Status
	result.Candidate = out.Candidate
	result.CandidateID = out.Candidate.ID.String()
	result.ExtractionMethod = out.Candidate.ExtractionMethod
	result.ReplacedFile = out.ReplacedFile
	return result
}

// FailureStatus maps a processing error to the per-file status. Documents that
// are unsupported, unreadable or too short are rejected; anything else failed.
func FailureStatus(err error) models.ProcessStatus {
	switch {
	case errors.Is(err, ErrInsufficientText),
		errors.Is(err, ErrTextExtraction),
		errors.Is(err, ErrUnsupportedFile),
		errors.Is(err, ErrFileTooLarge):
		return models.StatusRejected
	}
	return models.StatusFailed
}

// Summarize counts the outcomes of a batch.
func Summarize(results []models.FileResult) models.BatchSummary {
	s := models.BatchSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case models.StatusRejected:
			s.Rejected++
		case models.StatusFailed:
			s.Failed++
		default:
			s.Succeeded++
		}
	}
	return s
}
