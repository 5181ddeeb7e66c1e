package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/rs/zerolog"
)

type PromptExecutor interface {
	Execute(ctx context.Context, req models.PromptRequest) (models.PromptResult, error)
}

// Processor fans records out to a fixed pool of workers. Output order is not preserved.
type Processor struct {
	executor PromptExecutor
	workers  int
	logger   *zerolog.Logger
}

func NewProcessor(exec PromptExecutor, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}

	return &Processor{
		executor: exec,
		workers:  workers,
		logger:   logger,
	}
}

func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan models.PromptOutcome {
	jobs := make(chan InputRecord)
	results := make(chan models.PromptOutcome, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for record := range jobs {
				results <- p.processRecord(ctx, worker, record)
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				p.logger.Warn().Int("line", record.LineNumber).Msg("Processing cancelled")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) processRecord(ctx context.Context, worker int, record InputRecord) models.PromptOutcome {
	requestID := record.Request.ID
	if requestID == "" {
		requestID = fmt.Sprintf("line-%d", record.LineNumber)
	}

	if record.Error != nil {
		return models.PromptOutcome{
			RequestID: requestID,
			Status:    models.StatusRejected,
			Error:     record.Error.Error(),
		}
	}

	request := record.Request
	request.ID = requestID

	p.logger.Debug().Int("worker", worker).Str("request_id", requestID).Msg("Processing record")

	result, err := p.executor.Execute(ctx, request)
	return executor.Outcome(requestID, result, err)
}
