package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"placard/internal/assets"
	"placard/internal/config"
	"placard/internal/logging"
	"placard/internal/manifest"
	"placard/internal/queue"
	"placard/internal/services/campaign"
	"placard/internal/session"
	"placard/internal/validation"
)

// Backend is the campaign backend surface the processor writes through.
type Backend interface {
	Upload(ctx context.Context, req campaign.UploadRequest) (manifest.SlotKey, assets.Asset, error)
	Delete(ctx context.Context, key manifest.SlotKey) error
}

// Processor drains the upload queue sequentially: one entry at a time, one
// slot upload at a time within an entry. It is the sole mutator of upload
// state while running.
type Processor struct {
	cfg     *config.Config
	store   *queue.Store
	sess    *session.Session
	backend Backend
	engine  *validation.Engine
	logger  *slog.Logger

	pollInterval  time.Duration
	errorInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewProcessor constructs an upload queue processor.
func NewProcessor(cfg *config.Config, store *queue.Store, sess *session.Session, backend Backend, engine *validation.Engine, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:           cfg,
		store:         store,
		sess:          sess,
		backend:       backend,
		engine:        engine,
		logger:        logging.NewComponentLogger(logger, "processor"),
		pollInterval:  time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		errorInterval: time.Duration(cfg.Workflow.ErrorRetryInterval) * time.Second,
	}
}

// Start begins background queue processing. In-flight entries left over from
// an unclean shutdown are returned to the queue first.
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return errors.New("processor already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true
	p.wg.Add(1)
	p.mu.Unlock()

	if reset, err := p.store.ResetStuckUploading(runCtx); err != nil {
		p.logger.Warn("reset of stuck entries failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check queue database access"))
	} else if reset > 0 {
		p.logger.Info("returned stuck entries to queue", logging.Int64("entries", reset))
	}

	go p.run(runCtx)
	return nil
}

// Stop terminates background processing and waits for completion.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.running = false
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
}

// Running reports whether the background loop is active.
func (p *Processor) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Processor) run(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		entry, err := p.store.NextQueued(ctx)
		if err != nil {
			p.logger.Error("queue poll failed", logging.Error(err))
			p.waitOrShutdown(ctx, p.errorInterval)
			continue
		}
		if entry == nil {
			p.waitOrShutdown(ctx, p.pollInterval)
			continue
		}

		if err := p.ProcessEntry(ctx, entry); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			p.logger.Error("entry processing failed",
				logging.Int64(logging.FieldEntryID, entry.ID),
				logging.String(logging.FieldFilename, entry.Filename),
				logging.Error(err))
		}
	}
}

func (p *Processor) waitOrShutdown(ctx context.Context, wait time.Duration) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
