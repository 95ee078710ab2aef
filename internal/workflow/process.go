package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"placard/internal/logging"
	"placard/internal/manifest"
	"placard/internal/queue"
	"placard/internal/screens"
	"placard/internal/services/campaign"
	"placard/internal/validation"
)

// ProcessEntry drives one queue entry end to end: match, validate against
// every matched screen, then upload to each matched slot sequentially. The
// first failed slot upload stops the entry; completed slots stay uploaded.
func (p *Processor) ProcessEntry(ctx context.Context, entry *queue.Entry) error {
	attemptID := uuid.NewString()
	entry.AttemptID = attemptID
	entry.Status = queue.StatusUploading
	entry.ErrorMessage = ""
	if err := p.store.Update(ctx, entry); err != nil {
		return fmt.Errorf("mark entry uploading: %w", err)
	}

	logger := p.logger.With(
		logging.Int64(logging.FieldEntryID, entry.ID),
		logging.String(logging.FieldFilename, entry.Filename),
		logging.String(logging.FieldAttemptID, attemptID),
	)

	m := p.sess.Manifest()
	matches := m.Match(entry.Filename)
	if len(matches) == 0 {
		return p.failEntry(ctx, entry, logger, fmt.Sprintf("no slot expects file %q", entry.Filename))
	}

	candidate := validation.Candidate{
		Path:      entry.SourcePath,
		Name:      entry.Filename,
		SizeBytes: entry.SizeBytes,
	}
	result := p.engine.ValidateAll(ctx, candidate, p.specsFor(matches))
	if result.AudioWarning {
		logger.Warn("creative has audio but a matched screen plays muted",
			logging.String(logging.FieldEventType, "audio_advisory"))
	}
	if !result.OK() {
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Debug("validation interrupted by shutdown")
			return ctx.Err()
		}
		return p.failEntry(ctx, entry, logger, strings.Join(result.Errors, "; "))
	}

	entry.SetProgress(10)
	if err := p.store.Update(ctx, entry); err != nil {
		return fmt.Errorf("record validation progress: %w", err)
	}

	total := len(matches)
	for i, match := range matches {
		key, asset, err := p.backend.Upload(ctx, campaign.UploadRequest{
			ScreenID:   match.ScreenID,
			SlotNumber: match.Slot,
			SourcePath: entry.SourcePath,
			Filename:   entry.Filename,
			SizeBytes:  entry.SizeBytes,
		})
		if err != nil {
			// A shutdown mid-upload must not fail the entry: it stays
			// uploading so the stuck reset requeues it on the next start.
			if errors.Is(err, context.Canceled) {
				logger.Debug("upload interrupted by shutdown")
				return err
			}
			message := fmt.Sprintf("upload failed for screen %s slot %d: %v", match.ScreenName, match.Slot, err)
			return p.failEntry(ctx, entry, logger, message)
		}

		p.sess.Assets.Put(key, asset)
		entry.SetProgress(10 + (90*(i+1))/total)
		if err := p.store.Update(ctx, entry); err != nil {
			return fmt.Errorf("record upload progress: %w", err)
		}
		logger.Info("slot upload complete",
			logging.String(logging.FieldScreenID, match.ScreenID),
			logging.Int(logging.FieldSlot, match.Slot),
			logging.Int("progress", entry.Progress))
	}

	entry.Status = queue.StatusDone
	entry.SetProgress(100)
	if err := p.store.Update(ctx, entry); err != nil {
		return fmt.Errorf("mark entry done: %w", err)
	}
	logger.Info("entry complete", logging.Int("slots", total))

	if err := p.sess.RefreshAssets(ctx); err != nil {
		logger.Warn("asset snapshot refresh failed", logging.Error(err))
	}
	return nil
}

// specsFor resolves the upload spec for each distinct screen in the match
// set, in match order.
func (p *Processor) specsFor(matches []manifest.SlotExpectation) []screens.Spec {
	distinct := manifest.MatchedScreens(matches)
	specs := make([]screens.Spec, 0, len(distinct))
	for _, match := range distinct {
		if screen, ok := p.sess.ScreenByID(match.ScreenID); ok {
			specs = append(specs, screens.ResolveSpec(screen))
		} else {
			specs = append(specs, match.Spec)
		}
	}
	return specs
}

func (p *Processor) failEntry(ctx context.Context, entry *queue.Entry, logger *slog.Logger, message string) error {
	entry.MarkError(message)
	if err := p.store.Update(ctx, entry); err != nil {
		return fmt.Errorf("record entry failure: %w", err)
	}
	logger.Error("entry failed", logging.String("reason", message))
	return nil
}
