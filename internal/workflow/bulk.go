package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"placard/internal/logging"
	"placard/internal/screens"
	"placard/internal/services"
	"placard/internal/services/campaign"
	"placard/internal/validation"
)

// BulkResult summarizes a bulk upload: which slots took the creative and
// which failed, with per-slot error text.
type BulkResult struct {
	Succeeded   []int
	FailedSlots []int
	Errors      []string
}

// OK reports whether every targeted slot succeeded.
func (r BulkResult) OK() bool {
	return len(r.FailedSlots) == 0
}

// BulkUpload pushes one creative to an explicit slot selection on a single
// screen. The file is validated once against the screen's spec before any
// network call; after that, slot failures do not stop the remaining slots —
// the result reports partial success instead.
func (p *Processor) BulkUpload(ctx context.Context, screenID string, slots []int, sourcePath string) (BulkResult, error) {
	if len(slots) == 0 {
		return BulkResult{}, fmt.Errorf("no slots selected")
	}

	screen, ok := p.sess.ScreenByID(screenID)
	if !ok {
		return BulkResult{}, fmt.Errorf("unknown screen %q", screenID)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return BulkResult{}, fmt.Errorf("stat source file: %w", err)
	}

	filename := filepath.Base(sourcePath)
	candidate := validation.Candidate{
		Path:      sourcePath,
		Name:      filename,
		SizeBytes: info.Size(),
	}
	result := p.engine.Validate(ctx, candidate, screens.ResolveSpec(screen))
	if result.AudioWarning {
		p.logger.Warn("creative has audio but the screen plays muted",
			logging.String(logging.FieldScreenID, screenID),
			logging.String(logging.FieldEventType, "audio_advisory"))
	}
	if !result.OK() {
		return BulkResult{}, fmt.Errorf("%w: validation failed for %s: %s",
			services.ErrValidation, filename, strings.Join(result.Errors, "; "))
	}

	bulk := BulkResult{}
	for _, slot := range slots {
		key, asset, err := p.backend.Upload(ctx, campaign.UploadRequest{
			ScreenID:   screenID,
			SlotNumber: slot,
			SourcePath: sourcePath,
			Filename:   filename,
			SizeBytes:  info.Size(),
		})
		if err != nil {
			bulk.FailedSlots = append(bulk.FailedSlots, slot)
			bulk.Errors = append(bulk.Errors, fmt.Sprintf("slot %d: %v", slot, err))
			p.logger.Error("bulk slot upload failed",
				logging.String(logging.FieldScreenID, screenID),
				logging.Int(logging.FieldSlot, slot),
				logging.Error(err))
			continue
		}
		p.sess.Assets.Put(key, asset)
		bulk.Succeeded = append(bulk.Succeeded, slot)
		p.logger.Info("bulk slot upload complete",
			logging.String(logging.FieldScreenID, screenID),
			logging.Int(logging.FieldSlot, slot))
	}

	if err := p.sess.RefreshAssets(ctx); err != nil {
		p.logger.Warn("asset snapshot refresh failed", logging.Error(err))
	}
	return bulk, nil
}
