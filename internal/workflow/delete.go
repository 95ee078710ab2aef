package workflow

import (
	"context"
	"fmt"

	"placard/internal/logging"
	"placard/internal/manifest"
)

// Delete removes the asset occupying a slot. The backend delete is keyed by
// screen and slot; on success the local asset state is dropped and queue
// entries for the slot's expected filename are removed (matched
// case-insensitively) so no stale "done" entry outlives the remote asset.
func (p *Processor) Delete(ctx context.Context, key manifest.SlotKey) error {
	if err := p.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}

	p.sess.Assets.Remove(key)
	p.logger.Info("slot asset deleted",
		logging.String(logging.FieldScreenID, key.ScreenID),
		logging.Int(logging.FieldSlot, key.Slot))

	if m := p.sess.Manifest(); m != nil {
		if filename, ok := m.ExpectedFilename(key.ScreenID, key.Slot); ok && filename != "" {
			removed, err := p.store.RemoveByFilename(ctx, filename)
			if err != nil {
				return fmt.Errorf("remove queue entries for %q: %w", filename, err)
			}
			if removed > 0 {
				p.logger.Info("queue entries removed",
					logging.String(logging.FieldFilename, filename),
					logging.Int64("entries", removed))
			}
		}
	}
	return nil
}
