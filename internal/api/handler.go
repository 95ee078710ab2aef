package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"placard/internal/config"
	"placard/internal/logging"
	"placard/internal/queue"
	"placard/internal/session"
	"placard/internal/workflow"
)

// Handler exposes the read-only status surface over HTTP: the resolved
// manifest, the live asset map, the queue, and readiness metrics.
type Handler struct {
	cfg       *config.Config
	sess      *session.Session
	store     *queue.Store
	processor *workflow.Processor
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(cfg *config.Config, sess *session.Session, store *queue.Store, processor *workflow.Processor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Handler{
		cfg:       cfg,
		sess:      sess,
		store:     store,
		processor: processor,
		logger:    logging.NewComponentLogger(logger, "api"),
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/manifest", h.handleManifest)
		r.Get("/assets", h.handleAssets)
		r.Get("/queue", h.handleQueue)
		r.Get("/readiness", h.handleReadiness)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleManifest(w http.ResponseWriter, r *http.Request) {
	view := ManifestView{
		CampaignID: h.cfg.Campaign.ID,
		Entries:    []ManifestEntry{},
	}
	if m := h.sess.Manifest(); m != nil {
		if refreshed := h.sess.LastRefresh(); !refreshed.IsZero() {
			view.GeneratedAt = refreshed.Format(dateTimeFormat)
		}
		for _, entry := range m.Entries() {
			view.Entries = append(view.Entries, ManifestEntry{
				ScreenID:         entry.ScreenID,
				ScreenName:       entry.ScreenName,
				SlotNumber:       entry.Slot,
				ExpectedFilename: entry.Filename,
				Status:           h.sess.Assets.StatusFor(entry.Key()),
				AllowedFormats:   entry.Spec.AllowedFormats,
				MaxSizeMB:        entry.Spec.MaxSizeMB,
				MaxDurationSec:   entry.Spec.MaxDurationSec,
			})
		}
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleAssets(w http.ResponseWriter, r *http.Request) {
	snapshot := h.sess.Assets.Snapshot()
	views := make([]AssetView, 0, len(snapshot))
	for key, asset := range snapshot {
		view := AssetView{
			ScreenID:       key.ScreenID,
			SlotNumber:     key.Slot,
			RemoteID:       asset.RemoteID,
			Filename:       asset.Filename,
			SizeBytes:      asset.SizeBytes,
			URL:            asset.URL,
			Status:         asset.Status,
			ValidationNote: asset.Validation.Note,
			PolicyFailures: asset.Validation.PolicyFailures,
		}
		if !asset.UpdatedAt.IsZero() {
			view.UpdatedAt = asset.UpdatedAt.Format(dateTimeFormat)
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].ScreenID != views[j].ScreenID {
			return views[i].ScreenID < views[j].ScreenID
		}
		return views[i].SlotNumber < views[j].SlotNumber
	})
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleQueue(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "queue unavailable", err)
		return
	}
	views := make([]QueueEntryView, 0, len(entries))
	for _, entry := range entries {
		view := QueueEntryView{
			ID:           entry.ID,
			Filename:     entry.Filename,
			SourcePath:   entry.SourcePath,
			SizeBytes:    entry.SizeBytes,
			Status:       string(entry.Status),
			Progress:     entry.Progress,
			ErrorMessage: entry.ErrorMessage,
		}
		if !entry.CreatedAt.IsZero() {
			view.CreatedAt = entry.CreatedAt.Format(dateTimeFormat)
		}
		if !entry.UpdatedAt.IsZero() {
			view.UpdatedAt = entry.UpdatedAt.Format(dateTimeFormat)
		}
		views = append(views, view)
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleReadiness(w http.ResponseWriter, r *http.Request) {
	metrics := h.sess.Metrics()
	view := ReadinessView{
		TotalSlots:    metrics.TotalSlots,
		MappedCount:   metrics.MappedCount,
		UploadedCount: metrics.UploadedCount,
		ApprovedCount: metrics.ApprovedCount,
		Ready:         metrics.Ready(),
	}
	if h.processor != nil {
		view.Processing = h.processor.Running()
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response failed", logging.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	h.logger.Error(message, logging.Error(err))
	h.writeJSON(w, status, map[string]string{"error": message})
}
