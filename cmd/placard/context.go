package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"placard/internal/config"
	"placard/internal/media/probe"
	"placard/internal/queue"
	"placard/internal/services/campaign"
	"placard/internal/session"
	"placard/internal/validation"
	"placard/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// pipeline bundles the long-lived collaborators a command needs to touch
// campaign state.
type pipeline struct {
	cfg       *config.Config
	client    *campaign.Client
	store     *queue.Store
	session   *session.Session
	processor *workflow.Processor
}

// newPipeline wires the backend client, queue store, session, and processor,
// and performs the initial manifest refresh.
func (c *commandContext) newPipeline(ctx context.Context, logger *slog.Logger) (*pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	client, err := campaign.New(cfg)
	if err != nil {
		return nil, err
	}

	store, err := queue.Open(cfg)
	if err != nil {
		return nil, err
	}

	sess := session.New(cfg, client, logger)
	if err := sess.Refresh(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	prober := probe.NewFFprobe(cfg.FFprobeBinary(), cfg.ProbeTimeout(), logger)
	engine := validation.NewEngine(prober)
	processor := workflow.NewProcessor(cfg, store, sess, client, engine, logger)

	return &pipeline{
		cfg:       cfg,
		client:    client,
		store:     store,
		session:   sess,
		processor: processor,
	}, nil
}

func (p *pipeline) Close() error {
	return p.store.Close()
}
