// Package importer bulk-loads hazard reports into the store from an NDJSON
// stream, one record per line. Malformed lines and duplicate ids are skipped,
// not fatal: report feeds are externally produced and dirty.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mr1hm/go-hazard-tools/internal/models"
	"github.com/mr1hm/go-hazard-tools/internal/repository"
	"github.com/mr1hm/go-hazard-tools/internal/worker"
)

type Summary struct {
	Submitted int64
	Added     int64
	Skipped   int64 // duplicate ids
	Malformed int64 // undecodable lines
	Failed    int64 // store errors
}

type Importer struct {
	repo    repository.HazardRepository
	workers int
	buffer  int

	added   atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
}

func New(repo repository.HazardRepository, workers, buffer int) *Importer {
	return &Importer{
		repo:    repo,
		workers: workers,
		buffer:  buffer,
	}
}

// Run reads NDJSON hazard records from r and inserts them through the worker
// pool. It returns once every submitted record has been processed.
func (im *Importer) Run(ctx context.Context, r io.Reader) (Summary, error) {
	pool := worker.NewPool(im.workers, im.buffer, im.process)
	pool.Start(ctx)

	var summary Summary

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var h models.Hazard
		if err := json.Unmarshal([]byte(line), &h); err != nil {
			slog.Warn("skipping malformed record", "error", err)
			summary.Malformed++
			continue
		}
		if h.ID == "" {
			h.ID = uuid.NewString()
		}

		pool.Submit(&h)
		summary.Submitted++
	}
	scanErr := scanner.Err()

	pool.Stop()

	summary.Added = im.added.Load()
	summary.Skipped = im.skipped.Load()
	summary.Failed = im.failed.Load()
	return summary, scanErr
}

func (im *Importer) process(ctx context.Context, h *models.Hazard) error {
	exists, err := im.repo.Exists(ctx, h.ID)
	if err != nil {
		slog.Error("error checking existence", "id", h.ID, "error", err)
		im.failed.Add(1)
		return err
	}
	if exists {
		im.skipped.Add(1)
		return nil
	}

	if err := im.repo.Add(ctx, h); err != nil {
		slog.Error("error adding hazard", "id", h.ID, "error", err)
		im.failed.Add(1)
		return err
	}

	im.added.Add(1)
	slog.Debug("added hazard", "id", h.ID, "type", h.HazardType, "location", h.Location)
	return nil
}
