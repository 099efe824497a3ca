// Command audit-export dumps the audit_log table to a gzipped NDJSON file,
// one record per line, for offline inspection or archival.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/fira-bridge/internal/storage/postgres"
)

func main() {
	var (
		outPath     string
		databaseURL string
	)

	flag.StringVar(&outPath, "out", "audit-log.ndjson.gz", "output file path")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, outPath, databaseURL); err != nil {
		slog.Error("audit export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("audit export completed", slog.String("out", outPath))
}

func run(ctx context.Context, outPath, databaseURL string) error {
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	repo := postgres.NewAuditLogRepository(pool)

	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer func() { _ = f.Close() }()

	gz := pgzip.NewWriter(f)
	bw := bufio.NewWriter(gz)

	// Producer walks the table, consumer encodes and writes, so the DB read
	// and the compression overlap.
	records := make(chan postgres.AuditRecord, 256)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(records)
		return repo.Walk(ctx, func(rec postgres.AuditRecord) error {
			select {
			case records <- rec:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	g.Go(func() error {
		var count int
		enc := json.NewEncoder(bw)
		for rec := range records {
			if err := enc.Encode(rec); err != nil {
				return errors.Wrap(err, "encode record")
			}
			count++
			if count%10_000 == 0 {
				slog.Info("export progress", slog.Int("records", count))
			}
		}
		slog.Info("export finished", slog.Int("records", count))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush writer")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "close gzip writer")
	}
	return f.Close()
}
