// Command feeder replays JSON-line event files onto the ingest feed. Each
// line is a feed event: {"kind":"pokemon","payload":{...}}. Intended for
// development and load testing against a running scout instance.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"scout/config"
	"scout/internal/domain/service"
	logs "scout/internal/infra/log"
	"scout/internal/infra/pubsub"

	"github.com/google/uuid"
)

func main() {
	var (
		path  = flag.String("file", "-", "JSON-lines event file, - for stdin")
		pace  = flag.Duration("pace", 100*time.Millisecond, "delay between published events")
		count = flag.Int("count", 0, "stop after N events, 0 for all")
	)
	flag.Parse()

	if err := run(*path, *pace, *count); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, pace time.Duration, count int) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	ctx := context.Background()
	publisher, err := pubsub.NewFeedPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	input := os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
	}

	return feed(ctx, logger, publisher, input, pace, count)
}

func feed(ctx context.Context, logger *slog.Logger, publisher service.FeedPublisher, input io.Reader, pace time.Duration, count int) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	published := 0
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var event service.FeedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			logger.Warn("Skipping malformed line",
				slog.Int("line", line),
				slog.Any("error", err),
			)

			continue
		}
		if event.RequestID == "" {
			event.RequestID = uuid.NewString()
		}

		if err := publisher.PublishEvent(ctx, &event); err != nil {
			logger.Error("Publish failed",
				slog.Int("line", line),
				slog.String("kind", event.Kind),
				slog.Any("error", err),
			)

			continue
		}

		published++
		if count > 0 && published >= count {
			break
		}
		time.Sleep(pace)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	logger.Info("Feed replay finished", slog.Int("published", published))

	return nil
}
