package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/podcast-comb/app/feed"
)

type BuildResult struct {
	Total     int
	Matched   int
	Published int
	Fallback  bool
}

// BuildFeedTask runs the whole pipeline once: fetch, parse, select, assemble
// and render. Only a fetch or write failure is returned; nothing is written
// when the fetch fails.
type BuildFeedTask struct {
	Task
	FeedConfig *feed.Config
	Result     BuildResult
	fetcher    *feed.Fetcher
	parser     *feed.Parser
	selector   *feed.Selector
	assembler  *feed.Assembler
	generator  *feed.Generator
}

func NewBuildFeedTask(feedConfig *feed.Config, fetcher *feed.Fetcher, parser *feed.Parser, selector *feed.Selector, assembler *feed.Assembler, generator *feed.Generator) *BuildFeedTask {
	return &BuildFeedTask{
		Task:       NewTask(TaskTypeBuildFeed, feedConfig.Name),
		FeedConfig: feedConfig,
		fetcher:    fetcher,
		parser:     parser,
		selector:   selector,
		assembler:  assembler,
		generator:  generator,
	}
}

func (t *BuildFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetcher.Run(ctx, t.FeedConfig.SourceURL, t.FeedConfig.Timeout)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	meta, entries := t.parser.Run(data)

	selection := t.selector.Run(entries, t.FeedConfig.Keywords, t.FeedConfig.MinMatches)

	channel := t.assembler.Run(meta, selection.Episodes)

	if err := t.generator.WriteFile(channel, t.FeedConfig.OutputPath); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	t.Result = BuildResult{
		Total:     len(entries),
		Matched:   selection.Matched,
		Published: len(channel.Items),
		Fallback:  selection.Fallback,
	}

	slog.Info("Task completed",
		"type", "BuildFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"total", t.Result.Total,
		"matched", t.Result.Matched,
		"fallback", t.Result.Fallback,
		"published", t.Result.Published,
		"output", t.FeedConfig.OutputPath)

	return nil
}
