package activityscan

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// blockResult is the outcome of fetching one block: either Record or Err is set.
type blockResult struct {
	Number uint64
	Record BlockRecord
	Err    error
}

func (r blockResult) skipped() bool {
	return r.Err != nil
}

// fetchBlock resolves the block hash, then loads header, timestamp and
// events concurrently. Every step runs under blockTimeout.
func (s *service) fetchBlock(ctx context.Context, chain Chain, number uint64) blockResult {
	ctx, cancel := context.WithTimeout(ctx, s.blockTimeout)
	defer cancel()

	hash, err := chain.BlockHash(ctx, number)
	if err != nil {
		return blockResult{Number: number, Err: fmt.Errorf("block hash: %w", err)}
	}

	var (
		header    Header
		timestamp int64
		events    []Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if header, err = chain.Header(gctx, hash); err != nil {
			return fmt.Errorf("header: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if timestamp, err = chain.Timestamp(gctx, hash); err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if events, err = chain.Events(gctx, hash); err != nil {
			return fmt.Errorf("events: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return blockResult{Number: number, Err: err}
	}

	if header.Number != 0 && header.Number != number {
		return blockResult{Number: number, Err: fmt.Errorf("header: number %d does not match requested block %d", header.Number, number)}
	}

	record := BlockRecord{
		Number: number,
		Hash:   hash,
		Time:   timestamp,
		Author: header.Author,
	}
	for _, event := range events {
		if event.IsHeartbeat() && event.Signer != "" {
			record.Heartbeats = append(record.Heartbeats, NormalizeKey(string(event.Signer)))
		}
	}

	return blockResult{Number: number, Record: record}
}
