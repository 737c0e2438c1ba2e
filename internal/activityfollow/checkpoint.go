package activityfollow

import (
	"context"
	"errors"
	"sync"

	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
)

// ErrNoCheckpointFound is returned by LoadLatestCheckpoint when no checkpoint
// has been saved yet for the requested network.
var ErrNoCheckpointFound = errors.New("no checkpoint found for network")

// CheckpointStorage persists and retrieves the last block covered by a
// published report, per network.
type CheckpointStorage interface {
	// SaveCheckpoint records block as the latest checkpoint for network,
	// overwriting any previous one.
	SaveCheckpoint(ctx context.Context, network string, block uint64) error

	// LoadLatestCheckpoint returns the most recent checkpoint of network or
	// ErrNoCheckpointFound.
	LoadLatestCheckpoint(ctx context.Context, network string) (uint64, error)
}

// loadCursor returns the block the next scan starts after.
func (s *service) loadCursor(ctx context.Context) (int64, error) {
	block, err := s.checkpointStorage.LoadLatestCheckpoint(ctx, s.network)
	if errors.Is(err, ErrNoCheckpointFound) {
		logger.Info(ctx, "no checkpoint found, starting from configured block", "start_block", s.startBlock)
		return s.startBlock, nil
	}
	if err != nil {
		return 0, err
	}

	return int64(block), nil
}

// memoryCheckpoint keeps checkpoints in process memory. It is used when no
// durable storage is configured.
type memoryCheckpoint struct {
	mu     sync.Mutex
	blocks map[string]uint64
}

func newMemoryCheckpoint() *memoryCheckpoint {
	return &memoryCheckpoint{blocks: make(map[string]uint64)}
}

func (m *memoryCheckpoint) SaveCheckpoint(_ context.Context, network string, block uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks[network] = block
	return nil
}

func (m *memoryCheckpoint) LoadLatestCheckpoint(_ context.Context, network string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	block, ok := m.blocks[network]
	if !ok {
		return 0, ErrNoCheckpointFound
	}

	return block, nil
}
