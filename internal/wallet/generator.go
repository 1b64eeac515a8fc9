package wallet

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantasim/solvault/internal/models"
)

// ProgressCallback is called during account generation to report progress.
type ProgressCallback func(generated int, total int)

// GenerateAccounts derives Solana accounts from index 0 to count-1 at the
// standard path m/44'/501'/N'/0'. Uses runtime.NumCPU() parallel workers;
// every account's chain is independent (each starts from the master key),
// so the workers share nothing but the read-only seed.
func GenerateAccounts(seed []byte, count int, progress ProgressCallback) ([]models.Account, error) {
	numWorkers := runtime.NumCPU()
	slog.Info("generating SOL accounts",
		"count", count,
		"workers", numWorkers,
	)
	start := time.Now()

	accounts := make([]models.Account, count)
	var done atomic.Int64
	var firstErr atomic.Value

	var wg sync.WaitGroup
	chunkSize := (count + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		chunkStart := w * chunkSize
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > count {
			chunkEnd = count
		}
		if chunkStart >= count {
			break
		}

		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				// Stop early if another worker hit an error.
				if firstErr.Load() != nil {
					return
				}

				addr, err := DeriveAccountAddress(seed, uint32(i))
				if err != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("generate account at index %d: %w", i, err))
					return
				}

				accounts[i] = models.Account{
					AccountIndex: i,
					Path:         AccountPath(uint32(i)),
					Address:      addr,
				}

				if n := done.Add(1); progress != nil && n%10000 == 0 {
					progress(int(n), count)
				}
			}
		}(chunkStart, chunkEnd)
	}

	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		return nil, errVal.(error)
	}

	slog.Info("SOL account generation complete",
		"count", len(accounts),
		"workers", numWorkers,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return accounts, nil
}
