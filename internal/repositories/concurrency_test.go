package repositories_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"portal/internal/models"
	"portal/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const writers = 20

// runConcurrently starts n goroutines running fn and waits for all of them.
func runConcurrently(n int, fn func(i int)) {
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
}

func TestConcurrentTileCreate_AssignsUniqueIDs(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			repo := repositories.NewGORMTileRepository(newFileDB(t, driver))

			errs := make([]error, writers)
			runConcurrently(writers, func(i int) {
				errs[i] = repo.Create(ctx, &models.Tile{
					Title:   fmt.Sprintf("Tile %d", i),
					IconURL: "i.png",
					LinkURL: fmt.Sprintf("/t/%d", i),
				})
			})
			for i, err := range errs {
				require.NoError(t, err, "writer %d", i)
			}

			tiles, err := repo.GetAll(ctx)
			require.NoError(t, err)
			ids := make([]int, 0, len(tiles))
			for _, tile := range tiles {
				ids = append(ids, int(tile.ID))
			}
			sort.Ints(ids)
			want := make([]int, writers)
			for i := range want {
				want[i] = i + 1
			}
			assert.Equal(t, want, ids)
		})
	}
}

func TestConcurrentSeedIfEmpty_SeedsOnce(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			repo := repositories.NewGORMTileRepository(newFileDB(t, driver))

			var mu sync.Mutex
			seededCount := 0
			runConcurrently(writers, func(int) {
				seeded, err := repo.SeedIfEmpty(ctx, models.DefaultTiles())
				assert.NoError(t, err)
				if seeded {
					mu.Lock()
					seededCount++
					mu.Unlock()
				}
			})
			assert.Equal(t, 1, seededCount)

			tiles, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, tiles, len(models.DefaultTiles()))
		})
	}
}

func TestConcurrentCreateIfTitleAbsent_InsertsOnce(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			repo := repositories.NewGORMTileRepository(newFileDB(t, driver))

			created := make([]bool, writers)
			runConcurrently(writers, func(i int) {
				ok, err := repo.CreateIfTitleAbsent(ctx, &models.Tile{Title: "Wiki", IconURL: "w.png", LinkURL: "/wiki"})
				assert.NoError(t, err)
				created[i] = ok
			})

			inserted := 0
			for _, ok := range created {
				if ok {
					inserted++
				}
			}
			assert.Equal(t, 1, inserted)

			tiles, err := repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, tiles, 1)
			assert.Equal(t, uint(1), tiles[0].ID)
		})
	}
}

func TestConcurrentUserCreateIfAbsent_InsertsOnce(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			db := newFileDB(t, driver)
			repo := repositories.NewGORMUserRepository(db)

			created := make([]bool, writers)
			runConcurrently(writers, func(i int) {
				ok, err := repo.CreateIfAbsent(ctx, &models.User{Username: "admin", PasswordHash: fmt.Sprintf("hash-%d", i)})
				assert.NoError(t, err)
				created[i] = ok
			})

			inserted := 0
			for _, ok := range created {
				if ok {
					inserted++
				}
			}
			assert.Equal(t, 1, inserted)

			var n int64
			require.NoError(t, db.Model(&models.User{}).Where("username = ?", "admin").Count(&n).Error)
			assert.Equal(t, int64(1), n)
		})
	}
}
