package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/reference-data-service/internal/domain"
)

// DepartmentRepositoryFactory opens an empty repository for one scenario.
type DepartmentRepositoryFactory func(t *testing.T) DepartmentRepository

// RunDepartmentRepositoryScenarios checks the store contract shared by every
// DepartmentRepository implementation.
func RunDepartmentRepositoryScenarios(t *testing.T, factory DepartmentRepositoryFactory) {
	t.Run("PutAssignsFreshIDs", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		first, err := repo.Put(ctx, &domain.Department{Name: "alpha"})
		require.NoError(t, err)
		second, err := repo.Put(ctx, &domain.Department{Name: "alpha"})
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, "alpha", second.Name)
	})

	t.Run("GetReturnsStoredRecord", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		saved, err := repo.Put(ctx, &domain.Department{Name: "bravo"})
		require.NoError(t, err)

		got, err := repo.Get(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, *saved, *got)

		_, err = repo.Get(ctx, saved.ID+1000)
		assert.ErrorIs(t, err, ErrDepartmentNotFound)
		_, err = repo.Get(ctx, -1)
		assert.ErrorIs(t, err, ErrDepartmentNotFound)
	})

	t.Run("PutWithIDReplacesName", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		saved, err := repo.Put(ctx, &domain.Department{Name: "A"})
		require.NoError(t, err)

		updated, err := repo.Put(ctx, &domain.Department{ID: saved.ID, Name: "B"})
		require.NoError(t, err)
		assert.Equal(t, saved.ID, updated.ID)
		assert.Equal(t, "B", updated.Name)

		got, err := repo.Get(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "B", got.Name)

		_, total, err := repo.List(ctx, 0, 10, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("RemoveDeletesOnlyTarget", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		one, err := repo.Put(ctx, &domain.Department{Name: "one"})
		require.NoError(t, err)
		two, err := repo.Put(ctx, &domain.Department{Name: "two"})
		require.NoError(t, err)

		removed, err := repo.Remove(ctx, one.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Remove(ctx, one.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		items, total, err := repo.List(ctx, 0, 10, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, *two, items[0])
	})

	t.Run("ListPagesInIDOrder", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		var ids []int64
		for _, name := range []string{"charlie", "alpha", "echo", "bravo", "delta"} {
			saved, err := repo.Put(ctx, &domain.Department{Name: name})
			require.NoError(t, err)
			ids = append(ids, saved.ID)
		}

		page, total, err := repo.List(ctx, 0, 2, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Equal(t, []int64{ids[0], ids[1]}, departmentIDs(page))

		page, _, err = repo.List(ctx, 4, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[4]}, departmentIDs(page))

		page, total, err = repo.List(ctx, 10, 2, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Empty(t, page)
	})

	t.Run("ListSortsByName", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		for _, name := range []string{"charlie", "alpha", "bravo", "alpha"} {
			_, err := repo.Put(ctx, &domain.Department{Name: name})
			require.NoError(t, err)
		}

		asc, _, err := repo.List(ctx, 0, 10, domain.Sort{{Property: "name", Direction: domain.Ascending}})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "alpha", "bravo", "charlie"}, departmentNames(asc))
		assert.Less(t, asc[0].ID, asc[1].ID)

		desc, _, err := repo.List(ctx, 0, 10, domain.Sort{{Property: "name", Direction: domain.Descending}})
		require.NoError(t, err)
		assert.Equal(t, []string{"charlie", "bravo", "alpha", "alpha"}, departmentNames(desc))

		byID, _, err := repo.List(ctx, 0, 10, domain.Sort{{Property: "id", Direction: domain.Descending}})
		require.NoError(t, err)
		assert.Greater(t, byID[0].ID, byID[3].ID)
	})

	t.Run("ListRejectsUnknownSortProperty", func(t *testing.T) {
		repo := factory(t)
		_, _, err := repo.List(context.Background(), 0, 10, domain.Sort{{Property: "budget"}})
		assert.Error(t, err)
	})

	t.Run("ConcurrentPutsGetDistinctIDs", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		const workers = 16
		var wg sync.WaitGroup
		idCh := make(chan int64, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				saved, err := repo.Put(ctx, &domain.Department{Name: "parallel"})
				if err == nil {
					idCh <- saved.ID
				}
			}()
		}
		wg.Wait()
		close(idCh)

		seen := map[int64]bool{}
		for id := range idCh {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})
}

func departmentIDs(items []domain.Department) []int64 {
	ids := make([]int64, 0, len(items))
	for _, d := range items {
		ids = append(ids, d.ID)
	}
	return ids
}

func departmentNames(items []domain.Department) []string {
	names := make([]string, 0, len(items))
	for _, d := range items {
		names = append(names, d.Name)
	}
	return names
}
