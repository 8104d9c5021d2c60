package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/campus-lab/coursepath/pkg/domain/interfaces"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/repository/memory"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func runAssistantRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("CreateIfAbsent stores first registration", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, created, err := repo.Assistant().CreateIfAbsent(ctx, &model.Assistant{
			AssistantID:  "asst_001",
			UniversityID: "stanford",
			MajorID:      "cs",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(true)
		gt.Value(t, stored.AssistantID).Equal("asst_001")
		gt.Bool(t, stored.CreatedAt.IsZero()).False()
	})

	t.Run("CreateIfAbsent keeps the first writer", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, created, err := repo.Assistant().CreateIfAbsent(ctx, &model.Assistant{
			AssistantID:  "asst_first",
			UniversityID: "stanford",
			MajorID:      "dh",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(true)

		second, created, err := repo.Assistant().CreateIfAbsent(ctx, &model.Assistant{
			AssistantID:  "asst_second",
			UniversityID: "stanford",
			MajorID:      "dh",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(false)
		gt.Value(t, second.AssistantID).Equal(first.AssistantID)
	})

	t.Run("Get returns stored registration by key", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, _, err := repo.Assistant().CreateIfAbsent(ctx, &model.Assistant{
			AssistantID:  "asst_get",
			UniversityID: "berkeley",
			MajorID:      "cs",
		})
		gt.NoError(t, err).Required()

		got, err := repo.Assistant().Get(ctx, model.AssistantKey("berkeley", "cs"))
		gt.NoError(t, err).Required()
		gt.Value(t, got.AssistantID).Equal("asst_get")
		gt.Value(t, got.UniversityID).Equal("berkeley")
	})

	t.Run("Get on unknown key is tagged not-found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Assistant().Get(ctx, "nowhere_nothing")
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, errutil.TagNotFound)).Equal(true)
	})

	t.Run("List returns registrations newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, _, err := repo.Assistant().CreateIfAbsent(ctx, &model.Assistant{
			AssistantID:  "asst_a",
			UniversityID: "stanford",
			MajorID:      "cs",
		})
		gt.NoError(t, err).Required()

		time.Sleep(10 * time.Millisecond)

		_, _, err = repo.Assistant().CreateIfAbsent(ctx, &model.Assistant{
			AssistantID:  "asst_b",
			UniversityID: "stanford",
			MajorID:      "dh",
		})
		gt.NoError(t, err).Required()

		list, err := repo.Assistant().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.Value(t, list[0].AssistantID).Equal("asst_b")
		gt.Value(t, list[1].AssistantID).Equal("asst_a")
	})
}

func TestMemoryAssistantRepository(t *testing.T) {
	runAssistantRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreAssistantRepository(t *testing.T) {
	runAssistantRepositoryTest(t, newFirestoreRepository)
}
