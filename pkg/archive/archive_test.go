package archive_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/clock/timecop"
	"go.llib.dev/testcase/random"

	"go.llib.dev/seqgen/pkg/archive"
	"go.llib.dev/seqgen/pkg/seqkit"
)

func TestArchive(t *testing.T) {
	s := testcase.NewSpec(t)

	subject := testcase.Let(s, func(t *testcase.T) *archive.Archive {
		a, err := archive.Open(filepath.Join(t.TempDir(), "seqgen.db"), archive.WithTimeout(time.Second))
		assert.Must(t).NoError(err)
		t.Defer(a.Close)
		return a
	})
	sequences := testcase.Let(s, func(t *testcase.T) [][]string {
		return random.Slice(t.Random.IntBetween(1, 20), func() []string {
			return random.Slice(t.Random.IntBetween(1, 5), func() string {
				return t.Random.StringNWithCharset(4, "abcdefgh")
			})
		})
	})
	ctx := context.Background()

	s.Describe("Record", func(s *testcase.Spec) {
		var (
			name  = testcase.Let(s, func(t *testcase.T) string { return t.Random.StringNWithCharset(8, "abcdef") })
			limit = testcase.LetValue(s, 0)
		)
		act := func(t *testcase.T) (archive.RunID, int, error) {
			return subject.Get(t).Record(ctx, name.Get(t), seqkit.FromSlice(sequences.Get(t)), limit.Get(t))
		}

		s.Then("every sequence can be read back in order", func(t *testcase.T) {
			id, n, err := act(t)
			assert.Must(t).NoError(err)
			assert.Must(t).Equal(len(sequences.Get(t)), n)

			got, err := subject.Get(t).Sequences(ctx, id)
			assert.Must(t).NoError(err)
			assert.Must(t).Equal(sequences.Get(t), got)
		})

		s.Then("the run metadata is stored", func(t *testcase.T) {
			now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			timecop.Travel(t, now, timecop.Freeze)

			id, n, err := act(t)
			assert.Must(t).NoError(err)

			run, err := subject.Get(t).Run(ctx, id)
			assert.Must(t).NoError(err)
			assert.Must(t).Equal(id, run.ID)
			assert.Must(t).Equal(name.Get(t), run.Name)
			assert.Must(t).Equal(n, run.Count)
			assert.Must(t).True(now.Equal(run.CreatedAt))
		})

		s.When("a limit is given", func(s *testcase.Spec) {
			limit.Let(s, func(t *testcase.T) int {
				return t.Random.IntBetween(1, len(sequences.Get(t)))
			})

			s.Then("only that many sequences are stored", func(t *testcase.T) {
				id, n, err := act(t)
				assert.Must(t).NoError(err)
				assert.Must(t).Equal(limit.Get(t), n)

				got, err := subject.Get(t).Sequences(ctx, id)
				assert.Must(t).NoError(err)
				assert.Must(t).Equal(sequences.Get(t)[:limit.Get(t)], got)
			})
		})

		s.When("the iterator never ends", func(s *testcase.Spec) {
			limit.LetValue(s, 3)

			s.Then("the limit stops the recording", func(t *testcase.T) {
				_, n, err := subject.Get(t).Record(ctx, "loop", seqkit.Repeat([]string{"nop"}), limit.Get(t))
				assert.Must(t).NoError(err)
				assert.Must(t).Equal(3, n)
			})
		})

		s.When("the context is cancelled", func(s *testcase.Spec) {
			s.Then("nothing is recorded", func(t *testcase.T) {
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				_, _, err := subject.Get(t).Record(cctx, name.Get(t), seqkit.FromSlice(sequences.Get(t)), 0)
				assert.Must(t).ErrorIs(err, context.Canceled)

				runs, err := subject.Get(t).Runs(ctx)
				assert.Must(t).NoError(err)
				assert.Must(t).Empty(runs)
			})
		})
	})

	s.Describe("Runs", func(s *testcase.Spec) {
		s.Then("runs are listed oldest first", func(t *testcase.T) {
			start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			var ids []archive.RunID
			for i := 0; i < 3; i++ {
				timecop.Travel(t, start.Add(time.Duration(3-i)*time.Hour), timecop.Freeze)
				id, _, err := subject.Get(t).Record(ctx, "run", seqkit.FromSlice(sequences.Get(t)), 0)
				assert.Must(t).NoError(err)
				ids = append(ids, id)
			}

			runs, err := subject.Get(t).Runs(ctx)
			assert.Must(t).NoError(err)
			assert.Must(t).Equal(3, len(runs))
			assert.Must(t).Equal(ids[2], runs[0].ID)
			assert.Must(t).Equal(ids[1], runs[1].ID)
			assert.Must(t).Equal(ids[0], runs[2].ID)
		})

		s.Then("an empty archive has no runs", func(t *testcase.T) {
			runs, err := subject.Get(t).Runs(ctx)
			assert.Must(t).NoError(err)
			assert.Must(t).Empty(runs)
		})
	})

	s.Describe("Sequences", func(s *testcase.Spec) {
		s.Then("an unknown run is not found", func(t *testcase.T) {
			_, err := subject.Get(t).Sequences(ctx, archive.NewRunID())
			assert.Must(t).ErrorIs(err, archive.ErrRunNotFound)

			_, err = subject.Get(t).Run(ctx, archive.NewRunID())
			assert.Must(t).ErrorIs(err, archive.ErrRunNotFound)
		})
	})

	s.Test("the archive survives reopening", func(t *testcase.T) {
		path := filepath.Join(t.TempDir(), "seqgen.db")
		a, err := archive.Open(path)
		assert.Must(t).NoError(err)
		id, _, err := a.Record(ctx, "persisted", seqkit.FromSlice(sequences.Get(t)), 0)
		assert.Must(t).NoError(err)
		assert.Must(t).NoError(a.Close())

		a, err = archive.Open(path)
		assert.Must(t).NoError(err)
		defer a.Close()
		got, err := a.Sequences(ctx, id)
		assert.Must(t).NoError(err)
		assert.Must(t).Equal(sequences.Get(t), got)
	})
}

func TestParseRunID(t *testing.T) {
	id := archive.NewRunID()
	got, err := archive.ParseRunID(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = archive.ParseRunID("not-a-uuid")
	assert.ErrorIs(t, err, archive.ErrInvalidRunID)
}
