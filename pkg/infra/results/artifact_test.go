package results_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/utils/safe"
)

func TestPrepare(t *testing.T) {
	t.Run("create parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "results", "acme.jsonl")
		artifact := gt.R1(results.Prepare(path)).NoError(t)
		defer safe.Close(artifact)

		gt.V(t, artifact.Path()).Equal(path)
		st := gt.R1(os.Stat(path)).NoError(t)
		gt.V(t, st.Size()).Equal(int64(0))
	})

	t.Run("truncate existing artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "acme.jsonl")
		gt.NoError(t, os.WriteFile(path, []byte(`{"repository":"old"}`+"\n"), 0o600))

		artifact := gt.R1(results.Prepare(path)).NoError(t)
		defer safe.Close(artifact)

		records := gt.R1(artifact.Records()).NoError(t)
		gt.A(t, records).Length(0)
	})
}

func TestAppend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "acme.jsonl")
	artifact := gt.R1(results.Prepare(path)).NoError(t)

	for _, repo := range []string{"api", "web", "infra"} {
		gt.NoError(t, artifact.Append(ctx, &model.Match{
			RunID:      "run-1",
			Repository: repo,
			Path:       "config.yaml",
			Line:       3,
			SearchTerm: "AKIA",
		}))
	}
	gt.V(t, artifact.Count()).Equal(3)
	gt.NoError(t, artifact.Close())

	records := gt.R1(results.ReadRecords(path)).NoError(t)
	gt.A(t, records).Length(3)
	gt.V(t, records[0].Repository).Equal("api")
	gt.V(t, records[1].Repository).Equal("web")
	gt.V(t, records[2].Repository).Equal("infra")
	gt.V(t, records[2].SearchTerm).Equal("AKIA")

	t.Run("append after close fails", func(t *testing.T) {
		gt.Error(t, artifact.Append(ctx, &model.Match{Repository: "late"}))
	})
}

func TestAppendConcurrently(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "acme.jsonl")
	artifact := gt.R1(results.Prepare(path)).NoError(t)
	defer safe.Close(artifact)

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				gt.NoError(t, artifact.Append(ctx, &model.Match{
					Repository: fmt.Sprintf("repo%d", w),
					Line:       i,
					SearchTerm: "hunter2",
				}))
			}
		}()
	}
	wg.Wait()

	// every line must be decodable, i.e. never interleaved
	records := gt.R1(artifact.Records()).NoError(t)
	gt.A(t, records).Length(workers * perWorker)

	perRepo := map[string]int{}
	for _, r := range records {
		perRepo[r.Repository]++
	}
	gt.V(t, len(perRepo)).Equal(workers)
	for _, n := range perRepo {
		gt.V(t, n).Equal(perWorker)
	}
}

func TestReadRecords(t *testing.T) {
	t.Run("broken line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.jsonl")
		gt.NoError(t, os.WriteFile(path, []byte(`{"repository":"api"}`+"\n{broken\n"), 0o600))
		_, err := results.ReadRecords(path)
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := results.ReadRecords(filepath.Join(t.TempDir(), "nothing.jsonl"))
		gt.Error(t, err)
	})

	t.Run("count records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "two.jsonl")
		gt.NoError(t, os.WriteFile(path, []byte(`{"repository":"api"}`+"\n\n"+`{"repository":"web"}`+"\n"), 0o600))
		gt.V(t, gt.R1(results.CountRecords(path)).NoError(t)).Equal(2)
	})
}
