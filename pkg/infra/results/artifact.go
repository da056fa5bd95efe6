package results

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/utils/safe"
)

// Artifact is a JSON Lines file of match records shared by all scans of a run
type Artifact struct {
	path  string
	mutex sync.Mutex
	fd    *os.File
	count int
}

var _ interfaces.ResultWriter = (*Artifact)(nil)

// Prepare creates parent directory of path if absent and creates or truncates
// the artifact file.
func Prepare(path string) (*Artifact, error) {
	if err := safe.MkdirAll(filepath.Dir(path)); err != nil {
		return nil, goerr.Wrap(err, "failed to create results directory")
	}

	fd, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create results artifact", goerr.V("path", path))
	}

	return &Artifact{path: path, fd: fd}, nil
}

func (x *Artifact) Path() string {
	return x.path
}

// Append writes a record as one line with a single write call and syncs it
func (x *Artifact) Append(ctx context.Context, match *model.Match) error {
	raw, err := json.Marshal(match)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal match record", goerr.V("repository", match.Repository))
	}
	raw = append(raw, '\n')

	x.mutex.Lock()
	defer x.mutex.Unlock()

	if x.fd == nil {
		return goerr.New("results artifact is already closed", goerr.V("path", x.path))
	}
	if _, err := x.fd.Write(raw); err != nil {
		return goerr.Wrap(err, "failed to write match record", goerr.V("path", x.path))
	}
	if err := x.fd.Sync(); err != nil {
		return goerr.Wrap(err, "failed to sync results artifact", goerr.V("path", x.path))
	}
	x.count++

	return nil
}

// Count returns number of records appended through this artifact
func (x *Artifact) Count() int {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	return x.count
}

func (x *Artifact) Close() error {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if x.fd == nil {
		return nil
	}
	fd := x.fd
	x.fd = nil
	if err := fd.Close(); err != nil {
		return goerr.Wrap(err, "failed to close results artifact", goerr.V("path", x.path))
	}
	return nil
}

// Records reads back all records of the artifact
func (x *Artifact) Records() ([]*model.Match, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	return ReadRecords(x.path)
}

// ReadRecords reads match records from a JSON Lines artifact
func ReadRecords(path string) ([]*model.Match, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open results artifact", goerr.V("path", path))
	}
	defer safe.Close(fd)

	var records []*model.Match
	scanner := bufio.NewScanner(fd)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var match model.Match
		if err := json.Unmarshal(scanner.Bytes(), &match); err != nil {
			return nil, goerr.Wrap(err, "broken record in results artifact",
				goerr.V("path", path),
				goerr.V("line", line),
			)
		}
		records = append(records, &match)
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read results artifact", goerr.V("path", path))
	}

	return records, nil
}

// CountRecords returns number of records in the artifact without keeping them
func CountRecords(path string) (int, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
