package sentryalert_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/sentryalert"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

func newSentryServer(t *testing.T) (*httptest.Server, func() []string) {
	var mutex sync.Mutex
	var bodies []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mutex.Lock()
		bodies = append(bodies, string(body))
		mutex.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []string {
		mutex.Lock()
		defer mutex.Unlock()
		return append([]string{}, bodies...)
	}
}

func dsn(srv *httptest.Server) string {
	return "http://public@" + strings.TrimPrefix(srv.URL, "http://") + "/1"
}

func TestNotify(t *testing.T) {
	_, ctx := logging.CtxRunID(context.Background())

	t.Run("send event when matches exist", func(t *testing.T) {
		srv, bodies := newSentryServer(t)
		client := gt.R1(sentryalert.New(&sentryalert.Config{
			DSN:         dsn(srv),
			Environment: "test",
		}, sentryalert.WithTransport(sentry.NewHTTPSyncTransport()))).NoError(t)

		path := filepath.Join(t.TempDir(), "acme.jsonl")
		gt.NoError(t, os.WriteFile(path, []byte(`{"repository":"api","search_term":"hunter2"}`+"\n"), 0o600))

		gt.NoError(t, client.Notify(ctx, path))
		sent := bodies()
		gt.A(t, sent).Length(1)
		gt.S(t, sent[0]).Contains("surch found 1 matches in 1 repositories")
		gt.S(t, sent[0]).NotContains("hunter2")
	})

	t.Run("no event for empty artifact", func(t *testing.T) {
		srv, bodies := newSentryServer(t)
		client := gt.R1(sentryalert.New(&sentryalert.Config{DSN: dsn(srv)},
			sentryalert.WithTransport(sentry.NewHTTPSyncTransport()),
		)).NoError(t)

		path := filepath.Join(t.TempDir(), "acme.jsonl")
		gt.NoError(t, os.WriteFile(path, nil, 0o600))

		gt.NoError(t, client.Notify(ctx, path))
		gt.A(t, bodies()).Length(0)
	})
}

func TestNew(t *testing.T) {
	_, err := sentryalert.New(&sentryalert.Config{})
	gt.True(t, errors.Is(err, types.ErrConfig))

	_, err = sentryalert.New(&sentryalert.Config{DSN: "http://public@127.0.0.1:9/1", Level: "loud"})
	gt.True(t, errors.Is(err, types.ErrConfig))

	_, err = sentryalert.New(&sentryalert.Config{DSN: "not a dsn"})
	gt.True(t, errors.Is(err, types.ErrConfig))
}
