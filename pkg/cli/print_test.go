package cli_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/cli"
	"github.com/secmon-lab/surch/pkg/domain/model"
)

func TestPrintResults(t *testing.T) {
	color.NoColor = true

	t.Run("records", func(t *testing.T) {
		var buf bytes.Buffer
		cli.PrintResults(&buf, []*model.Match{
			{
				Repository:  "api",
				Commit:      "4b825dc642cb6eb9a060e54bf8d69288fbee4904",
				Author:      "blue",
				Email:       "blue@example.com",
				CommittedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Path:        "config.yaml",
				Line:        3,
				SearchTerm:  "AKIA",
			},
		})

		out := buf.String()
		gt.S(t, out).Contains("api config.yaml:3 AKIA")
		gt.S(t, out).Contains("commit 4b825dc642cb6eb9a060e54bf8d69288fbee4904 by blue <blue@example.com> at 2024-01-01T00:00:00Z")
		gt.S(t, out).Contains("1 match(es)")
	})

	t.Run("no record", func(t *testing.T) {
		var buf bytes.Buffer
		cli.PrintResults(&buf, nil)
		gt.Equal(t, buf.String(), "No match found\n")
	})
}
