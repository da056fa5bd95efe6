package config

import (
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Search is a flag group shared by repo, org and user commands. Names of some
// flags differ between single repository mode and account mode.
type Search struct {
	account bool

	configFile  string
	searchList  []string
	clonedPath  string
	resultsDir  string
	remove      bool
	printResult bool
	verbose     bool
}

func NewSearch(account bool) *Search {
	return &Search{account: account}
}

func (x *Search) Flags() []cli.Flag {
	clonedName, clonedEnv := "cloned-repo-dir", "SURCH_CLONED_REPO_DIR"
	removeAlias := "r"
	if x.account {
		clonedName, clonedEnv = "cloned-repos-path", "SURCH_CLONED_REPOS_PATH"
		removeAlias = "R"
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config-file",
			Aliases:     []string{"c"},
			Usage:       "YAML config file. Command line options are ignored if given",
			Sources:     cli.EnvVars("SURCH_CONFIG_FILE"),
			Destination: &x.configFile,
		},
		&cli.StringSliceFlag{
			Name:        "string",
			Aliases:     []string{"s"},
			Usage:       "String to search for (repeatable)",
			Destination: &x.searchList,
		},
		&cli.StringFlag{
			Name:        clonedName,
			Aliases:     []string{"p"},
			Usage:       "Directory to clone repositories into",
			Sources:     cli.EnvVars(clonedEnv),
			Value:       model.DefaultClonedPath,
			Destination: &x.clonedPath,
		},
		&cli.StringFlag{
			Name:        "log",
			Aliases:     []string{"l"},
			Usage:       "Directory to write results artifact into",
			Sources:     cli.EnvVars("SURCH_RESULTS_DIR"),
			Value:       model.DefaultResultsDir,
			Destination: &x.resultsDir,
		},
		&cli.BoolFlag{
			Name:        "remove",
			Aliases:     []string{removeAlias},
			Usage:       "Remove cloned repository after scan",
			Destination: &x.remove,
		},
		&cli.BoolFlag{
			Name:        "print-result",
			Usage:       "Print match records after the run",
			Destination: &x.printResult,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "Verbose output (debug log)",
			Destination: &x.verbose,
		},
	}
}

func (x *Search) ConfigFile() string { return x.configFile }

// Apply copies flag values into cfg
func (x *Search) Apply(cfg *model.Config) {
	cfg.SearchList = x.searchList
	cfg.ClonedReposPath = x.clonedPath
	cfg.ResultsDir = x.resultsDir
	cfg.RemoveClonedDir = x.remove
	cfg.PrintResult = x.printResult
	cfg.Verbose = x.verbose
}
