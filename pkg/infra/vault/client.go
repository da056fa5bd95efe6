package vault

import (
	"context"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	vaultapi "github.com/hashicorp/vault/api"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

// Config is `plugins.vault` section of config file
type Config struct {
	URL        string           `yaml:"url"`
	Token      types.VaultToken `yaml:"token"`
	SecretPath string           `yaml:"secret_path"`
	KeyFilter  []string         `yaml:"key_filter"`
}

func (x *Config) Validate() error {
	if x.URL == "" {
		return goerr.Wrap(types.ErrConfig, "vault url is required")
	}
	if x.Token == "" {
		return goerr.Wrap(types.ErrConfig, "vault token is required")
	}
	if strings.Trim(x.SecretPath, "/") == "" {
		return goerr.Wrap(types.ErrConfig, "vault secret_path is required")
	}
	for _, pattern := range x.KeyFilter {
		if !doublestar.ValidatePattern(pattern) {
			return goerr.Wrap(types.ErrConfig, "invalid vault key_filter pattern", goerr.V("pattern", pattern))
		}
	}
	return nil
}

// Client reads secrets under a KV path of Vault and provides their values as
// search terms.
type Client struct {
	api        *vaultapi.Client
	secretPath string
	keyFilter  []string
}

var _ interfaces.SearchTermSource = (*Client)(nil)

func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	apiCfg := vaultapi.DefaultConfig()
	apiCfg.Address = cfg.URL
	api, err := vaultapi.NewClient(apiCfg)
	if err != nil {
		return nil, goerr.Wrap(types.ErrConfig, "failed to create vault client",
			goerr.V("url", cfg.URL),
			goerr.V("error", err.Error()),
		)
	}
	api.SetToken(string(cfg.Token))

	return &Client{
		api:        api,
		secretPath: strings.Trim(cfg.SecretPath, "/"),
		keyFilter:  cfg.KeyFilter,
	}, nil
}

// SearchTerms lists secrets under the secret path and returns every string
// value of the secrets whose key name passes the key filter.
func (x *Client) SearchTerms(ctx context.Context) ([]string, error) {
	listed, err := x.api.Logical().ListWithContext(ctx, x.secretPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list vault secrets", goerr.V("path", x.secretPath))
	}
	if listed == nil || listed.Data == nil {
		logging.From(ctx).Warn("No secret found in vault", slog.String("path", x.secretPath))
		return nil, nil
	}

	keys, _ := listed.Data["keys"].([]any)

	var terms []string
	for _, k := range keys {
		key, ok := k.(string)
		if !ok || strings.HasSuffix(key, "/") {
			continue
		}

		matched, err := x.match(key)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		secretPath := path.Join(x.secretPath, key)
		secret, err := x.api.Logical().ReadWithContext(ctx, secretPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read vault secret", goerr.V("path", secretPath))
		}
		if secret == nil {
			continue
		}

		fields := make([]string, 0, len(secret.Data))
		for field := range secret.Data {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			if value, ok := secret.Data[field].(string); ok && value != "" {
				terms = append(terms, value)
			}
		}
	}

	logging.From(ctx).Debug("Read search terms from vault",
		slog.String("path", x.secretPath),
		slog.Int("terms", len(terms)),
	)

	return terms, nil
}

func (x *Client) match(key string) (bool, error) {
	if len(x.keyFilter) == 0 {
		return true, nil
	}
	for _, pattern := range x.keyFilter {
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return false, goerr.Wrap(err, "failed to match vault key filter", goerr.V("pattern", pattern))
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
