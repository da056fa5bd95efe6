package types

import "log/slog"

type PluginID string

const (
	PluginVault     PluginID = "vault"
	PluginPagerDuty PluginID = "pagerduty"
	PluginSentry    PluginID = "sentry"
	PluginBigQuery  PluginID = "bigquery"
	PluginGCS       PluginID = "gcs"
	PluginFirestore PluginID = "firestore"
)

// PluginRole is the capability a plugin is declared with.
type PluginRole string

const (
	// PluginSource contributes search terms
	PluginSource PluginRole = "source"
	// PluginSink consumes the results artifact
	PluginSink PluginRole = "sink"
)

type (
	VaultToken          string
	PagerDutyRoutingKey string
)

func (x VaultToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x VaultToken) String() string {
	return "***********"
}

func (x PagerDutyRoutingKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x PagerDutyRoutingKey) String() string {
	return "***********"
}
