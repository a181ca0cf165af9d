package config

// Populated at build time with -ldflags "-X github.com/nxtrace/qsieve/config.Version=..."
var (
	Version   = "v0.0.0.alpha"
	BuildDate = ""
	CommitID  = ""
)

const configName = "qs_config"
