package constants

const (
	Version        = `0.1.0`
	AppName        = `markedit`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.markedit/`
	DatabaseFile   = `docs.db`
	LogFile        = `debug.log`
	EnvPrefix      = `MARKEDIT`
)
