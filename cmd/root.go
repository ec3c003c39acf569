package cmd

import "go.uber.org/zap"

type Context struct {
	Debug bool
}

var CLI struct {
	Debug bool `help:"Enable debug mode"`

	Serve   ServeCmd   `cmd:"" default:"1"                    help:"Run the server"`
	Migrate MigrateCmd `cmd:"" help:"Run database migrations"`
}

const defaultConfigFile = ".taproom.toml"

func newLogger(production bool, debug bool) *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	if production {
		logConfig = zap.NewProductionConfig()
	}

	logConfig.DisableStacktrace = !debug
	if debug {
		logConfig.Level.SetLevel(zap.DebugLevel)
	}

	logger, err := logConfig.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}
