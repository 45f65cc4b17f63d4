package logger

import "go.uber.org/zap"

// L is the package level logger used across the application.
var L = zap.NewNop().Sugar()

// Set replaces the default logger with the provided one.
func Set(l *zap.SugaredLogger) {
	if l != nil {
		L = l
	}
}

// New builds the CLI logger writing to stderr: human readable debug
// output when verbose, JSON warnings and errors otherwise.
func New(verbose bool) (*zap.SugaredLogger, error) {
	var conf zap.Config
	if verbose {
		conf = zap.NewDevelopmentConfig()
	} else {
		conf = zap.NewProductionConfig()
		conf.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		conf.Sampling = nil
	}
	conf.OutputPaths = []string{"stderr"}
	conf.ErrorOutputPaths = []string{"stderr"}
	l, err := conf.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
