package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SakibAhmedShuva/dirmap/internal/cli"
)

const (
	// loggerInitializationFailedFormat reports a failure to build the logger.
	loggerInitializationFailedFormat = "failed to initialize logger: %w"
	// executionFailedMessagePrefix prefixes the fatal message for command failures.
	executionFailedMessagePrefix = "dirmap execution failed: "
)

// newConsoleLogger builds the zap logger used for fatal command failures:
// bare console messages without timestamps, caller sites, or stack traces.
func newConsoleLogger() (*zap.Logger, error) {
	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.Encoding = "console"
	loggerConfiguration.DisableCaller = true
	loggerConfiguration.DisableStacktrace = true
	loggerConfiguration.EncoderConfig = zapcore.EncoderConfig{
		MessageKey:  "message",
		LineEnding:  zapcore.DefaultLineEnding,
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	return loggerConfiguration.Build()
}

// main is the entry point for the dirmap command.
func main() {
	loggerInstance, loggerInitializationError := newConsoleLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(loggerInitializationFailedFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(executionFailedMessagePrefix + applicationExecutionError.Error())
	}
}
