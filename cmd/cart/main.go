package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	logFile    string
	logger     *zap.SugaredLogger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// exitError is returned by commands failing with a specific exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCode returns the code the process should exit with after a command
// returned err.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func main() {
	err := cliParser().Execute()
	var ee *exitError
	if err != nil && !errors.As(err, &ee) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "cart",
		Short: "cart is a tool to grow classification trees",
		Long:  `A tool to grow binary classification trees from your data with CART and Gini impurity, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := loadConfig(cmd, config.configFile)
			if err != nil {
				return err
			}
			config.logger, err = newLogger(config.verbose, config.logFile)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug information, including every node developed while growing a tree")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML configuration file providing defaults for any flag (defaults to ./cart.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to which logs are also written, rotated daily")
	rootCmd.AddCommand(versionCmd(), treeCmd(config), setCmd(config))
	return rootCmd
}

// Logger returns the logger for the command, a no-op one
// before flags and configuration have been loaded.
func (rcc *rootCmdConfig) Logger() *zap.SugaredLogger {
	if rcc.logger == nil {
		return zap.NewNop().Sugar()
	}
	return rcc.logger
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
}

// Close releases the context and flushes the logger.
func (rcc *rootCmdConfig) Close() {
	if rcc.cancelFunc != nil {
		rcc.cancelFunc()
	}
	if rcc.logger != nil {
		_ = rcc.logger.Sync()
	}
}

// exit logs the error, releases the resources of the command and returns
// an error for the process to exit with the given code.
func (rcc *rootCmdConfig) exit(code int, err error) error {
	rcc.Logger().Error(err)
	rcc.Close()
	return &exitError{code: code, err: err}
}
