package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "cart"
	envPrefix  = "cart"
)

/*
loadConfig sets the value of every flag of the command that was not given on
the command line from the configuration, if available there. The configuration
is made of CART_* environment variables (CART_MAX_DEPTH for --max-depth) and,
with less priority, the YAML file at configFile or ./cart.yaml if configFile is
empty. Configuration keys are flag names.
*/
func loadConfig(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}
	err := v.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configFile != "" {
			return errors.Wrap(err, "reading configuration")
		}
		err = nil
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		err = errors.Wrapf(cmd.Flags().Set(f.Name, v.GetString(f.Name)), "setting %s from configuration", f.Name)
	})
	return err
}
