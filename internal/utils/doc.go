// Package utils hosts the configuration and logging infrastructure of the CLI.
//
// ConfigurationLoader layers embedded defaults, files and FORKBRANCH_ environment
// variables through Viper, and LoggerFactory builds the zap loggers for a run.
package utils
