package utils

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant         = "."
	environmentKeySeparatorNewConstant         = "_"
	configurationReadErrorTemplateConstant     = "failed to read configuration: %w"
	configurationDecodeErrorTemplateConstant   = "failed to decode configuration: %w"
	embeddedConfigurationErrorTemplateConstant = "failed to read embedded configuration: %w"
	configurationTargetMissingMessageConstant  = "configuration target not provided"
)

// ErrConfigurationTargetRequired indicates Load was called without a destination value.
var ErrConfigurationTargetRequired = errors.New(configurationTargetMissingMessageConstant)

// ConfigurationLoaderOptions describes where configuration is looked up.
type ConfigurationLoaderOptions struct {
	// Name is the configuration file name without extension searched in SearchPaths.
	Name              string
	Type              string
	EnvironmentPrefix string
	SearchPaths       []string
	// Embedded holds the built-in defaults, merged before any file or environment value.
	Embedded []byte
}

// ConfigurationLoader layers embedded defaults, an optional file and prefixed
// environment variables, in that order of increasing precedence.
type ConfigurationLoader struct {
	options ConfigurationLoaderOptions
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader for the provided options.
func NewConfigurationLoader(options ConfigurationLoaderOptions) *ConfigurationLoader {
	options.SearchPaths = append([]string(nil), options.SearchPaths...)
	options.Embedded = append([]byte(nil), options.Embedded...)
	return &ConfigurationLoader{options: options}
}

// Load decodes the layered configuration into target. An explicit configurationFilePath
// must exist; files found through the search paths are optional.
func (loader *ConfigurationLoader) Load(configurationFilePath string, target any) (LoadedConfiguration, error) {
	if target == nil {
		return LoadedConfiguration{}, ErrConfigurationTargetRequired
	}

	viperInstance := viper.New()
	viperInstance.SetConfigType(loader.options.Type)
	if len(loader.options.Embedded) > 0 {
		if readError := viperInstance.ReadConfig(bytes.NewReader(loader.options.Embedded)); readError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationErrorTemplateConstant, readError)
		}
	}

	viperInstance.SetEnvPrefix(loader.options.EnvironmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant))
	viperInstance.AutomaticEnv()

	if len(strings.TrimSpace(configurationFilePath)) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	} else {
		viperInstance.SetConfigName(loader.options.Name)
		for _, searchPath := range loader.options.SearchPaths {
			viperInstance.AddConfigPath(searchPath)
		}
	}

	if mergeError := viperInstance.MergeInConfig(); mergeError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(mergeError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, mergeError)
		}
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		trimStringsHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if decodeError := viperInstance.Unmarshal(target, decodeHook); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplateConstant, decodeError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

// trimStringsHookFunc strips surrounding whitespace from every string value, which
// environment variables and hand-edited files commonly carry.
func trimStringsHookFunc() mapstructure.DecodeHookFuncType {
	return func(sourceType reflect.Type, _ reflect.Type, data any) (any, error) {
		if sourceType.Kind() != reflect.String {
			return data, nil
		}
		stringValue, isString := data.(string)
		if !isString {
			return data, nil
		}
		return strings.TrimSpace(stringValue), nil
	}
}
