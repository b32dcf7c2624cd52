package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/forkbranch/internal/utils"
)

const (
	testLoggerFactoryCaseSupportedFormatConstant   = "supported_log_level_%s_format_%s"
	testLoggerFactoryCaseUnsupportedLevelConstant  = "unsupported_log_level"
	testLoggerFactoryCaseUnsupportedFormatConstant = "unsupported_log_format"
	testLoggerFactorySubtestTemplateConstant       = "%d_%s"
	testInvalidLogLevelConstant                    = "verbose"
	testInvalidLogFormatConstant                   = "xml"
	testLogMessageConstant                         = "logger_factory_test_message"
	testRunIdentifierFieldConstant                 = "run_id"
	testRunIdentifierValueConstant                 = "0b6f3c1e-run"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectError         bool
		expectStructuredLog bool
	}{
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatConsole,
			expectStructuredLog: false,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, "INFO", "Structured"),
			requestedLogLevel:   utils.LogLevel(" INFO "),
			requestedLogFormat:  utils.LogFormat("Structured"),
			expectStructuredLog: true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedLevelConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedFormatConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			loggerFactory := utils.NewLoggerFactory(outputBuffer)

			logger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}

			require.NoError(testInstance, creationError)
			logger.Info(testLogMessageConstant)
			require.NoError(testInstance, utils.SyncLogger(logger))

			trimmedOutput := bytes.TrimSpace(outputBuffer.Bytes())
			require.Contains(testInstance, string(trimmedOutput), testLogMessageConstant)
			require.Equal(testInstance, testCase.expectStructuredLog, json.Valid(trimmedOutput))
		})
	}
}

func TestLoggerFactoryRespectsLevel(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	logger, creationError := utils.NewLoggerFactory(outputBuffer).CreateLogger(utils.LogLevelWarn, utils.LogFormatConsole)
	require.NoError(testInstance, creationError)

	logger.Info(testLogMessageConstant)
	require.Empty(testInstance, outputBuffer.String())

	logger.Warn(testLogMessageConstant)
	require.Contains(testInstance, outputBuffer.String(), testLogMessageConstant)
}

func TestLoggerFactoryCreateLoggerOutputs(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		requestedLogLevel     utils.LogLevel
		requestedLogFormat    utils.LogFormat
		expectedHumanReadable bool
	}{
		{name: "console_info", requestedLogLevel: utils.LogLevelInfo, requestedLogFormat: utils.LogFormatConsole, expectedHumanReadable: true},
		{name: "console_debug", requestedLogLevel: utils.LogLevelDebug, requestedLogFormat: utils.LogFormatConsole, expectedHumanReadable: true},
		{name: "console_warn", requestedLogLevel: utils.LogLevelWarn, requestedLogFormat: utils.LogFormatConsole, expectedHumanReadable: false},
		{name: "structured_info", requestedLogLevel: utils.LogLevelInfo, requestedLogFormat: utils.LogFormatStructured, expectedHumanReadable: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			outputs, creationError := utils.NewLoggerFactory(outputBuffer).CreateLoggerOutputs(
				testCase.requestedLogLevel,
				testCase.requestedLogFormat,
				zap.String(testRunIdentifierFieldConstant, testRunIdentifierValueConstant),
			)
			require.NoError(testInstance, creationError)
			require.Equal(testInstance, testCase.expectedHumanReadable, outputs.HumanReadable)

			outputs.ConsoleLogger.Info(testLogMessageConstant)
			if testCase.expectedHumanReadable {
				require.Equal(testInstance, testLogMessageConstant+"\n", outputBuffer.String())
			} else {
				require.Empty(testInstance, outputBuffer.String())
			}

			outputBuffer.Reset()
			outputs.DiagnosticLogger.Error(testLogMessageConstant)
			require.True(testInstance, strings.Contains(outputBuffer.String(), testRunIdentifierValueConstant))
		})
	}
}
