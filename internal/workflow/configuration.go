package workflow

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	mapstructureTagNameConstant         = "mapstructure"
	tagOptionSeparatorConstant          = ","
	ignoredTagValueConstant             = "-"
	validationRequiredTagConstant       = "required"
	validationOneOfTagConstant          = "oneof"
	validationURLTagConstant            = "url"
	requiredProblemTemplateConstant     = "%s is required"
	oneOfProblemTemplateConstant        = "%s must be one of: %s"
	urlProblemTemplateConstant          = "%s must be a valid URL"
	genericProblemTemplateConstant      = "%s failed %s validation"
	oneOfParameterSeparatorConstant     = " "
	oneOfParameterListSeparatorConstant = ", "
	defaultHostConstant                 = "github.com"
	defaultAPIHostConstant              = "api.github.com"
	defaultUpstreamOwnerConstant        = "temirov"
	defaultOriginRemoteConstant         = "origin"
	defaultPrimaryBranchConstant        = "master"
	defaultSetupScriptConstant          = "scripts/post-clone-setup.sh"
	defaultHTTPClientConstant           = "curl"
	defaultDocumentationURLConstant     = "https://docs.github.com/en/pull-requests/collaborating-with-pull-requests/working-with-forks/syncing-a-fork"
)

// Configuration captures the fork workflow settings loaded from the fork section.
type Configuration struct {
	Host             string `mapstructure:"host" validate:"required"`
	APIHost          string `mapstructure:"api_host" validate:"required"`
	UpstreamOwner    string `mapstructure:"upstream_owner" validate:"required"`
	UpstreamRemote   string `mapstructure:"upstream_remote"`
	OriginRemote     string `mapstructure:"origin_remote" validate:"required"`
	PrimaryBranch    string `mapstructure:"primary_branch" validate:"required"`
	SetupScript      string `mapstructure:"setup_script"`
	HTTPClient       string `mapstructure:"http_client" validate:"required"`
	DocumentationURL string `mapstructure:"documentation_url" validate:"omitempty,url"`
}

// DefaultConfiguration returns the built-in settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		Host:             defaultHostConstant,
		APIHost:          defaultAPIHostConstant,
		UpstreamOwner:    defaultUpstreamOwnerConstant,
		OriginRemote:     defaultOriginRemoteConstant,
		PrimaryBranch:    defaultPrimaryBranchConstant,
		SetupScript:      defaultSetupScriptConstant,
		HTTPClient:       defaultHTTPClientConstant,
		DocumentationURL: defaultDocumentationURLConstant,
	}
}

// Sanitize trims every value and names the upstream remote after the upstream owner
// when no explicit remote name is configured.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := Configuration{
		Host:             strings.TrimSpace(configuration.Host),
		APIHost:          strings.TrimSpace(configuration.APIHost),
		UpstreamOwner:    strings.TrimSpace(configuration.UpstreamOwner),
		UpstreamRemote:   strings.TrimSpace(configuration.UpstreamRemote),
		OriginRemote:     strings.TrimSpace(configuration.OriginRemote),
		PrimaryBranch:    strings.TrimSpace(configuration.PrimaryBranch),
		SetupScript:      strings.TrimSpace(configuration.SetupScript),
		HTTPClient:       strings.TrimSpace(configuration.HTTPClient),
		DocumentationURL: strings.TrimSpace(configuration.DocumentationURL),
	}
	if len(sanitized.UpstreamRemote) == 0 {
		sanitized.UpstreamRemote = sanitized.UpstreamOwner
	}
	return sanitized
}

// Validate reports every invalid setting as a ConfigurationError.
func (configuration Configuration) Validate() error {
	if validationError := structValidator.Struct(configuration); validationError != nil {
		return ConfigurationError{Problems: describeValidationProblems(validationError)}
	}
	return nil
}

var structValidator = newStructValidator()

// newStructValidator reports fields by their mapstructure names so problems match the
// keys users write in configuration files.
func newStructValidator() *validator.Validate {
	structValidator := validator.New(validator.WithRequiredStructEnabled())
	structValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
		tagName := strings.SplitN(field.Tag.Get(mapstructureTagNameConstant), tagOptionSeparatorConstant, 2)[0]
		switch tagName {
		case ignoredTagValueConstant:
			return ""
		case "":
			return field.Name
		default:
			return tagName
		}
	})
	return structValidator
}

func describeValidationProblems(validationError error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(validationError, &fieldErrors) {
		return []string{validationError.Error()}
	}
	return lo.Map(fieldErrors, func(fieldError validator.FieldError, _ int) string {
		switch fieldError.Tag() {
		case validationRequiredTagConstant:
			return fmt.Sprintf(requiredProblemTemplateConstant, fieldError.Field())
		case validationOneOfTagConstant:
			allowedValues := strings.ReplaceAll(fieldError.Param(), oneOfParameterSeparatorConstant, oneOfParameterListSeparatorConstant)
			return fmt.Sprintf(oneOfProblemTemplateConstant, fieldError.Field(), allowedValues)
		case validationURLTagConstant:
			return fmt.Sprintf(urlProblemTemplateConstant, fieldError.Field())
		default:
			return fmt.Sprintf(genericProblemTemplateConstant, fieldError.Field(), fieldError.Tag())
		}
	})
}
