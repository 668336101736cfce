package config

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^v?\d+\.\d+\.\d+(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	sshGitPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
	sourceKinds   = map[string]struct{}{SourceZip: {}, SourceGit: {}, SourceDir: {}}
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("source_kind", func(fl validator.FieldLevel) bool {
			_, ok := sourceKinds[fl.Field().String()]
			return ok
		})

		// A segment is a single path component, so layout names never smuggle
		// separators into the archive classification.
		_ = v.RegisterValidation("segment", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value != "" && value != "." && value != ".." && !strings.ContainsAny(value, `/\`)
		})

		_ = v.RegisterValidation("git_url", func(fl validator.FieldLevel) bool {
			urlStr := fl.Field().String()
			if strings.TrimSpace(urlStr) == "" {
				return false
			}
			if parsedURL, err := url.Parse(urlStr); err == nil {
				scheme := strings.ToLower(parsedURL.Scheme)
				if (scheme == "http" || scheme == "https" || scheme == "ssh" || scheme == "file") && (parsedURL.Host != "" || scheme == "file") {
					return true
				}
			}
			return sshGitPattern.MatchString(urlStr)
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return apperrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	switch cfg.Source.Kind {
	case SourceZip:
		if cfg.Source.ArchiveURL == "" {
			return apperrors.NewValidationError("source.archive_url", "required when source.kind is zip", nil)
		}
	case SourceGit:
		if cfg.Source.RepoURL == "" {
			return apperrors.NewValidationError("source.repo_url", "required when source.kind is git", nil)
		}
	case SourceDir:
		if strings.TrimSpace(cfg.Source.Dir) == "" {
			return apperrors.NewValidationError("source.dir", "required when source.kind is dir", nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return apperrors.NewValidationError(field, msg, err)
	}

	return apperrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName drops the root struct name from the namespace.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
