package config

import (
	"fmt"

	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "config"

// NewUnknownKeyError reports a key that is not part of the configuration.
func NewUnknownKeyError(key string) error {
	return err.New(pkgName, err.CodeInvalidInput, "lookup", fmt.Sprintf("unknown key %q", key), nil).
		WithContext("key", key)
}

// NewInvalidValueError reports a value a key does not accept.
func NewInvalidValueError(key, value string, cause error) error {
	return err.New(pkgName, err.CodeValidation, "set", fmt.Sprintf("invalid value %q for %s", value, key), cause).
		WithContext("key", key)
}

// NewReadOnlyKeyError reports a key that is fixed when the repository is created.
func NewReadOnlyKeyError(key string) error {
	return err.New(pkgName, err.CodeInvalidInput, "set", fmt.Sprintf("%s cannot be changed after init", key), nil)
}

// NewLoadError wraps a failure to read or decode the config file.
func NewLoadError(path string, cause error) error {
	return err.New(pkgName, err.CodeInvalidFormat, "load", "cannot load "+path, cause).
		WithContext("path", path)
}

// NewValidationError wraps every problem found in a loaded configuration.
func NewValidationError(cause error) error {
	return err.New(pkgName, err.CodeValidation, "validate", "invalid configuration", cause)
}
