// Package validator checks release-bundle layouts before they are activated:
// file and directory presence, nested directory schemes, content shape and
// checksums.
package validator

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

// PathValidator validates a filesystem path.
type PathValidator interface {
	Validate(path string) error
}

// ContentValidator validates the content of an existing file.
type ContentValidator func(path string) error

// FileValidator validates a single file: presence (when required), that the
// path is a regular file, and optionally its content.
type FileValidator struct {
	// Required makes validation fail when the file does not exist.
	Required bool

	// Content, when set, is applied to an existing file.
	Content ContentValidator
}

// Validate implements PathValidator.
func (v FileValidator) Validate(path string) error {
	slog.Debug("validating file", "path", path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if v.Required {
			return prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
				"file %q should exist", path)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
			"%q is not a regular file", path)
	}

	if v.Content != nil {
		return v.Content(path)
	}
	return nil
}

// DirValidator validates a directory and, optionally, a nested scheme of
// entries inside it. Scheme keys are paths relative to the directory.
type DirValidator struct {
	Required bool
	Scheme   map[string]PathValidator
}

// Validate implements PathValidator.
func (v DirValidator) Validate(path string) error {
	slog.Debug("validating directory", "path", path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if v.Required {
			return prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
				"directory %q should exist", path)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if !info.IsDir() {
		return prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
			"%q is not a directory", path)
	}

	for rel, sub := range v.Scheme {
		if err := sub.Validate(filepath.Join(path, rel)); err != nil {
			return err
		}
	}
	return nil
}

// YAMLContent returns a ContentValidator that requires the file to parse as
// YAML.
func YAMLContent() ContentValidator {
	return func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", path, err)
		}
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return prvsnrerrors.Wrap(prvsnrerrors.ErrCodeValidation,
				fmt.Sprintf("%q is not valid YAML", path), err)
		}
		return nil
	}
}

// HashSumValidator verifies a file's checksum against an expected hex digest.
// The comparison is constant-time.
type HashSumValidator struct {
	Type     config.HashType
	Expected string
}

// Validate implements PathValidator.
func (v HashSumValidator) Validate(path string) error {
	var h hash.Hash
	switch v.Type {
	case config.HashTypeMD5:
		h = md5.New()
	case config.HashTypeSHA256:
		h = sha256.New()
	case config.HashTypeSHA512:
		h = sha512.New()
	default:
		return prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
			"unknown hash type %q", v.Type)
	}

	expected, err := hex.DecodeString(v.Expected)
	if err != nil {
		return prvsnrerrors.Wrap(prvsnrerrors.ErrCodeValidation,
			fmt.Sprintf("expected %s digest is not valid hex", v.Type), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash %q: %w", path, err)
	}

	actual := h.Sum(nil)
	if len(actual) != len(expected) || subtle.ConstantTimeCompare(actual, expected) != 1 {
		return prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
			"%s checksum mismatch for %q: expected %s, got %s",
			v.Type, path, v.Expected, hex.EncodeToString(actual))
	}
	return nil
}

// ReleaseBundleScheme is the validation scheme for a mounted release bundle.
func ReleaseBundleScheme() DirValidator {
	return DirValidator{
		Required: true,
		Scheme: map[string]PathValidator{
			config.ReleaseInfoFile: FileValidator{Required: true, Content: YAMLContent()},
		},
	}
}
