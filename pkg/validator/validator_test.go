package validator

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

func TestFileValidator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "RELEASE.INFO")
	require.NoError(t, os.WriteFile(path, []byte("VERSION: 2.0.0\n"), 0o644))

	t.Run("existing file passes", func(t *testing.T) {
		assert.NoError(t, FileValidator{Required: true}.Validate(path))
	})

	t.Run("missing optional file passes", func(t *testing.T) {
		assert.NoError(t, FileValidator{}.Validate(filepath.Join(dir, "absent")))
	})

	t.Run("missing required file fails", func(t *testing.T) {
		err := FileValidator{Required: true}.Validate(filepath.Join(dir, "absent"))
		require.Error(t, err)
		assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeValidation))
		assert.Contains(t, err.Error(), "should exist")
	})

	t.Run("directory is not a regular file", func(t *testing.T) {
		err := FileValidator{Required: true}.Validate(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a regular file")
	})

	t.Run("content validator runs", func(t *testing.T) {
		assert.NoError(t, FileValidator{Required: true, Content: YAMLContent()}.Validate(path))

		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte(": not yaml"), 0o644))
		err := FileValidator{Required: true, Content: YAMLContent()}.Validate(bad)
		require.Error(t, err)
		assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeValidation))
	})
}

func TestDirValidator_Scheme(t *testing.T) {
	bundle := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(bundle, "iso"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(bundle, "RELEASE.INFO"), []byte("VERSION: 2.0.0\n"), 0o644))

	v := DirValidator{
		Required: true,
		Scheme: map[string]PathValidator{
			"RELEASE.INFO": FileValidator{Required: true, Content: YAMLContent()},
			"iso":          DirValidator{Required: true},
		},
	}
	assert.NoError(t, v.Validate(bundle))

	v.Scheme["missing.file"] = FileValidator{Required: true}
	err := v.Validate(bundle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.file")
}

func TestDirValidator_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	assert.NoError(t, DirValidator{}.Validate(missing))

	err := DirValidator{Required: true}.Validate(missing)
	require.Error(t, err)
	assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeValidation))
}

func TestHashSumValidator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.iso")
	content := []byte("release bundle payload")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sum := sha256.Sum256(content)
	good := hex.EncodeToString(sum[:])

	t.Run("matching digest passes", func(t *testing.T) {
		v := HashSumValidator{Type: config.HashTypeSHA256, Expected: good}
		assert.NoError(t, v.Validate(path))
	})

	t.Run("mismatched digest fails", func(t *testing.T) {
		other := sha256.Sum256([]byte("tampered"))
		v := HashSumValidator{Type: config.HashTypeSHA256, Expected: hex.EncodeToString(other[:])}
		err := v.Validate(path)
		require.Error(t, err)
		assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeValidation))
		assert.Contains(t, err.Error(), "checksum mismatch")
	})

	t.Run("bad hex fails", func(t *testing.T) {
		v := HashSumValidator{Type: config.HashTypeSHA256, Expected: "zz"}
		assert.Error(t, v.Validate(path))
	})

	t.Run("unknown hash type fails", func(t *testing.T) {
		v := HashSumValidator{Type: config.HashType("crc32"), Expected: good}
		assert.Error(t, v.Validate(path))
	})
}

func TestReleaseBundleScheme(t *testing.T) {
	bundle := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(bundle, config.ReleaseInfoFile), []byte("VERSION: 2.0.0\n"), 0o644))

	assert.NoError(t, ReleaseBundleScheme().Validate(bundle))

	empty := t.TempDir()
	err := ReleaseBundleScheme().Validate(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ReleaseInfoFile)
}
