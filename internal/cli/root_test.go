package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"passgen/strength"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultCharset = "123456789abcdefghijklmnopqrstuvwxyz!?#ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitsCharset  = "123456789"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func assertFromSet(t *testing.T, password, charset string) {
	t.Helper()
	for _, r := range password {
		if !strings.ContainsRune(charset, r) {
			t.Errorf("password %q contains %q outside %q", password, r, charset)
			return
		}
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"foo", "foo is very weak\n"},
		{"Foo", "Foo is weak\n"},
		{"Foo1", "Foo1 is medium\n"},
		{"Foo1!", "Foo1! is strong\n"},
		{"Foo1!Bar2?96", "Foo1!Bar2?96 is very strong\n"},
	}

	for _, tc := range tests {
		t.Run(tc.password, func(t *testing.T) {
			out, _, err := execute(t, tc.password)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestCheckEmptyPassword(t *testing.T) {
	out, _, err := execute(t, "")
	require.NoError(t, err)
	assert.Equal(t, " is "+strength.VeryWeak.String()+"\n", out)
}

func TestGenerateDefault(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 1)
	assert.Len(t, got[0], 16)
	assertFromSet(t, got[0], defaultCharset)
}

func TestGenerateWithToggles(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantLen int
		charset string
	}{
		{"digits_default_length", []string{"-d"}, 16, digitsCharset},
		{"digits_length_8", []string{"-d", "-e", "8"}, 8, digitsCharset},
		{"long_flags", []string{"--lowercase", "--uppercase", "--length", "20"}, 20, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{"special_only", []string{"-s", "-e", "12"}, 12, "!?#"},
		{"all_classes", []string{"-d", "-l", "-s", "-u", "-e", "255"}, 255, defaultCharset},
		{"zero_length", []string{"-d", "-e", "0"}, 0, digitsCharset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := execute(t, tc.args...)
			require.NoError(t, err)
			require.True(t, strings.HasSuffix(out, "\n"))
			pw := strings.TrimSuffix(out, "\n")
			assert.Len(t, pw, tc.wantLen)
			assertFromSet(t, pw, tc.charset)
		})
	}
}

// A length flag alone selects no classes.
func TestGenerateLengthOnlyFails(t *testing.T) {
	out, _, err := execute(t, "-e", "8")
	require.NoError(t, err)
	assert.Equal(t, "Failed to generate password\n", out)
}

func TestGenerateInvalidLength(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "256", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			out, _, err := execute(t, "-d", "--length="+raw)
			require.NoError(t, err)
			assert.Equal(t, "Length should be a positive number, instead got "+raw+"\n", out)
		})
	}
}

func TestPasswordConflictsWithGenerationFlags(t *testing.T) {
	for _, flag := range []string{"-d", "-l", "-s", "-u", "--length=8", "--count=2", "--seed=7"} {
		t.Run(flag, func(t *testing.T) {
			out, stderr, err := execute(t, "Foo1!", flag)
			require.Error(t, err)
			assert.NotContains(t, out, "Foo1! is")
			assert.Contains(t, stderr, "cannot be used with")
		})
	}
}

func TestTooManyArgs(t *testing.T) {
	_, _, err := execute(t, "one", "two")
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	out, _, err := execute(t, "-c", "3")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	for _, pw := range got {
		assert.Len(t, pw, 16)
		assertFromSet(t, pw, defaultCharset)
	}

	out, _, err = execute(t, "-u", "-e", "4", "--count", "2")
	require.NoError(t, err)
	assert.Len(t, lines(out), 2)
}

func TestSeedIsReproducible(t *testing.T) {
	a, _, err := execute(t, "--seed", "42", "-c", "2")
	require.NoError(t, err)
	b, _, err := execute(t, "--seed", "42", "-c", "2")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, lines(a), 2)
}

func TestDebugLogging(t *testing.T) {
	out, stderr, err := execute(t, "--log-level", "debug", "Foo1")
	require.NoError(t, err)
	assert.Equal(t, "Foo1 is medium\n", out)
	assert.Contains(t, stderr, "subsys=cli")
	assert.Contains(t, stderr, "points=3")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 2\nseed: 9\n"), 0o600))

	a, _, err := execute(t, "--config", path)
	require.NoError(t, err)
	assert.Len(t, lines(a), 2)

	b, _, err := execute(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConfigFileMissing(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
