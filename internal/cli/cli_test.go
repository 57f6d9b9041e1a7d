package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	loginLine  = `<time>2024-03-15T10:00:00</time><ip>10.0.0.1</ip><type>Login</type><status>OK</status><statusmsg>Success</statusmsg>`
	logoutLine = `<time>2024-03-16T18:30:00</time><ip>10.0.0.1</ip><type>Logout</type><status>OK</status><statusmsg>Bye</statusmsg>`
)

type env struct {
	sourceDir  string
	archiveDir string
}

// newEnv isolates the test from lsaccess environment variables and returns
// fresh source and archive directories.
func newEnv(t *testing.T) env {
	t.Helper()
	for _, key := range []string{
		"LSACCESS_CONFIG", "LSACCESS_SOURCE_DIR", "LSACCESS_FILE_PREFIX",
		"LSACCESS_ARCHIVE_DIR", "LSACCESS_OUTPUT_PREFIX", "LSACCESS_CSV_MODE",
		"LSACCESS_WATCH_DEBOUNCE", "LSACCESS_LOG_LEVEL", "LSACCESS_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return env{
		sourceDir:  t.TempDir(),
		archiveDir: filepath.Join(t.TempDir(), "analyzed"),
	}
}

func (e env) addLog(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(e.sourceDir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// run executes the command tree with args and returns stdout, stderr.
func (e env) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--source-dir", e.sourceDir, "--archive-dir", e.archiveDir}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "lsaccess version dev (commit: none)\n", out)
}

func TestList(t *testing.T) {
	e := newEnv(t)
	a := e.addLog(t, "ls_access.log.2024-03-15", loginLine)
	b := e.addLog(t, "ls_access.log.2024-03-16", logoutLine)
	e.addLog(t, "catalina.out", "noise")

	out, _, err := e.run(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "Found log files:\n1. "+a+"\n2. "+b+"\n", out)
}

func TestList_Empty(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No log files found starting with 'ls_access.log'")
}

func TestList_MissingSourceDir(t *testing.T) {
	e := newEnv(t)
	e.sourceDir = filepath.Join(e.sourceDir, "missing")
	_, _, err := e.run(t, "", "list")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	e := newEnv(t)
	src := e.addLog(t, "ls_access.log.2024-03-15", loginLine, "not a record", logoutLine)

	out, _, err := e.run(t, "", "convert", src)
	require.NoError(t, err)

	csvPath := filepath.Join(e.archiveDir, "parsed_log_2024-03-15.csv")
	assert.Equal(t, "Log file copied and converted to CSV: "+csvPath+" (2 entries)\n", out)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2024-03-15T10:00:00,10.0.0.1,Login,,,,,,,,OK,Success,,", lines[1])

	_, err = os.Stat(filepath.Join(e.archiveDir, "ls_access.log.2024-03-15"))
	assert.NoError(t, err, "source is archived")
}

func TestConvert_All(t *testing.T) {
	e := newEnv(t)
	e.addLog(t, "ls_access.log.2024-03-15", loginLine)
	e.addLog(t, "ls_access.log.2024-03-16", logoutLine)

	out, _, err := e.run(t, "", "convert", "--all")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "converted to CSV"))

	for _, name := range []string{"parsed_log_2024-03-15.csv", "parsed_log_2024-03-16.csv"} {
		_, err := os.Stat(filepath.Join(e.archiveDir, name))
		assert.NoError(t, err, name)
	}
}

func TestConvert_Stdout(t *testing.T) {
	e := newEnv(t)
	src := e.addLog(t, "ls_access.log.2024-03-15", loginLine)

	out, _, err := e.run(t, "", "--csv-mode", "legacy", "convert", "--stdout", src)
	require.NoError(t, err)
	assert.Equal(t,
		"Timestamp,IP Address,Event Type,Host Name,Client ID,Architecture Name,User Name,User ID,Machine ID,Tool Name,Status,Status Message,Authentication,Validation\n"+
			"2024-03-15T10:00:00,10.0.0.1,Login,,,,,,,,OK,Success,,\n",
		out)

	_, err = os.Stat(e.archiveDir)
	assert.True(t, os.IsNotExist(err), "--stdout does not archive")
}

func TestConvert_Errors(t *testing.T) {
	e := newEnv(t)
	a := e.addLog(t, "ls_access.log.2024-03-15", loginLine)
	b := e.addLog(t, "ls_access.log.2024-03-16", logoutLine)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", []string{"convert"}, "no files given"},
		{"stdout with several files", []string{"convert", "--stdout", a, b}, "--stdout accepts a single file"},
		{"bad csv mode", []string{"--csv-mode", "tsv", "convert", a}, "unknown csv mode"},
		{"missing file", []string{"convert", filepath.Join(e.sourceDir, "ls_access.log.nope")}, "pipeline archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConvert_ConfigFile(t *testing.T) {
	e := newEnv(t)
	src := e.addLog(t, "ls_access.log.2024-03-15", loginLine)
	cfgPath := filepath.Join(t.TempDir(), "lsaccess.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  prefix: dtp_usage_\n"), 0o644))

	_, _, err := e.run(t, "", "--config", cfgPath, "convert", src)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(e.archiveDir, "dtp_usage_2024-03-15.csv"))
	assert.NoError(t, err)
}
