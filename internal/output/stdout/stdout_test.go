package stdout

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hejijunhao/lsaccess/internal/model"
	"github.com/hejijunhao/lsaccess/internal/output"
)

func testRecord() model.Record {
	return model.Record{
		Timestamp: "2024-03-15T10:00:00",
		IP:        "10.0.0.1",
		EventType: "Login",
		Status:    "OK",
		StatusMsg: "Success, first try",
	}
}

// captureStdout redirects os.Stdout to capture output.
func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestOutputQuoted(t *testing.T) {
	var err error
	result := captureStdout(func() {
		err = New(output.ModeQuoted).WriteTable(context.Background(), []model.Record{testRecord()})
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(model.Columns, ","), lines[0])
	assert.Equal(t, `2024-03-15T10:00:00,10.0.0.1,Login,,,,,,,,OK,"Success, first try",,`, lines[1])
}

func TestOutputLegacy(t *testing.T) {
	result := captureStdout(func() {
		New(output.ModeLegacy).WriteTable(context.Background(), []model.Record{testRecord()})
	})

	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `2024-03-15T10:00:00,10.0.0.1,Login,,,,,,,,OK,Success, first try,,`, lines[1])
}
