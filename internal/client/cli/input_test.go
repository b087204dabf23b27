package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var w bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world \nnext\n"))

	got, err := GetSimpleText(r, "Title", &w)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Title\n> ", w.String())

	got, err = GetSimpleText(r, "Again", &w)
	require.NoError(t, err)
	assert.Equal(t, "next", got)

	_, err = GetSimpleText(r, "Done", &w)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("tail")), "p", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "tail", got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var w bytes.Buffer
	pw, err := GetPassword(&w, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.Equal(t, "Password: \n", w.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = GetPassword(io.Discard, "Password: ")
	assert.EqualError(t, err, "no tty")
}

func TestGetConfirmation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		got, err := GetConfirmation(bufio.NewReader(strings.NewReader(tt.in)), "Delete expense?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
