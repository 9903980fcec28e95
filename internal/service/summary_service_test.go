package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/briefly-ai/briefly/internal/pkg/errors"
)

func TestCleanInput(t *testing.T) {
	svc := &SummaryService{maxInputChars: 20}

	_, err := svc.cleanInput("   \n\t  ")
	require.ErrorIs(t, err, appErr.ErrEmptyInput)

	_, err = svc.cleanInput(strings.Repeat("a", 21))
	require.ErrorIs(t, err, appErr.ErrInputTooLarge)

	got, err := svc.cleanInput("  hello  ")
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestCleanInput_NoLimit(t *testing.T) {
	svc := &SummaryService{}
	got, err := svc.cleanInput(strings.Repeat("a", 100000))
	require.NoError(t, err)
	require.Len(t, got, 100000)
}

func TestDeriveTitle(t *testing.T) {
	require.Equal(t, "First line", deriveTitle("First line\nsecond line"))
	require.Equal(t, "no newline at all", deriveTitle("no newline at all"))
	long := strings.Repeat("x", 300)
	require.Len(t, deriveTitle(long), maxTitleLen)
}

func TestExtractFileText(t *testing.T) {
	_, text, err := extractFileText("notes.txt", []byte("plain body"))
	require.NoError(t, err)
	require.Equal(t, "plain body", text)

	_, text, err = extractFileText("readme.md", []byte("# Title\n\nSome **bold** body."))
	require.NoError(t, err)
	require.Contains(t, text, "Title")
	require.Contains(t, text, "Some bold body.")
	require.NotContains(t, text, "**")

	_, _, err = extractFileText("image.png", []byte{0x89, 0x50})
	require.ErrorIs(t, err, appErr.ErrUnsupportedDoc)
}

func TestNewID(t *testing.T) {
	a, b := newID(), newID()
	require.Len(t, a, 32)
	require.NotEqual(t, a, b)
}
