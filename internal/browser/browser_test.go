package browser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ostafen/fatview/internal/fat"
	"github.com/stretchr/testify/require"
)

// mustTestVolume mounts a tiny synthetic in-memory FAT12 image so the
// browser's navigation logic runs against a real *fat.Volume without a disk
// image on the host (Browser takes a concrete *fat.Volume, not an
// interface, so there is nothing to fake).
func mustTestVolume(t *testing.T) *fat.Volume {
	t.Helper()
	vol, err := fat.Mount(newBrowserTestDevice(t))
	require.NoError(t, err)
	return vol
}

func TestBrowserListsRootAndSelectsFile(t *testing.T) {
	vol := mustTestVolume(t)
	b := New(vol, nil)

	var out bytes.Buffer
	in := strings.NewReader("ls\n0\nquit\n")
	err := b.Run(in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "FILE.TXT")
	require.Contains(t, out.String(), "AAAA")
}

func TestBrowserInvalidSelectionReprompts(t *testing.T) {
	vol := mustTestVolume(t)
	b := New(vol, nil)

	var out bytes.Buffer
	in := strings.NewReader("99\nquit\n")
	err := b.Run(in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), ErrInvalidSelection.Error())
}

func TestBrowserUpAtRootIsNoop(t *testing.T) {
	vol := mustTestVolume(t)
	b := New(vol, nil)

	var out bytes.Buffer
	in := strings.NewReader("up\nquit\n")
	err := b.Run(in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "already at the root directory")
}

func TestBrowserExtractsFileToDisk(t *testing.T) {
	vol := mustTestVolume(t)
	b := New(vol, nil)

	dest := filepath.Join(t.TempDir(), "extracted.txt")
	var out bytes.Buffer
	in := strings.NewReader("get 0 " + dest + "\nquit\n")
	err := b.Run(in, &out)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "AAAA", string(data))
}

func TestBrowserExtractRejectsOutOfRangeIndex(t *testing.T) {
	vol := mustTestVolume(t)
	b := New(vol, nil)

	dest := filepath.Join(t.TempDir(), "should-not-exist.txt")
	var out bytes.Buffer
	in := strings.NewReader("get 99 " + dest + "\nquit\n")
	err := b.Run(in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), ErrInvalidSelection.Error())
	_, statErr := os.Stat(dest)
	require.True(t, os.IsNotExist(statErr))
}
