// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package browser drives an interactive, read-only walk of a mounted FAT
// volume: list a directory, select an entry by index, descend into
// subdirectories, and dump file contents.
package browser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/fatview/internal/fat"
	"github.com/ostafen/fatview/internal/logger"
	"github.com/ostafen/fatview/pkg/util/format"
	utilio "github.com/ostafen/fatview/pkg/util/io"
)

// ErrInvalidSelection is returned when the user's input does not parse to
// a valid entry index for the currently listed directory.
var ErrInvalidSelection = errors.New("Invalid syntax")

// location identifies a directory the browser can list: either the
// volume root or the chain starting at a given first cluster.
type location struct {
	name         string
	isRoot       bool
	firstCluster uint32
}

// Browser holds the navigation state of one interactive session against
// one mounted volume.
type Browser struct {
	vol *fat.Volume
	log *logger.Logger

	path    []location
	current []fat.DirEntry
}

// New returns a Browser positioned at the root directory of vol.
func New(vol *fat.Volume, log *logger.Logger) *Browser {
	return &Browser{
		vol:  vol,
		log:  log,
		path: []location{{name: "/", isRoot: true}},
	}
}

// Run reads commands from in and writes listings/prompts to out until in
// reaches EOF or a "quit" command is given.
func (b *Browser) Run(in io.Reader, out io.Writer) error {
	if err := b.enter(b.path[len(b.path)-1]); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\n%s> ", b.pwd())
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			b.list(out)
			continue
		}

		fields := strings.Fields(line)

		switch {
		case line == "quit" || line == "exit":
			return nil
		case line == "up" || line == "..":
			b.up(out)
		case line == "ls" || line == "list":
			b.list(out)
		case len(fields) == 3 && fields[0] == "get":
			if err := b.extractEntry(fields[1], fields[2]); err != nil {
				fmt.Fprintf(out, "%s\n", err)
			}
		default:
			if err := b.selectEntry(line, out); err != nil {
				fmt.Fprintf(out, "%s\n", err)
			}
		}
	}
}

// pwd renders the current navigation path as a slash-joined string.
func (b *Browser) pwd() string {
	var sb strings.Builder
	for i, loc := range b.path {
		if i > 0 {
			sb.WriteString("/")
		}
		sb.WriteString(loc.name)
	}
	return sb.String()
}

// enter loads the directory at loc into b.current.
func (b *Browser) enter(loc location) error {
	var entries []fat.DirEntry
	var err error

	if loc.isRoot {
		entries, err = b.vol.ReadRoot()
	} else {
		entries, err = b.vol.ReadDirectory(loc.firstCluster)
	}
	if err != nil {
		return fmt.Errorf("browser: failed to read directory: %w", err)
	}

	filtered := entries[:0]
	for _, e := range entries {
		if e.IsDot() {
			continue
		}
		filtered = append(filtered, e)
	}
	b.current = filtered
	return nil
}

// list prints the entries of the current directory in a tab-aligned
// table: index, kind, size and name.
func (b *Browser) list(out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tSIZE\tNAME")
	for i, e := range b.current {
		kind := "FILE"
		size := format.FormatBytes(int64(e.Size))
		if e.IsDir {
			kind = "DIR"
			size = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, kind, size, e.Name)
	}
	tw.Flush()
}

// up navigates to the parent of the current directory, if any.
func (b *Browser) up(out io.Writer) {
	if len(b.path) <= 1 {
		fmt.Fprintln(out, "already at the root directory")
		return
	}
	b.path = b.path[:len(b.path)-1]
	if err := b.enter(b.path[len(b.path)-1]); err != nil {
		fmt.Fprintf(out, "%s\n", err)
		return
	}
	b.list(out)
}

// selectEntry parses line as an entry index and either descends into the
// chosen subdirectory or dumps the chosen file's contents.
func (b *Browser) selectEntry(line string, out io.Writer) error {
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 0 || idx >= len(b.current) {
		return ErrInvalidSelection
	}

	entry := b.current[idx]
	if entry.IsDir {
		b.path = append(b.path, location{name: entry.Name, firstCluster: entry.FirstClus})
		if err := b.enter(b.path[len(b.path)-1]); err != nil {
			b.path = b.path[:len(b.path)-1]
			return err
		}
		b.list(out)
		return nil
	}

	data, err := b.vol.ReadFile(entry.FirstClus, entry.Size)
	if err != nil {
		return fmt.Errorf("browser: failed to read file %q: %w", entry.Name, err)
	}
	if b.log != nil {
		b.log.Debugf("dumping %d bytes for %q", len(data), entry.Name)
	}
	out.Write(data)
	fmt.Fprintln(out)
	return nil
}

// extractEntry saves the chosen file entry to destPath on the host
// filesystem, via the shared CopyFile helper, rather than only dumping the
// file to the terminal.
func (b *Browser) extractEntry(indexArg, destPath string) error {
	idx, err := strconv.Atoi(indexArg)
	if err != nil || idx < 0 || idx >= len(b.current) {
		return ErrInvalidSelection
	}

	entry := b.current[idx]
	if entry.IsDir {
		return fmt.Errorf("browser: %q is a directory", entry.Name)
	}

	data, err := b.vol.ReadFile(entry.FirstClus, entry.Size)
	if err != nil {
		return fmt.Errorf("browser: failed to read file %q: %w", entry.Name, err)
	}
	if err := utilio.CopyFile(destPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("browser: failed to extract %q: %w", entry.Name, err)
	}
	if b.log != nil {
		b.log.Infof("extracted %q to %s (%d bytes)", entry.Name, destPath, len(data))
	}
	return nil
}
