//go:build linux
// +build linux

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

// Package fatfuse exposes a mounted FAT volume as a real, hierarchical
// read-only FUSE filesystem: directories map to directories and files map
// to files, following cluster chains lazily on Lookup/Read rather than
// pre-loading a flat name table.
package fatfuse

import (
	"context"
	"os"
	"sort"
	"time"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"github.com/ostafen/fatview/internal/fat"
)

// VolumeFS adapts a *fat.Volume to bazil.org/fuse's fs.FS.
type VolumeFS struct {
	vol *fat.Volume
}

// New returns a VolumeFS serving vol.
func New(vol *fat.Volume) *VolumeFS {
	return &VolumeFS{vol: vol}
}

func (v *VolumeFS) Root() (fusefs.Node, error) {
	return &Dir{vol: v.vol, isRoot: true}, nil
}

// Dir is a directory node: the volume root, or the directory starting at
// firstCluster.
type Dir struct {
	vol          *fat.Volume
	isRoot       bool
	firstCluster uint32
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) entries() ([]fat.DirEntry, error) {
	if d.isRoot {
		return d.vol.ReadRoot()
	}
	return d.vol.ReadDirectory(d.firstCluster)
}

func (d *Dir) Lookup(ctx context.Context, name string) (fusefs.Node, error) {
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDot() || e.Name != name {
			continue
		}
		if e.IsDir {
			return &Dir{vol: d.vol, firstCluster: e.FirstClus}, nil
		}
		return &File{vol: d.vol, firstCluster: e.FirstClus, size: e.Size}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}

	dirents := make([]fuse.Dirent, 0, len(entries))
	for i, e := range entries {
		if e.IsDot() {
			continue
		}
		kind := fuse.DT_File
		if e.IsDir {
			kind = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{Inode: uint64(i + 1), Name: e.Name, Type: kind})
	}
	sort.Slice(dirents, func(i, j int) bool { return dirents[i].Name < dirents[j].Name })
	return dirents, nil
}

// File is a regular file node; its contents are read lazily from the
// volume on every Read call rather than cached.
type File struct {
	vol          *fat.Volume
	firstCluster uint32
	size         uint32
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.size)
	a.Mtime = time.Now()
	return nil
}

func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return f.vol.ReadFile(f.firstCluster, f.size)
}
