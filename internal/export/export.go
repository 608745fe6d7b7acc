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

// Package export walks a mounted FAT volume and renders its directory
// tree as a DFXML report, so the result of a browsing session can be
// archived or diffed without re-opening the image.
package export

import (
	"io"
	"path"

	"github.com/ostafen/fatview/internal/env"
	"github.com/ostafen/fatview/internal/fat"
	"github.com/ostafen/fatview/pkg/dfxml"
)

// Tree writes every file and directory reachable from vol's root to w as
// a DFXML document. imagePath and imageSize are recorded in the document
// <source> element.
func Tree(w io.Writer, vol *fat.Volume, imagePath string, imageSize uint64) error {
	writer := dfxml.NewDFXMLWriter(w)

	hdr := dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata: dfxml.Metadata{
			Xmlns:    dfxml.DefaultMetadata.Xmlns,
			XmlnsXsi: dfxml.DefaultMetadata.XmlnsXsi,
			XmlnsDC:  dfxml.DefaultMetadata.XmlnsDC,
			Type:     "FAT Volume Listing",
		},
		Creator: dfxml.Creator{
			Package:              "fatview",
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: imagePath,
			SectorSize:    int(vol.Info.BytesPerSector),
			ImageSize:     imageSize,
		},
	}
	if err := writer.WriteHeader(hdr); err != nil {
		return err
	}

	root, err := vol.ReadRoot()
	if err != nil {
		return err
	}
	if err := walk(writer, vol, "/", root); err != nil {
		return err
	}
	return writer.Close()
}

func walk(w *dfxml.DFXMLWriter, vol *fat.Volume, dir string, entries []fat.DirEntry) error {
	for _, e := range entries {
		if e.IsDot() {
			continue
		}

		fullPath := path.Join(dir, e.Name)
		obj := dfxml.FileObject{
			Filename: fullPath,
			FileSize: uint64(e.Size),
			ByteRuns: dfxml.ByteRuns{
				Runs: []dfxml.ByteRun{{
					Offset:    0,
					ImgOffset: uint64(vol.Info.DataSector(e.FirstClus)) * uint64(vol.Info.BytesPerSector),
					Length:    uint64(e.Size),
				}},
			},
		}
		if err := w.WriteFileObject(obj); err != nil {
			return err
		}

		if e.IsDir {
			children, err := vol.ReadDirectory(e.FirstClus)
			if err != nil {
				return err
			}
			if err := walk(w, vol, fullPath, children); err != nil {
				return err
			}
		}
	}
	return nil
}
