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
package cmd

import (
	"os"

	"github.com/ostafen/fatview/internal/export"
	"github.com/spf13/cobra"
)

func DefineExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "export <image_path> <report_file.xml>",
		Short:        "Export a FAT image's directory tree as a DFXML report",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunExport,
	}
	return cmd
}

func RunExport(cmd *cobra.Command, args []string) error {
	vol, dev, err := mountVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer dev.Close()

	var imageSize uint64
	if fi, statErr := os.Stat(args[0]); statErr == nil {
		imageSize = uint64(fi.Size())
	}

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	return export.Tree(out, vol, args[0], imageSize)
}
