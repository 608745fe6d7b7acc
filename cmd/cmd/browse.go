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

	"github.com/ostafen/fatview/internal/browser"
	"github.com/ostafen/fatview/internal/logger"
	"github.com/spf13/cobra"
)

func DefineBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "browse <image_path>",
		Short:        "Interactively browse a FAT12/16/32 image or device",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunBrowse,
	}
	return cmd
}

func RunBrowse(cmd *cobra.Command, args []string) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	log := logger.New(os.Stderr, logger.ParseLevel(logLevel))

	vol, dev, err := mountVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Infof("mounted %s volume from %s", vol.Info.Variant, args[0])

	b := browser.New(vol, log)
	return b.Run(os.Stdin, os.Stdout)
}
