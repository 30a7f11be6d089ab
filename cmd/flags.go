/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"

	app "github.com/gnames/consetl/pkg"
	"github.com/gnames/consetl/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// sourceFlags keeps values of flags shared by commands that read sources.
type sourceFlags struct {
	chapterID     int
	constituents  string
	emails        string
	subscriptions string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(
		&f.chapterID, "chapter-id", "c", 0,
		"chapter that determines unsubscribe status",
	)
	cmd.Flags().StringVar(
		&f.constituents, "cons", "",
		"location of the constituents (cons) table",
	)
	cmd.Flags().StringVar(
		&f.emails, "emails", "",
		"location of the cons_email table",
	)
	cmd.Flags().StringVar(
		&f.subscriptions, "subscriptions", "",
		"location of the cons_email_chapter_subscription table",
	)
}

// options converts explicitly set flags to config options.
func (f *sourceFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("chapter-id") {
		res = append(res, config.OptSourcesChapterID(f.chapterID))
	}
	if cmd.Flags().Changed("cons") {
		res = append(res, config.OptSourcesConstituents(f.constituents))
	}
	if cmd.Flags().Changed("emails") {
		res = append(res, config.OptSourcesEmails(f.emails))
	}
	if cmd.Flags().Changed("subscriptions") {
		res = append(res, config.OptSourcesSubscriptions(f.subscriptions))
	}
	return res
}
