// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar renders Syncer progress on a single terminal line.
type ProgressBar struct {
	w   io.Writer
	bar progress.Model
}

func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{w: w, bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))}
}

// Update matches Syncer.OnProgress.
func (p *ProgressBar) Update(lang Language, done, total int) {
	if total <= 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s %s %d/%d", lang.Flag, p.bar.ViewAs(float64(done)/float64(total)), done, total)
	if done >= total {
		fmt.Fprintln(p.w)
	}
}
