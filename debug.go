package trellis

import (
	"fmt"
	"io"
	"os"
)

// warnWriter receives toolkit warnings. Tests may swap it to capture output.
var warnWriter io.Writer = os.Stderr

// warnf reports a recoverable problem (missing widget, unknown panel,
// dangling callback name). Problems at this level never panic and never
// abort a frame.
func warnf(format string, args ...any) {
	fmt.Fprintf(warnWriter, "[trellis] warning: "+format+"\n", args...)
}

// DumpTree writes an indented description of the subtree rooted at w: kind,
// name, relative rect, resolved screen rect, and flags. Useful when a widget
// lands somewhere unexpected.
func DumpTree(out io.Writer, w *Widget) {
	dumpWidget(out, w, 0)
}

func dumpWidget(out io.Writer, w *Widget, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(out, "  ")
	}
	abs := w.AbsoluteRect()
	fmt.Fprintf(out, "%s %q rel=(%g,%g %gx%g) abs=(%g,%g)",
		w.Kind, w.Name, w.rect.X, w.rect.Y, w.rect.Width, w.rect.Height, abs.X, abs.Y)
	if !w.Visible {
		fmt.Fprint(out, " hidden")
	}
	if !w.Interactive {
		fmt.Fprint(out, " inert")
	}
	if w.Kind == KindScroll {
		fmt.Fprintf(out, " scroll=%g/%g", w.scrollOffset, w.MaxScroll())
	}
	fmt.Fprintln(out)
	for _, c := range w.children {
		dumpWidget(out, c, depth+1)
	}
}
