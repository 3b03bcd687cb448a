// Package sequence holds the frame-numbering policy shared by the extract
// and combine sides. Filenames are a zero-padded numeric index, so the pad
// width must be wide enough that lexical order equals numeric order for
// every index the sequence can hold.
package sequence

import "fmt"

// FrameExt is the lossless still-image extension used for staged frames.
const FrameExt = ".png"

// PadWidth returns the zero-pad width needed to represent totalFrames
// indices, minimum 1: 9 frames need 1 digit, 10 need 2, 1234 need 4.
func PadWidth(totalFrames int) int {
	width := 1
	for totalFrames /= 10; totalFrames > 0; totalFrames /= 10 {
		width++
	}
	return width
}

// SharedWidth computes the single pad width for a staging directory fed by
// multiple sources. Sources are assigned disjoint index ranges, so the width
// is derived from the combined frame count. It must be computed before any
// extraction begins; diverging widths corrupt lexical order.
func SharedWidth(counts ...int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return PadWidth(total)
}

// FileName formats the staged filename for a frame index.
func FileName(index, width int) string {
	return fmt.Sprintf("%0*d%s", width, index, FrameExt)
}
