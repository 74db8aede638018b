package nav

// Preview holds the scroll state of the preview pane
type Preview struct {
	Path     string
	Lines    []string
	Offset   int
	Viewport int
	Err      error
}

// MaxOffset is the largest offset that still fills the viewport
func (p Preview) MaxOffset() int {
	if n := len(p.Lines) - p.Viewport; n > 0 {
		return n
	}
	return 0
}

// Top scrolls to the first line
func (p Preview) Top() Preview {
	p.Offset = 0
	return p
}

// Bottom scrolls so the last line sits at the bottom of the viewport
func (p Preview) Bottom() Preview {
	p.Offset = p.MaxOffset()
	return p
}

// Scroll moves the offset by delta, clamped to the content
func (p Preview) Scroll(delta int) Preview {
	p.Offset = clamp(p.Offset+delta, 0, p.MaxOffset())
	return p
}

// Visible returns the lines inside the viewport
func (p Preview) Visible() []string {
	if p.Offset >= len(p.Lines) {
		return nil
	}
	end := len(p.Lines)
	if p.Viewport > 0 && p.Offset+p.Viewport < end {
		end = p.Offset + p.Viewport
	}
	return p.Lines[p.Offset:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
