package ocr

// ProvisionalSpan is a span whose width may not be known yet. Pending spans are
// synthesized whitespace that extends up to the next real span.
type ProvisionalSpan struct {
	Span
	Pending bool
}

// ResolveSpans turns a list of provisional spans into final spans. Every pending
// span gets the distance to the x position of the next non-pending span as its
// width, floored at MinSpanWidth. A pending span without a successor gets
// MinSpanWidth.
func ResolveSpans(provisional []ProvisionalSpan) []Span {
	spans := make([]Span, len(provisional))
	nextX, hasNext := 0.0, false
	for i := len(provisional) - 1; i >= 0; i-- {
		span := provisional[i].Span
		if provisional[i].Pending {
			width := MinSpanWidth
			if hasNext && nextX-span.X > width {
				width = nextX - span.X
			}
			span.Width = width
		} else {
			nextX, hasNext = span.X, true
		}
		spans[i] = span
	}
	return spans
}
