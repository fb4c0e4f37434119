package svg

// ArrowMarker builds a <marker> definition for edge arrowheads. Reference it
// from a path with marker-end="url(#id)".
func ArrowMarker(id, color string) *Element {
	m := New("marker").
		Attr("id", id).
		Attr("viewBox", "0 0 10 10").
		AttrInt("refX", 9).
		AttrInt("refY", 5).
		AttrInt("markerWidth", 8).
		AttrInt("markerHeight", 8).
		Attr("orient", "auto-start-reverse")
	m.Child("path").
		Attr("d", "M 0 0 L 10 5 L 0 10 z").
		Attr("fill", color)
	return m
}

// PointMarker builds a small circular line ending, used for open edge ends.
func PointMarker(id, color string) *Element {
	m := New("marker").
		Attr("id", id).
		Attr("viewBox", "0 0 10 10").
		AttrInt("refX", 5).
		AttrInt("refY", 5).
		AttrInt("markerWidth", 6).
		AttrInt("markerHeight", 6)
	m.Child("circle").
		AttrInt("cx", 5).
		AttrInt("cy", 5).
		AttrInt("r", 4).
		Attr("fill", color)
	return m
}

// CrossMarker builds an X line ending, used for lost or rejected messages.
func CrossMarker(id, color string) *Element {
	m := New("marker").
		Attr("id", id).
		Attr("viewBox", "0 0 10 10").
		AttrInt("refX", 5).
		AttrInt("refY", 5).
		AttrInt("markerWidth", 7).
		AttrInt("markerHeight", 7).
		Attr("orient", "auto")
	m.Child("path").
		Attr("d", "M 1 1 L 9 9 M 9 1 L 1 9").
		Attr("stroke", color).
		Attr("fill", "none")
	return m
}
