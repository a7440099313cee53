package model

// LayoutModeKind discriminates the LayoutMode tagged union.
type LayoutModeKind int

const (
	LayoutFree LayoutModeKind = iota
	LayoutColumn
	LayoutRow
	LayoutGrid
)

// LayoutMode is how a Group or Frame arranges its children.
type LayoutMode struct {
	Kind LayoutModeKind

	Gap  float64 // Column, Row, Grid
	Pad  float64 // Column, Row, Grid
	Cols int     // Grid only
}

var FreeLayout = LayoutMode{Kind: LayoutFree}

func ColumnLayout(gap, pad float64) LayoutMode {
	return LayoutMode{Kind: LayoutColumn, Gap: gap, Pad: pad}
}

func RowLayout(gap, pad float64) LayoutMode {
	return LayoutMode{Kind: LayoutRow, Gap: gap, Pad: pad}
}

func GridLayout(cols int, gap, pad float64) LayoutMode {
	return LayoutMode{Kind: LayoutGrid, Cols: cols, Gap: gap, Pad: pad}
}
