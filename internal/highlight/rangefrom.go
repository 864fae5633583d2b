package highlight

import (
	"fmt"

	"github.com/tuyetlangsa/rehi-go/internal/common"
	"github.com/tuyetlangsa/rehi-go/internal/dom"
)

// RangeFromMatch converts a match back into a DOM range. The start lands in
// the first entry whose interval contains Start (end exclusive); the end
// lands in the first entry whose interval contains End with the interval's
// end treated inclusively, so a match ending exactly at a node boundary
// resolves to that node rather than the next.
func RangeFromMatch(m *Match) (*dom.Range, error) {
	var r dom.Range
	haveStart := false
	haveEnd := false

	for _, e := range m.Map {
		if !haveStart && m.Start >= e.Start && m.Start < e.End {
			r.StartNode = e.Node
			r.StartOffset = m.Start - e.Start
			haveStart = true
		}
		if !haveEnd && m.End >= e.Start && m.End <= e.End {
			r.EndNode = e.Node
			r.EndOffset = m.End - e.Start
			haveEnd = true
		}
		if haveStart && haveEnd {
			break
		}
	}

	if !haveStart || !haveEnd {
		return nil, fmt.Errorf("resolving match offsets [%d, %d): %w", m.Start, m.End, common.ErrorNotFound)
	}
	return &r, nil
}
