package nbody

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes one line per entity with its components, in iteration order:
//
//	id 0: {X:1 Y:2} {X:0 Y:0} {Value:1}
func Dump(out io.Writer, w *World) error {
	bw := bufio.NewWriter(out)
	query := NewFilter(w)
	for query.Next() {
		pos, vel, mass := query.Get()
		if _, err := fmt.Fprintf(bw, "id %d: %+v %+v %+v\n", query.Entity().ID, pos, vel, mass); err != nil {
			return err
		}
	}
	return bw.Flush()
}
