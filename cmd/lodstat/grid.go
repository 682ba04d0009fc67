package main

import (
	"fmt"
	"io"

	"github.com/Faultbox/geosphere/internal/engine/patch"
)

func cmdGrid(w io.Writer, args []string) error {
	fs := newFlagSet("grid")
	levels := fs.Int("levels", 4, "Template subdivision levels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *levels < 0 || *levels > patch.MaxTemplateLevels {
		return fmt.Errorf("%w: %d not in [0, %d]", patch.ErrInvalidLevels, *levels, patch.MaxTemplateLevels)
	}

	vertices, indices := patch.GenerateGeometry(*levels)

	morphing := 0
	for _, v := range vertices {
		if v.Morph.Len() > 0 {
			morphing++
		}
	}

	fmt.Fprintf(w, "Levels:     %d\n", *levels)
	fmt.Fprintf(w, "Row count:  %d\n", patch.RowCount(*levels))
	fmt.Fprintf(w, "Vertices:   %d\n", len(vertices))
	fmt.Fprintf(w, "Triangles:  %d\n", len(indices)/3)
	fmt.Fprintf(w, "Morphing:   %d\n", morphing)
	fmt.Fprintf(w, "Static:     %d\n", len(vertices)-morphing)
	fmt.Fprintf(w, "Index data: %d bytes\n", len(indices)*4)
	return nil
}
