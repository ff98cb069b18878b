package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"product-viewer/internal/model"
)

// WriteTable prints one row per part: id, name, triangle count, world-space size and
// description.
func WriteTable(w io.Writer, product *model.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n\n", product.Name())
	fmt.Fprintln(tw, "ID\tPART\tTRIANGLES\tSIZE (W x H x D)\tDESCRIPTION")
	for _, p := range product.Parts() {
		b := p.WorldBounds()
		size := b.Max.Sub(b.Min)
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f x %.2f x %.2f\t%s\n",
			p.ID, p.Name, p.Mesh.TriangleCount(), size.X(), size.Y(), size.Z(), p.Description)
	}
	b := product.Bounds()
	size := b.Max.Sub(b.Min)
	fmt.Fprintf(tw, "\nOverall: %.2f x %.2f x %.2f\n", size.X(), size.Y(), size.Z())
	return tw.Flush()
}
