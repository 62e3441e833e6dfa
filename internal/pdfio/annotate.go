package pdfio

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/ebiblegr/verselink/internal/geom"
)

// Link is one clickable region to add: the page rectangle to cover and the
// destination URI.
type Link struct {
	Page int
	Rect geom.Rect
	URI  string
}

// WriteLinks copies the PDF at inPath to outPath with a link annotation per
// entry. The annotated document is written to a temporary file first and
// renamed into place, so a failure never leaves a partial output file and
// the source is never modified.
func WriteLinks(inPath, outPath string, links []Link) error {
	tmp := outPath + ".tmp"
	defer os.Remove(tmp)

	if len(links) == 0 {
		if err := copyFile(inPath, tmp); err != nil {
			return err
		}
		return os.Rename(tmp, outPath)
	}

	byPage := make(map[int][]model.AnnotationRenderer)
	for _, l := range links {
		byPage[l.Page] = append(byPage[l.Page], linkAnnotation(l))
	}
	if err := api.AddAnnotationsMapFile(inPath, tmp, byPage, nil, false); err != nil {
		return fmt.Errorf("adding link annotations: %w", err)
	}
	return os.Rename(tmp, outPath)
}

func linkAnnotation(l Link) model.LinkAnnotation {
	return model.NewLinkAnnotation(
		*types.NewRectangle(l.Rect.X0, l.Rect.Y0, l.Rect.X1, l.Rect.Y1),
		0,                 // apObjNr
		"",                // contents
		uuid.NewString(),  // id
		"",                // modDate
		0,                 // flags
		nil,               // background color
		nil,               // internal destination
		l.URI,             // external URI
		nil,               // quad points
		false,             // border
		0,                 // border width
		model.BSSolid,
	)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}
