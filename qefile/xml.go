package qefile

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//QE writes its run metadata to tmp/PREFIX.save/data-file-schema.xml.
//The only piece the plotting tools need is the reciprocal lattice, but
//the tag naming has drifted across QE versions, so the lookup is
//tolerant: several candidate tag names, namespaces ignored, and a
//9-float fallback scan when the per-vector children don't parse.

var latticeTags = map[string]bool{
	"RECIPROCAL_LATTICE_VECTORS": true,
	"reciprocal_lattice_vectors": true,
	"RECIPROCAL_LATTICE":         true,
	"reciprocal_lattice":         true,
}

// SchemaPath returns the conventional location of the QE XML metadata
// for a given prefix, relative to dir.
func SchemaPath(dir, prefix string) string {
	return filepath.Join(dir, "tmp", prefix+".save", "data-file-schema.xml")
}

// ReadReciprocalLattice reads the reciprocal lattice vectors from a QE
// data-file-schema.xml file. The result is a 3x3 matrix whose rows are
// b1, b2, b3.
func ReadReciprocalLattice(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(UnableToOpen, path, "qe-xml")
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, newError(NoLatticeTag, path, "qe-xml")
		}
		start, ok := tok.(xml.StartElement)
		if !ok || !latticeTags[start.Name.Local] {
			continue
		}
		rows, allText, err := latticeChildren(dec, start)
		if err != nil {
			return nil, newError(err.Error(), path, "qe-xml")
		}
		if len(rows) != 3 {
			//Fallback: pull 9 floats from anywhere within the node.
			rows = nineFloatRows(allText)
		}
		if len(rows) != 3 {
			return nil, newError(BadLatticeRows, path, "qe-xml")
		}
		b := mat.NewDense(3, 3, nil)
		for i, row := range rows {
			b.SetRow(i, row)
		}
		return b, nil
	}
}

// latticeChildren walks the subtree of start, returning one 3-float row
// per child element that carries at least 3 numbers, plus all character
// data seen, for the fallback scan.
func latticeChildren(dec *xml.Decoder, start xml.StartElement) ([][]float64, string, error) {
	var rows [][]float64
	var all strings.Builder
	var cur strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			cur.Reset()
		case xml.CharData:
			cur.Write(t)
			all.Write(t)
			all.WriteByte(' ')
		case xml.EndElement:
			if depth == 0 {
				return rows, all.String(), nil
			}
			depth--
			if depth == 0 {
				if row := parseFloatRow(cur.String()); len(row) >= 3 {
					rows = append(rows, row[:3])
				}
				cur.Reset()
			}
		}
	}
}

func parseFloatRow(s string) []float64 {
	fields := strings.Fields(d2e(s))
	var out []float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func nineFloatRows(text string) [][]float64 {
	vals := parseFloatRow(text)
	if len(vals) < 9 {
		return nil
	}
	return [][]float64{vals[0:3], vals[3:6], vals[6:9]}
}
