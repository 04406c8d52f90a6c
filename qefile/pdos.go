package qefile

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

//projwfc.x output discovery. The projected-DOS filenames encode
//everything needed for labeling, so classification is pure filename
//work and only the files selected for plotting get read.

var (
	pdosTotRe  = regexp.MustCompile(`^(.+)\.pdos_tot(?:_(up|down))?$`)
	pdosProjRe = regexp.MustCompile(`^(.+)\.pdos_atm#(\d+)\(([^)]*)\)_wfc#(\d+)\(([^)]*)\)(?:_(up|down))?$`)
)

// PDOSInfo describes one projwfc.x output file found on disk.
type PDOSInfo struct {
	Filename string
	Seed     string //calculation prefix encoded in the filename
	Kind     string //"tot" or "proj"
	AtomNum  int    //atom index for proj files, 0 for tot
	AtomSym  string //element symbol, e.g. "Ti"
	WfcNum   int
	WfcSym   string //orbital character, e.g. "d"
	Spin     string //"", "up" or "down"
}

// Label returns the legend label for the file: "Total DOS" for the
// summed file, "Ti d" style for projections, with spin appended when
// the file is spin-resolved.
func (p *PDOSInfo) Label() string {
	var l string
	switch p.Kind {
	case "tot":
		l = "Total DOS"
	default:
		atom := p.AtomSym
		if atom == "" {
			atom = "atom?"
		}
		wfc := p.WfcSym
		if wfc == "" {
			wfc = "wfc?"
		}
		l = atom + " " + wfc
	}
	if p.Spin != "" {
		l += " (" + p.Spin + ")"
	}
	return l
}

// ClassifyPDOS decides whether name (a bare filename, no directory) is
// a projwfc.x output and extracts its metadata.
func ClassifyPDOS(name string) (*PDOSInfo, bool) {
	if m := pdosTotRe.FindStringSubmatch(name); m != nil {
		return &PDOSInfo{Filename: name, Seed: m[1], Kind: "tot", Spin: m[2]}, true
	}
	if m := pdosProjRe.FindStringSubmatch(name); m != nil {
		return &PDOSInfo{
			Filename: name,
			Seed:     m[1],
			Kind:     "proj",
			AtomNum:  atoiSafe(m[2]),
			AtomSym:  m[3],
			WfcNum:   atoiSafe(m[4]),
			WfcSym:   m[5],
			Spin:     m[6],
		}, true
	}
	return nil, false
}

// ScanPDOS lists the projwfc.x outputs in dir, total files first, then
// projections ordered by atom and orbital.
func ScanPDOS(dir string) ([]*PDOSInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(UnableToOpen, dir, "pdos")
	}
	var out []*PDOSInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if info, ok := ClassifyPDOS(e.Name()); ok {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if x.Kind != y.Kind {
			return x.Kind == "tot"
		}
		if x.AtomNum != y.AtomNum {
			return x.AtomNum < y.AtomNum
		}
		if x.WfcNum != y.WfcNum {
			return x.WfcNum < y.WfcNum
		}
		return x.Filename < y.Filename
	})
	return out, nil
}

// PDOSCurve is one projected-DOS file read into memory: energies in eV
// plus the DOS column.
type PDOSCurve struct {
	Info   *PDOSInfo
	Energy []float64
	DOS    []float64
}

// ReadPDOS reads the DOS curve of info from dir. Column 1 is the
// energy; the DOS column is the summed LDOS when present (column 2),
// which projwfc.x writes for both tot and proj files.
func ReadPDOS(dir string, info *PDOSInfo) (*PDOSCurve, error) {
	path := info.Filename
	if dir != "" {
		path = filepath.Join(dir, info.Filename)
	}
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	if t.Cols() < 2 {
		return nil, newError(NotEnoughCols+": pdos file needs energy plus DOS", path, "pdos")
	}
	return &PDOSCurve{Info: info, Energy: t.Col(0), DOS: t.Col(1)}, nil
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
