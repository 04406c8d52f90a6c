package qefile

import (
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

//Phonon dispersion files out of matdyn.x: the gnuplot-friendly
//*.freq.gp table, the raw *.freq '&plot' format, and plain q/freq
//tables. Frequencies in all of them are cm^-1.

// A Dispersion is a phonon band structure along a q path: one path
// coordinate per row and one frequency column per branch.
type Dispersion struct {
	Q     []float64   //path coordinate (or q index for raw .freq files)
	Freqs [][]float64 //rows follow Q; each row holds all branch frequencies at that q
}

// NBranches returns the number of phonon branches.
func (d *Dispersion) NBranches() int {
	if len(d.Freqs) == 0 {
		return 0
	}
	return len(d.Freqs[0])
}

// Branch returns the frequencies of branch j along the whole path.
func (d *Dispersion) Branch(j int) []float64 {
	out := make([]float64, len(d.Freqs))
	for i, row := range d.Freqs {
		out[i] = row[j]
	}
	return out
}

// ResolveFreqFile resolves the -freq argument: when arg names an
// existing file it is used directly; otherwise arg is treated as a
// PREFIX and the common QE dispersion filenames are tried in order.
// The returned prefix is empty when arg was a concrete file.
func ResolveFreqFile(arg string) (path, prefix string, err error) {
	if st, err2 := os.Stat(arg); err2 == nil && !st.IsDir() {
		return arg, "", nil
	}
	guesses := []string{
		arg + "_phband.freq.gp",
		arg + "_phband.freq",
		arg + ".freq.gp",
		arg + ".freq",
		arg + "_dispersion.freq.gp",
		arg + "_dispersion.freq",
		arg + "_phband.freq.gp.dat",
		arg + "_phband.freq.dat",
	}
	for _, g := range guesses {
		if st, err2 := os.Stat(g); err2 == nil && !st.IsDir() {
			return g, arg, nil
		}
	}
	return "", "", newError("no dispersion file found for "+arg+" (tried "+strings.Join(guesses, ", ")+")", arg, "freq")
}

// ResolveDOSFile returns the first existing phonon DOS filename for
// prefix, or "" when none exists.
func ResolveDOSFile(prefix string) string {
	for _, g := range []string{
		prefix + "_phdos",
		prefix + ".phdos",
		prefix + "_phdos.dat",
		prefix + ".phdos.dat",
	} {
		if st, err := os.Stat(g); err == nil && !st.IsDir() {
			return g
		}
	}
	return ""
}

// ReadFreqGP reads a *.freq.gp table: q in the first column, one
// branch per following column.
func ReadFreqGP(path string) (*Dispersion, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	if t.Cols() < 2 {
		return nil, newError(NotEnoughCols+": .freq.gp needs q plus at least one branch", path, "freq")
	}
	d := &Dispersion{Q: t.Col(0), Freqs: make([][]float64, t.Rows())}
	for i, row := range t.Data {
		d.Freqs[i] = row[1:]
	}
	return d, nil
}

var rawFreqHeaderRe = regexp.MustCompile(`^\s*&plot\s+nbnd=\s*([0-9]+)\s*,\s*nks=\s*([0-9]+)\s*/`)

// ReadFreqRaw parses a raw matdyn.x .freq file ('&plot' header). The
// path coordinate is the q index since the raw format stores q vectors,
// not cumulative distances.
func ReadFreqRaw(path string) (*Dispersion, error) {
	all, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, l := range all {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimSpace(l))
		}
	}
	if len(lines) == 0 {
		return nil, newError(NoNumericData, path, "freq")
	}
	m := rawFreqHeaderRe.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, newError(WrongFormat+": not a raw .freq header: "+lines[0], path, "freq")
	}
	nbnd, _ := strconv.Atoi(m[1])
	nks, _ := strconv.Atoi(m[2])

	d := &Dispersion{}
	i := 1
	for i < len(lines) && len(d.Q) < nks {
		if toks := strings.Fields(lines[i]); len(toks) != 3 {
			return nil, newError(WrongFormat+": unexpected q-vector line: "+lines[i], path, "freq")
		}
		d.Q = append(d.Q, float64(len(d.Q)))
		i++
		var cur []float64
		for i < len(lines) && len(cur) < nbnd && isNumericLine(lines[i]) {
			cur = append(cur, parseFloatRow(lines[i])...)
			i++
		}
		if len(cur) < nbnd {
			return nil, newError(WrongFormat+": truncated branch block", path, "freq")
		}
		d.Freqs = append(d.Freqs, cur[:nbnd])
	}
	return d, nil
}

// ReadDispersion reads any of the supported dispersion formats,
// dispatched on the extension and, for extension-less files, on the
// '&plot' header.
func ReadDispersion(path string) (*Dispersion, error) {
	if strings.HasSuffix(trimmedSuffixName(path), ".gp") {
		return ReadFreqGP(path)
	}
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		s := strings.TrimSpace(l)
		if s == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(s), "&plot") {
			return ReadFreqRaw(path)
		}
		break
	}
	return ReadFreqGP(path) //generic q/branches table has the same shape
}

// DOSCurve is a phonon density of states: frequency (cm^-1) against
// DOS, sorted by frequency.
type DOSCurve struct {
	Freq []float64
	DOS  []float64
}

// ReadDOS reads a phonon DOS file. The first two columns are used;
// extras are ignored. Rows come back sorted by frequency.
func ReadDOS(path string) (*DOSCurve, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	if t.Cols() < 2 {
		return nil, newError(NotEnoughCols+": DOS table needs at least 2 columns", path, "phdos")
	}
	idx := make([]int, t.Rows())
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return t.Data[idx[a]][0] < t.Data[idx[b]][0] })
	c := &DOSCurve{Freq: make([]float64, t.Rows()), DOS: make([]float64, t.Rows())}
	for i, j := range idx {
		c.Freq[i] = t.Data[j][0]
		c.DOS[i] = t.Data[j][1]
	}
	return c, nil
}
