package qefile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

//Band-structure file formats: the QE "&plot" block format (bands.x,
//matdyn.x), the Wannier90 gnuplot 2-column format, and the small label
//files that decorate the x axis.

var plotHeaderRe = regexp.MustCompile(`nbnd\s*=\s*(\d+).*nks\s*=\s*(\d+)`)

// BandPlot holds a parsed QE '&plot nbnd=..., nks=... /' band file.
type BandPlot struct {
	KPoints  [][]float64 //nks rows of 3 fractional components
	Energies [][]float64 //nbnd rows of nks values each
}

// ReadBandPlot parses a QE band file in '&plot' format. Energies come
// back unshifted; Fermi alignment is the caller's business.
func ReadBandPlot(path string) (*BandPlot, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	var header string
	start := 0
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			header = strings.TrimSpace(l)
			start = i + 1
			break
		}
	}
	if !strings.HasPrefix(header, "&plot") {
		return nil, newError(WrongFormat+": not a QE '&plot' band file", path, "qe-bands")
	}
	m := plotHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return nil, newError(WrongFormat+": failed to parse nbnd/nks from '&plot' header", path, "qe-bands")
	}
	nbnd, _ := strconv.Atoi(m[1])
	nks, _ := strconv.Atoi(m[2])

	//the rest of the file is one flat stream of floats: 3 k-components
	//then nbnd energies, nks times, wrapped at arbitrary line widths.
	var vals []float64
	for _, l := range lines[start:] {
		vals = append(vals, parseFloatRow(l)...)
	}
	need := nks * (3 + nbnd)
	if len(vals) < need {
		return nil, newError(WrongFormat+": truncated band data", path, "qe-bands")
	}
	bp := &BandPlot{
		KPoints:  make([][]float64, nks),
		Energies: make([][]float64, nbnd),
	}
	for b := 0; b < nbnd; b++ {
		bp.Energies[b] = make([]float64, nks)
	}
	pos := 0
	for ik := 0; ik < nks; ik++ {
		bp.KPoints[ik] = vals[pos : pos+3 : pos+3]
		pos += 3
		for b := 0; b < nbnd; b++ {
			bp.Energies[b][ik] = vals[pos]
			pos++
		}
	}
	return bp, nil
}

// KDistNormalized builds the cumulative Euclidean k-distance along the
// path of kpts and normalizes it to [0, 1]. A path of one point (or a
// zero-length path) comes back as all zeros. Using the coordinates as
// stored in the band file is usually sufficient to align with the
// Wannier k-distance axis.
func KDistNormalized(kpts [][]float64) []float64 {
	out := make([]float64, len(kpts))
	if len(kpts) <= 1 {
		return out
	}
	for i := 1; i < len(kpts); i++ {
		var d2 float64
		for j := range kpts[i] {
			d := kpts[i][j] - kpts[i-1][j]
			d2 += d * d
		}
		out[i] = out[i-1] + math.Sqrt(d2)
	}
	span := out[len(out)-1] - out[0]
	if span == 0 {
		return make([]float64, len(kpts))
	}
	for i := range out {
		out[i] /= span
	}
	return out
}

// BandBlocks holds a Wannier90 gnuplot-style band file split into
// blocks. Each block is typically one band.
type BandBlocks struct {
	X [][]float64
	Y [][]float64
}

// ReadWannierBands parses a Wannier90 2-column band file. Blocks are
// separated by blank lines or a lone "e"; comment lines flush the
// current block too. Short or non-numeric lines are skipped.
func ReadWannierBands(path string) (*BandBlocks, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	bb := &BandBlocks{}
	var curX, curY []float64
	flush := func() {
		if len(curX) > 0 {
			bb.X = append(bb.X, curX)
			bb.Y = append(bb.Y, curY)
			curX, curY = nil, nil
		}
	}
	for _, l := range lines {
		s := strings.TrimSpace(l)
		if s == "" || s == "e" || strings.HasPrefix(s, "#") {
			flush()
			continue
		}
		fields := strings.Fields(d2e(s))
		if len(fields) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(fields[0], 64)
		y, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		curX = append(curX, x)
		curY = append(curY, y)
	}
	flush()
	return bb, nil
}

// NormalizeX rescales every x block to [0, 1] using the global min/max
// across all blocks, so all bands share one path coordinate. A zero or
// non-finite span leaves the blocks untouched.
func (bb *BandBlocks) NormalizeX() {
	min, max := math.Inf(1), math.Inf(-1)
	for _, xb := range bb.X {
		for _, v := range xb {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	span := max - min
	if span == 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return
	}
	for _, xb := range bb.X {
		for i := range xb {
			xb[i] = (xb[i] - min) / span
		}
	}
}

// A PathLabel marks a high-symmetry point on the band path.
type PathLabel struct {
	Name  string
	Index int //1-based k-point index into the DFT path
}

// ReadLabelInfo parses a Wannier90 *.labelinfo.dat file. Expected
// format per line, extra columns allowed:
//
//	LABEL  INDEX  KDIST  KX  KY  KZ ...
//
// The 1-based INDEX is trusted; entries out of [1, nks] are dropped
// silently.
func ReadLabelInfo(path string, nks int) ([]PathLabel, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	var out []PathLabel
	for _, l := range lines {
		s := strings.TrimSpace(l)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) < 2 {
			continue
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil || idx < 1 || idx > nks {
			continue
		}
		out = append(out, PathLabel{Name: fields[0], Index: idx})
	}
	return out, nil
}

var gammaRe = regexp.MustCompile(`(?i)^(g|gamma|Γ)$`)

// ReadQPathLabels reads the high-symmetry labels from a QE-style q-path
// input (band form) and infers evenly spaced tick indices into a path
// of npoints samples. The first line carries the number of
// high-symmetry points; each following line ends in the label when it
// has at least 4 tokens. Gamma in any spelling is normalized to "Γ".
func ReadQPathLabels(path string, npoints int) (labels []string, idx []int, err error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, nil, err
	}
	var clean []string
	for _, l := range lines {
		s := strings.TrimSpace(l)
		if s != "" && !strings.HasPrefix(s, "#") {
			clean = append(clean, s)
		}
	}
	if len(clean) == 0 {
		return nil, nil, newError(WrongFormat+": empty q-path file", path, "qpath")
	}
	nhsp, err2 := strconv.Atoi(strings.Fields(clean[0])[0])
	if err2 != nil {
		return nil, nil, newError(WrongFormat+": bad high-symmetry point count", path, "qpath")
	}
	for i := 1; i <= nhsp && i < len(clean); i++ {
		toks := strings.Fields(clean[i])
		lbl := "P" + strconv.Itoa(i)
		if len(toks) >= 4 {
			lbl = toks[len(toks)-1]
		}
		if gammaRe.MatchString(lbl) {
			lbl = "Γ"
		}
		labels = append(labels, lbl)
	}
	nseg := len(labels) - 1
	if nseg <= 0 {
		for i := range labels {
			idx = append(idx, i)
		}
		return labels, idx, nil
	}
	step := float64(npoints-1) / float64(nseg)
	for i := 0; i <= nseg; i++ {
		idx = append(idx, int(math.Round(float64(i)*step)))
	}
	return labels, idx, nil
}
