/*
Package phlink lays out the symlinks EPW expects for phonon output.

ph.x leaves dynamical matrices as PREFIX.dynN in the run directory and
the dvscf potentials scattered under _ph0 with several naming
conventions; EPW wants PREFIX.dyn_qN plus either PREFIX.dvscf_qN or
PREFIX.dvscfN_1 inside its dvscf_dir. The linker bridges the two
layouts without ever destroying real data: regular files are never
overwritten and only stale or wrong symlinks get replaced.
*/
package phlink

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// LinkResult says what SafeSymlink did with a destination.
type LinkResult int

const (
	Linked      LinkResult = iota //link created or replaced
	SkipRegular                   //destination is a regular file, untouched
	SkipSame                      //destination already points at the source
	SkipSelf                      //link would point at itself
)

func (r LinkResult) String() string {
	switch r {
	case Linked:
		return "linked"
	case SkipRegular:
		return "kept regular file"
	case SkipSame:
		return "same target"
	case SkipSelf:
		return "self-link"
	}
	return "unknown"
}

// SafeSymlink creates or replaces the symlink dst pointing at src.
// Regular files at dst are never touched; a symlink already resolving
// to src is left alone; dst resolving to src itself is refused; broken
// or differently-pointing symlinks are replaced.
func SafeSymlink(src, dst string) (LinkResult, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return SkipSelf, newError("cannot absolutize source %s: %v", src, err)
	}
	if resolved, err2 := filepath.EvalSymlinks(src); err2 == nil {
		src = resolved
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return SkipSelf, newError("cannot create %s: %v", filepath.Dir(dst), err)
	}

	info, lerr := os.Lstat(dst)
	exists := lerr == nil
	isLink := exists && info.Mode()&fs.ModeSymlink != 0

	if exists && !isLink {
		return SkipRegular, nil
	}
	if isLink {
		if resolved, err2 := filepath.EvalSymlinks(dst); err2 == nil && resolved == src {
			return SkipSame, nil
		}
		//broken or different target, replace below
	}
	if abs, err2 := filepath.Abs(dst); err2 == nil && abs == src {
		return SkipSelf, nil
	}
	if exists {
		if err := os.Remove(dst); err != nil {
			return SkipSelf, newError("cannot remove stale link %s: %v", dst, err)
		}
	}
	if err := os.Symlink(src, dst); err != nil {
		return SkipSelf, newError("cannot link %s -> %s: %v", dst, src, err)
	}
	return Linked, nil
}

// A DvscfHit is the chosen dvscf source file for one q-point.
type DvscfHit struct {
	IQ    int
	IPert int
	Path  string
}

// dvscfSourceRes are the accepted source spellings, in match order. All
// capture iq first; the two-group forms capture ipert second.
func dvscfSourceRes(prefix string) []*regexp.Regexp {
	p := regexp.QuoteMeta(prefix)
	return []*regexp.Regexp{
		regexp.MustCompile(`^` + p + `\.dvscf(\d+)_(\d+)$`),
		regexp.MustCompile(`^` + p + `\.` + p + `\.dvscf(\d+)_(\d+)$`),
		regexp.MustCompile(`^` + p + `\.dvscf(\d+)$`),
		regexp.MustCompile(`^` + p + `\.` + p + `\.dvscf(\d+)$`),
	}
}

// excludeRe matches the normalized destination names, which must never
// be picked up again as sources.
func excludeRe(prefix string) *regexp.Regexp {
	p := regexp.QuoteMeta(prefix)
	return regexp.MustCompile(`^` + p + `\.dvscf(\d+)_1$|^` + p + `\.dvscf_q(\d+)$`)
}

// parseDvscfName classifies name as a dvscf source, returning iq, ipert
// and ok. Single-group spellings count as ipert 1.
func parseDvscfName(prefix, name string, sources []*regexp.Regexp, exclude *regexp.Regexp) (int, int, bool) {
	if exclude.MatchString(name) {
		return 0, 0, false
	}
	for _, re := range sources {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		iq, _ := strconv.Atoi(m[1])
		ipert := 1
		if len(m) > 2 && m[2] != "" {
			ipert, _ = strconv.Atoi(m[2])
		}
		return iq, ipert, true
	}
	return 0, 0, false
}

// FindDvscf walks roots for dvscf source files and keeps one per
// q-point: ipert 1 when available, else the smallest ipert seen.
func FindDvscf(prefix string, roots []string) (map[int]DvscfHit, error) {
	sources := dvscfSourceRes(prefix)
	exclude := excludeRe(prefix)
	hits := make(map[int]DvscfHit)
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			iq, ipert, ok := parseDvscfName(prefix, d.Name(), sources, exclude)
			if !ok {
				return nil
			}
			best, seen := hits[iq]
			switch {
			case !seen:
				hits[iq] = DvscfHit{IQ: iq, IPert: ipert, Path: path}
			case best.IPert != 1 && ipert == 1:
				hits[iq] = DvscfHit{IQ: iq, IPert: ipert, Path: path}
			case best.IPert != 1 && ipert < best.IPert:
				hits[iq] = DvscfHit{IQ: iq, IPert: ipert, Path: path}
			}
			return nil
		})
		if err != nil {
			return nil, newError("walking %s: %v", root, err)
		}
	}
	return hits, nil
}

// Link performs the whole layout: dyn files from runDir into dvscfDir
// as PREFIX.dyn_qN, then one dvscf source per q-point linked under both
// destination conventions. Progress goes to logger when non-nil.
func Link(prefix, runDir, dvscfDir string, logger *log.Logger) error {
	logf := func(format string, a ...interface{}) {
		if logger != nil {
			logger.Printf(format, a...)
		}
	}

	dynPat := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\.dyn(\d+)$`)
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return newError("cannot read %s: %v", runDir, err)
	}
	var ndyn int
	for _, e := range entries {
		m := dynPat.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		ndyn++
		dst := filepath.Join(dvscfDir, fmt.Sprintf("%s.dyn_q%s", prefix, m[1]))
		res, err := SafeSymlink(filepath.Join(runDir, e.Name()), dst)
		if err != nil {
			return err
		}
		logf("[%s] %s", res, dst)
	}
	if ndyn == 0 {
		return newError("no %s.dynN files found in %s", prefix, runDir)
	}
	logf("[info] found %d dyn files", ndyn)

	roots := []string{
		dvscfDir, //destination names are excluded as sources, so this is safe
		filepath.Join(runDir, "tmp", "_ph0"),
		filepath.Join(runDir, "out", "_ph0"),
	}
	hits, err := FindDvscf(prefix, roots)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		return newError("no dvscf source files found under %v", roots)
	}
	iqs := make([]int, 0, len(hits))
	for iq := range hits {
		iqs = append(iqs, iq)
	}
	sort.Ints(iqs)
	logf("[info] found dvscf q-points: %v", iqs)

	for _, iq := range iqs {
		src := hits[iq].Path
		for _, dst := range []string{
			filepath.Join(dvscfDir, fmt.Sprintf("%s.dvscf%d_1", prefix, iq)),
			filepath.Join(dvscfDir, fmt.Sprintf("%s.dvscf_q%d", prefix, iq)),
		} {
			res, err := SafeSymlink(src, dst)
			if err != nil {
				return err
			}
			logf("[%s] %s", res, dst)
		}
	}
	logf("[done] links created safely")
	return nil
}
