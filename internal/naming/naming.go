// Package naming maps FASTQ filenames to SampleDescriptors under one of
// several labeled conventions, ported from figaro/fileNamingStandards.py.
package naming

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"figaro/internal/ferrors"
)

// Descriptor identifies one FASTQ file's sample membership, matching the
// SampleDescriptor data model in §3.
type Descriptor struct {
	FilePath     string
	Group        string
	SampleNumber string
	Direction    int
}

// SameSample reports equality by (group, sampleNumber), ignoring direction.
func (d Descriptor) SameSample(other Descriptor) bool {
	return d.Group == other.Group && d.SampleNumber == other.SampleNumber
}

// Equal is full structural equality over (group, sampleNumber, direction).
func (d Descriptor) Equal(other Descriptor) bool {
	return d.SameSample(other) && d.Direction == other.Direction
}

// Standard parses one filename into a Descriptor under a labeled naming
// convention.
type Standard interface {
	Parse(path string) (Descriptor, error)
}

var expectedEndings = []string{".fastq.gz", ".fq.gz", ".fastq", ".fq"}

// aliases maps every case-insensitive spelling seen in the original to its
// canonical Standard constructor key.
var aliases = map[string]string{
	"zymo":                      "zymo",
	"zymoservices":              "zymo",
	"zymoservicesnamingstandard": "zymo",
	"illumina":                  "illumina",
	"keriksson":                 "keriksson",
	"kerikssonnamingstandard":   "keriksson",
	"nononsense":                "nononsense",
	"fvieira":                   "fvieira",
	"yzhang":                    "yzhang",
}

// Load resolves a user-supplied alias (case-insensitive) to a Standard, or
// returns an *ferrors.ArgumentError for an unrecognized one.
func Load(alias string) (Standard, error) {
	key, ok := aliases[strings.ToLower(alias)]
	if !ok {
		return nil, &ferrors.ArgumentError{Argument: "fileNamingStandard", Detail: "unknown naming convention: " + alias}
	}
	switch key {
	case "zymo":
		return zymoStandard{}, nil
	case "illumina":
		return illuminaStandard{}, nil
	case "keriksson":
		return kErikssonStandard{}, nil
	case "nononsense":
		return noNonsenseStandard{}, nil
	case "fvieira":
		return fVieiraStandard{}, nil
	case "yzhang":
		return yZhangStandard{}, nil
	}
	panic("unreachable")
}

func stripExtension(name string) string {
	lower := strings.ToLower(name)
	for _, ending := range expectedEndings {
		if strings.HasSuffix(lower, ending) {
			return name[:len(name)-len(ending)]
		}
	}
	return name
}

func hasRecognizedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ending := range expectedEndings {
		if strings.HasSuffix(lower, ending) {
			return true
		}
	}
	return false
}

func stripLeadingLetter(s string) string {
	if len(s) > 0 && (s[0] == 'R' || s[0] == 'r' || s[0] == 'S' || s[0] == 's') {
		return s[1:]
	}
	return s
}

// noNonsenseStandard is the default convention: `_R?([12])(_\d\d\d)?$`
// against the extension-stripped basename.
type noNonsenseStandard struct{}

var noNonsenseRegex = regexp.MustCompile(`_R?([12])(_\d\d\d)?$`)

func (noNonsenseStandard) Parse(path string) (Descriptor, error) {
	base := stripExtension(filepath.Base(path))
	loc := noNonsenseRegex.FindStringSubmatchIndex(base)
	if loc == nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "does not match nononsense convention: " + base}
	}
	direction, err := strconv.Atoi(base[loc[2]:loc[3]])
	if err != nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "bad direction digit in " + base}
	}
	prefix := base[:loc[0]]
	return Descriptor{FilePath: path, Group: prefix, SampleNumber: prefix, Direction: direction}, nil
}

// zymoStandard splits the extension-stripped basename's leading dot-segment
// into exactly 3 underscore-separated parts: group, sample, direction.
type zymoStandard struct{}

func (zymoStandard) Parse(path string) (Descriptor, error) {
	base := filepath.Base(path)
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	parts := strings.Split(base, "_")
	if len(parts) != 3 {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "zymo convention requires exactly 3 underscore fields: " + base}
	}
	direction, err := strconv.Atoi(stripLeadingLetter(parts[2]))
	if err != nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "bad direction in " + base}
	}
	return Descriptor{FilePath: path, Group: parts[0], SampleNumber: parts[1], Direction: direction}, nil
}

// illuminaStandard: group = all but last 4 underscore fields, sample = 4th
// from last stripped of leading 'S', direction = 2nd from last stripped of
// leading 'R'.
type illuminaStandard struct{}

func (illuminaStandard) Parse(path string) (Descriptor, error) {
	base := stripExtension(filepath.Base(path))
	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "illumina convention requires at least 4 underscore fields: " + base}
	}
	n := len(parts)
	sampleStr := stripLeadingLetter(parts[n-4])
	sampleNumber, err := strconv.Atoi(sampleStr)
	if err != nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "bad sample number in " + base}
	}
	directionStr := stripLeadingLetter(parts[n-2])
	direction, err := strconv.Atoi(directionStr)
	if err != nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "bad direction in " + base}
	}
	group := strings.Join(parts[:n-4], "_")
	return Descriptor{FilePath: path, Group: group, SampleNumber: strconv.Itoa(sampleNumber), Direction: direction}, nil
}

// kErikssonStandard splits the filename on '.' into [group, sampleAndDirection, ...]
// then sampleAndDirection on '_' into sample + direction.
type kErikssonStandard struct{}

func (kErikssonStandard) Parse(path string) (Descriptor, error) {
	base := filepath.Base(path)
	dotParts := strings.SplitN(base, ".", 3)
	if len(dotParts) < 2 {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "keriksson convention requires a dot-separated group: " + base}
	}
	group := dotParts[0]
	sampleAndDirection := strings.Split(dotParts[1], "_")
	if len(sampleAndDirection) < 2 {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "keriksson convention requires sample_direction: " + base}
	}
	sample := sampleAndDirection[0]
	direction, err := strconv.Atoi(stripLeadingLetter(sampleAndDirection[1]))
	if err != nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "bad direction in " + base}
	}
	return Descriptor{FilePath: path, Group: group, SampleNumber: sample, Direction: direction}, nil
}

// fVieiraStandard: group is always "default"; basename splits by '_' into
// sample + direction.
type fVieiraStandard struct{}

func (fVieiraStandard) Parse(path string) (Descriptor, error) {
	base := stripExtension(filepath.Base(path))
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "fvieira convention requires sample_direction: " + base}
	}
	direction, err := strconv.Atoi(stripLeadingLetter(parts[len(parts)-1]))
	if err != nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "bad direction in " + base}
	}
	sample := strings.Join(parts[:len(parts)-1], "_")
	return Descriptor{FilePath: path, Group: "default", SampleNumber: sample, Direction: direction}, nil
}

// yZhangStandard: group is always "default"; basename splits by '_' into
// exactly 3 parts, sample + seqType (discarded) + direction.
type yZhangStandard struct{}

func (yZhangStandard) Parse(path string) (Descriptor, error) {
	base := stripExtension(filepath.Base(path))
	parts := strings.Split(base, "_")
	if len(parts) != 3 {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "yzhang convention requires exactly 3 underscore fields: " + base}
	}
	direction, err := strconv.Atoi(stripLeadingLetter(parts[2]))
	if err != nil {
		return Descriptor{}, &ferrors.ArgumentError{Argument: "filename", Detail: "bad direction in " + base}
	}
	return Descriptor{FilePath: path, Group: "default", SampleNumber: parts[0], Direction: direction}, nil
}

// PairTable groups parsed descriptors by sample into forward/reverse pairs,
// reporting unpaired files, matching getSamplePairTableFromFolder.
type PairTable struct {
	Forward  []Descriptor
	Pairs    map[string][2]Descriptor
	Unpaired []Descriptor
}

func sampleKey(d Descriptor) string { return d.Group + "\x00" + d.SampleNumber }

// Reverse returns the reverse-direction mate paired with fwd, if any.
func (t PairTable) Reverse(fwd Descriptor) (Descriptor, bool) {
	pair, ok := t.Pairs[sampleKey(fwd)]
	if !ok {
		return Descriptor{}, false
	}
	return pair[1], true
}

// Enumerate lists dir for recognized FASTQ extensions, parses each with
// standard, and pairs forward/reverse descriptors by (group, sampleNumber).
// The returned Forward slice preserves directory-enumeration order and is
// the canonical sampleOrder used by the aggregator (§4.5).
func Enumerate(dir string, standard Standard) (PairTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return PairTable{}, &ferrors.InputNotFound{Path: dir, Err: err}
		}
		return PairTable{}, err
	}

	table := PairTable{Pairs: make(map[string][2]Descriptor)}
	byKey := make(map[string][2]bool)
	descriptors := make(map[string][2]Descriptor)

	for _, entry := range entries {
		if entry.IsDir() || !hasRecognizedExtension(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		desc, err := standard.Parse(path)
		if err != nil {
			return PairTable{}, err
		}
		if desc.Direction != 1 && desc.Direction != 2 {
			return PairTable{}, &ferrors.ArgumentError{Argument: "filename", Detail: "direction must be 1 or 2 for " + path}
		}
		key := sampleKey(desc)
		slot := byKey[key]
		pair := descriptors[key]
		if desc.Direction == 1 {
			slot[0] = true
			pair[0] = desc
			table.Forward = append(table.Forward, desc)
		} else {
			slot[1] = true
			pair[1] = desc
		}
		byKey[key] = slot
		descriptors[key] = pair
	}

	for key, slot := range byKey {
		pair := descriptors[key]
		switch {
		case slot[0] && slot[1]:
			table.Pairs[key] = pair
		case slot[0]:
			table.Unpaired = append(table.Unpaired, pair[0])
		case slot[1]:
			table.Unpaired = append(table.Unpaired, pair[1])
		}
	}

	return table, nil
}
