package fastqio

import (
	"strconv"
	"strings"

	"figaro/internal/ferrors"
)

// Metadata is the parsed form of a FASTQ metadata line, split into the
// instrument-identifying equipment fields and the per-read fields, following
// fastqHandler.py's ReadMetadataLine.
type Metadata struct {
	InstrumentName string
	RunID          string
	FlowcellID     string
	TileNumber     int
	LaneNumber     int
	XCoordinate    int
	YCoordinate    int

	Direction      int
	Filtered       bool
	ControlBits    int
	ControlBitsOdd bool
	Index          string
}

// ParseMetadata parses a FASTQ metadata line under full validation. It
// returns a *ferrors.FormatError for any structurally malformed field, and
// for an odd ControlBits value only when fullValidation is set — otherwise
// the oddness is surfaced via ControlBitsOdd for the caller to log as a
// warning, matching the "log and continue unless fullValidation" rule.
func ParseMetadata(path, line string, fullValidation bool) (Metadata, error) {
	var md Metadata

	line = strings.TrimPrefix(line, "@")
	parts := strings.SplitN(line, " ", 2)
	if len(parts) != 2 {
		return md, &ferrors.FormatError{Path: path, Detail: "metadata line missing equipment/read-info separator"}
	}
	equipment := strings.Split(parts[0], ":")
	readInfo := strings.Split(parts[1], ":")

	if len(equipment) != 7 {
		return md, &ferrors.FormatError{Path: path, Detail: "equipment info must have 7 colon-separated fields"}
	}
	md.InstrumentName = equipment[0]
	md.RunID = equipment[1]
	md.FlowcellID = equipment[2]

	ints, err := parseInts(equipment[3:])
	if err != nil {
		return md, &ferrors.FormatError{Path: path, Detail: "equipment info: " + err.Error()}
	}
	md.TileNumber, md.LaneNumber, md.XCoordinate, md.YCoordinate = ints[0], ints[1], ints[2], ints[3]

	if len(readInfo) != 4 {
		return md, &ferrors.FormatError{Path: path, Detail: "read info must have 4 colon-separated fields"}
	}
	direction, err := strconv.Atoi(readInfo[0])
	if err != nil || (direction != 1 && direction != 2) {
		return md, &ferrors.FormatError{Path: path, Detail: "read info direction must be 1 or 2"}
	}
	md.Direction = direction

	switch readInfo[1] {
	case "Y":
		md.Filtered = true
	case "N":
		md.Filtered = false
	default:
		return md, &ferrors.FormatError{Path: path, Detail: "read info filtered flag must be Y or N"}
	}

	controlBits, err := strconv.Atoi(readInfo[2])
	if err != nil {
		return md, &ferrors.FormatError{Path: path, Detail: "read info controlBits must be an integer"}
	}
	md.ControlBits = controlBits
	md.ControlBitsOdd = controlBits%2 != 0
	if md.ControlBitsOdd && fullValidation {
		return md, &ferrors.FormatError{Path: path, Detail: "controlBits must be even under full validation"}
	}

	md.Index = readInfo[3]
	return md, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
