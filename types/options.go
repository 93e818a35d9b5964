package types

import (
	"fmt"
	"sort"
	"strings"
)

// UnwrapMethod selects the UV parametrisation used for each island
type UnwrapMethod uint8

const (
	UnwrapAngleBased UnwrapMethod = iota
	UnwrapConformal
	UnwrapKeepExisting
)

var UnwrapNameMap = map[string]UnwrapMethod{
	"angle-based":   UnwrapAngleBased,
	"angle_based":   UnwrapAngleBased,
	"conformal":     UnwrapConformal,
	"keep-existing": UnwrapKeepExisting,
	"keep_existing": UnwrapKeepExisting,
	"keep":          UnwrapKeepExisting,
}

func (um UnwrapMethod) String() string {
	return [...]string{"angle-based", "conformal", "keep-existing"}[um]
}

func NewUnwrapMethod(label string) (um UnwrapMethod, err error) {
	var ok bool
	if um, ok = UnwrapNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = unknownName("unwrap method", label, UnwrapNameMap)
	}
	return
}

// MarkerMode controls which wire edges produce alignment markers
type MarkerMode uint8

const (
	MarkersOff MarkerMode = iota
	MarkersSeam
	MarkersAuto
)

var MarkerNameMap = map[string]MarkerMode{
	"off":  MarkersOff,
	"none": MarkersOff,
	"seam": MarkersSeam,
	"auto": MarkersAuto,
}

func (mm MarkerMode) String() string {
	return [...]string{"off", "seam", "auto"}[mm]
}

func NewMarkerMode(label string) (mm MarkerMode, err error) {
	var ok bool
	if mm, ok = MarkerNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = unknownName("alignment marker mode", label, MarkerNameMap)
	}
	return
}

// OutputFormat selects the export artifact
type OutputFormat uint8

const (
	OutputSVG OutputFormat = iota
	OutputTiles
	OutputDXF
)

var OutputNameMap = map[string]OutputFormat{
	"svg":   OutputSVG,
	"tiles": OutputTiles,
	"pages": OutputTiles,
	"dxf":   OutputDXF,
}

func (of OutputFormat) String() string {
	return [...]string{"svg", "tiles", "dxf"}[of]
}

func NewOutputFormat(label string) (of OutputFormat, err error) {
	var ok bool
	if of, ok = OutputNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = unknownName("output format", label, OutputNameMap)
	}
	return
}

// AreaCorrection selects how flattened islands are rescaled to their pre-cut area
type AreaCorrection uint8

const (
	CorrectGlobal AreaCorrection = iota
	CorrectPerIsland
)

var CorrectionNameMap = map[string]AreaCorrection{
	"global": CorrectGlobal,
	"island": CorrectPerIsland,
}

func (ac AreaCorrection) String() string {
	return [...]string{"global", "island"}[ac]
}

func NewAreaCorrection(label string) (ac AreaCorrection, err error) {
	var ok bool
	if ac, ok = CorrectionNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = unknownName("area correction", label, CorrectionNameMap)
	}
	return
}

// BevelKind selects how seam vertices are separated during the cut
type BevelKind uint8

const (
	BevelSplit BevelKind = iota
	BevelOffset
)

var BevelNameMap = map[string]BevelKind{
	"split":  BevelSplit,
	"offset": BevelOffset,
}

func (bk BevelKind) String() string {
	return [...]string{"split", "offset"}[bk]
}

func NewBevelKind(label string) (bk BevelKind, err error) {
	var ok bool
	if bk, ok = BevelNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = unknownName("bevel", label, BevelNameMap)
	}
	return
}

func unknownName[T any](what, label string, names map[string]T) error {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown %s %q, expected one of %s", what, label, strings.Join(keys, ", "))
}
