package vt

import "fmt"

// mode names one state of the escape-sequence scanner's state machine, laid
// out per the ECMA-48 / ANSI X3.64 control-sequence grammar (the same table
// alacritty's vte crate and xterm's parser both implement).
type mode uint8

const (
	modeGround mode = iota
	modeEscape
	modeEscapeIntermediate
	modeCSIEntry
	modeCSIParam
	modeCSIIntermediate
	modeCSIIgnore
	modeOSCString
	modeDCSEntry
	modeDCSParam
	modeDCSIntermediate
	modeDCSPassthrough
	modeDCSIgnore
	modeSOSPMApcString
	modeCount
)

var modeLabels = [modeCount]string{
	modeGround:              "ground",
	modeEscape:              "escape",
	modeEscapeIntermediate:  "escape-intermediate",
	modeCSIEntry:            "csi-entry",
	modeCSIParam:            "csi-param",
	modeCSIIntermediate:     "csi-intermediate",
	modeCSIIgnore:           "csi-ignore",
	modeOSCString:           "osc-string",
	modeDCSEntry:            "dcs-entry",
	modeDCSParam:            "dcs-param",
	modeDCSIntermediate:     "dcs-intermediate",
	modeDCSPassthrough:      "dcs-passthrough",
	modeDCSIgnore:           "dcs-ignore",
	modeSOSPMApcString:      "sos-pm-apc-string",
}

func (m mode) String() string {
	if m < modeCount {
		return modeLabels[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}
