package gxextron

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"fmt"
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// DeviceType determines which kind of Extron device is connected.
type DeviceType int

const (
	// DeviceTypeUnknown is used when the device kind is not known.
	DeviceTypeUnknown DeviceType = iota
	// DeviceTypeSurroundSoundProcessor defines a surround sound processor.
	DeviceTypeSurroundSoundProcessor
	// DeviceTypeHDMISwitcher defines a HDMI matrix switcher.
	DeviceTypeHDMISwitcher
)

// DeviceTypeParse converts the given string into a DeviceType value.
//
// It returns the corresponding DeviceType constant if the string matches
// a known device type name, or an error if the input is invalid.
func DeviceTypeParse(value string) (DeviceType, error) {
	var ret DeviceType
	var err error
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "surround_sound_processor":
		ret = DeviceTypeSurroundSoundProcessor
	case "hdmi_switcher":
		ret = DeviceTypeHDMISwitcher
	case "unknown":
		ret = DeviceTypeUnknown
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the device type.
// It satisfies fmt.Stringer.
func (g DeviceType) String() string {
	var ret string
	switch g {
	case DeviceTypeSurroundSoundProcessor:
		ret = "surround_sound_processor"
	case DeviceTypeHDMISwitcher:
		ret = "hdmi_switcher"
	default:
		ret = "unknown"
	}
	return ret
}
