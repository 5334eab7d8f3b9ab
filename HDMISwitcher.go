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
	"context"
	"strconv"
	"strings"
)

// HDMISwitcher controls an Extron HDMI switcher.
type HDMISwitcher struct {
	device Commander
}

// NewHDMISwitcher creates a HDMI switcher that sends its commands through device.
func NewHDMISwitcher(device Commander) *HDMISwitcher {
	return &HDMISwitcher{device: device}
}

// GetDevice returns the commander used by the switcher.
func (g *HDMISwitcher) GetDevice() Commander {
	return g.device
}

// GetDeviceType returns DeviceTypeHDMISwitcher.
func (g *HDMISwitcher) GetDeviceType() DeviceType {
	return DeviceTypeHDMISwitcher
}

// ViewInput returns the selected input.
func (g *HDMISwitcher) ViewInput(ctx context.Context) (int, error) {
	return queryInt(ctx, g.device, "!", 0)
}

// SelectInput selects the input.
func (g *HDMISwitcher) SelectInput(ctx context.Context, input int) error {
	_, err := g.device.RunCommand(ctx, strconv.Itoa(input)+"!")
	return err
}

// InputCountForModel returns the number of inputs of the switcher model.
// The first word of the model name tells the size, for example "SW4 HD 4K".
func InputCountForModel(modelName string) int {
	fields := strings.Fields(modelName)
	var sw string
	if len(fields) != 0 {
		sw = fields[0]
	}
	switch sw {
	case "SW2":
		return 2
	case "SW4":
		return 4
	case "SW6":
		return 6
	default:
		return 8
	}
}
