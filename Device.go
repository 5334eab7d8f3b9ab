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

// Commander runs one SIS command and returns the reply.
// GXExtron implements Commander.
type Commander interface {
	RunCommand(ctx context.Context, command string) (string, error)
}

// DeviceInformation describes the connected device.
type DeviceInformation struct {
	ModelName       string
	FirmwareVersion string
	PartNumber      string
}

// QueryModelName returns the model name of the device.
func (g *GXExtron) QueryModelName(ctx context.Context) (string, error) {
	return g.RunCommand(ctx, "1I")
}

// QueryFirmwareVersion returns the firmware version of the device.
func (g *GXExtron) QueryFirmwareVersion(ctx context.Context) (string, error) {
	return g.RunCommand(ctx, "Q")
}

// QueryPartNumber returns the part number of the device.
func (g *GXExtron) QueryPartNumber(ctx context.Context) (string, error) {
	return g.RunCommand(ctx, "N")
}

// Reboot restarts the device.
func (g *GXExtron) Reboot(ctx context.Context) error {
	_, err := g.RunCommand(ctx, "\x1b1BOOT")
	return err
}

// QueryDeviceInformation reads model name, firmware version and part number.
func (g *GXExtron) QueryDeviceInformation(ctx context.Context) (DeviceInformation, error) {
	var ret DeviceInformation
	var err error
	if ret.ModelName, err = g.QueryModelName(ctx); err != nil {
		return ret, err
	}
	if ret.FirmwareVersion, err = g.QueryFirmwareVersion(ctx); err != nil {
		return ret, err
	}
	ret.PartNumber, err = g.QueryPartNumber(ctx)
	return ret, err
}

// queryInt runs the command and converts the reply to int after skipping
// the given number of leading characters.
func queryInt(ctx context.Context, c Commander, command string, skip int) (int, error) {
	reply, err := c.RunCommand(ctx, command)
	if err != nil {
		return 0, err
	}
	if len(reply) < skip {
		return 0, &ParseError{Command: command, Reply: reply, Err: strconv.ErrSyntax}
	}
	v, err := strconv.Atoi(strings.TrimSpace(reply[skip:]))
	if err != nil {
		return 0, &ParseError{Command: command, Reply: reply, Err: err}
	}
	return v, nil
}
