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
)

// surroundInputCount is the number of inputs of a surround sound processor.
const surroundInputCount = 5

// SurroundSoundProcessor controls an Extron surround sound processor.
type SurroundSoundProcessor struct {
	device Commander
}

// NewSurroundSoundProcessor creates a surround sound processor that sends
// its commands through device.
func NewSurroundSoundProcessor(device Commander) *SurroundSoundProcessor {
	return &SurroundSoundProcessor{device: device}
}

// GetDevice returns the commander used by the processor.
func (g *SurroundSoundProcessor) GetDevice() Commander {
	return g.device
}

// GetDeviceType returns DeviceTypeSurroundSoundProcessor.
func (g *SurroundSoundProcessor) GetDeviceType() DeviceType {
	return DeviceTypeSurroundSoundProcessor
}

// GetInputCount returns the number of selectable inputs.
func (g *SurroundSoundProcessor) GetInputCount() int {
	return surroundInputCount
}

// ViewInput returns the selected input.
func (g *SurroundSoundProcessor) ViewInput(ctx context.Context) (int, error) {
	return queryInt(ctx, g.device, "$", 3)
}

// SelectInput selects the input.
func (g *SurroundSoundProcessor) SelectInput(ctx context.Context, input int) error {
	_, err := g.device.RunCommand(ctx, strconv.Itoa(input)+"$")
	return err
}

// Mute mutes the audio output.
func (g *SurroundSoundProcessor) Mute(ctx context.Context) error {
	_, err := g.device.RunCommand(ctx, "1Z")
	return err
}

// Unmute unmutes the audio output.
func (g *SurroundSoundProcessor) Unmute(ctx context.Context) error {
	_, err := g.device.RunCommand(ctx, "0Z")
	return err
}

// IsMuted returns true if the audio output is muted.
func (g *SurroundSoundProcessor) IsMuted(ctx context.Context) (bool, error) {
	reply, err := g.device.RunCommand(ctx, "Z")
	if err != nil {
		return false, err
	}
	return reply == "Amt1", nil
}

// GetVolumeLevel returns the volume level from 0 to 100.
func (g *SurroundSoundProcessor) GetVolumeLevel(ctx context.Context) (int, error) {
	return queryInt(ctx, g.device, "V", 3)
}

// GetVolume returns the volume level scaled from 0 to 1.
func (g *SurroundSoundProcessor) GetVolume(ctx context.Context) (float64, error) {
	level, err := g.GetVolumeLevel(ctx)
	if err != nil {
		return 0, err
	}
	return float64(level) / 100, nil
}

// SetVolumeLevel sets the volume level from 0 to 100.
func (g *SurroundSoundProcessor) SetVolumeLevel(ctx context.Context, level int) error {
	_, err := g.device.RunCommand(ctx, strconv.Itoa(level)+"V")
	return err
}

// IncrementVolume increases the volume by one step.
func (g *SurroundSoundProcessor) IncrementVolume(ctx context.Context) error {
	_, err := g.device.RunCommand(ctx, "+V")
	return err
}

// DecrementVolume decreases the volume by one step.
func (g *SurroundSoundProcessor) DecrementVolume(ctx context.Context) error {
	_, err := g.device.RunCommand(ctx, "-V")
	return err
}

// GetTemperature returns the internal temperature of the device.
func (g *SurroundSoundProcessor) GetTemperature(ctx context.Context) (int, error) {
	return queryInt(ctx, g.device, "20S", 6)
}
