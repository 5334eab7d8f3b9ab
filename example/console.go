package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gurux/gxextron-go"
	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	historyFileName = ".gxextron_history"
	historySize     = 500
)

// lineEditor reads console lines with readline on a terminal and with a
// scanner otherwise.
type lineEditor struct {
	rl      *readline.Instance
	scanner *bufio.Scanner
}

func newLineEditor() *lineEditor {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &lineEditor{scanner: bufio.NewScanner(os.Stdin)}
	}
	home, _ := os.UserHomeDir()
	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            filepath.Join(home, historyFileName),
		HistoryLimit:           historySize,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return &lineEditor{scanner: bufio.NewScanner(os.Stdin)}
	}
	return &lineEditor{rl: rl}
}

func (le *lineEditor) getLine(prompt string) (string, error) {
	if le.rl == nil {
		fmt.Print(prompt)
		if !le.scanner.Scan() {
			if err := le.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return le.scanner.Text(), nil
	}
	le.rl.SetPrompt(prompt)
	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

func (le *lineEditor) close() {
	if le.rl != nil {
		le.rl.Close()
	}
}

// console sends each entered line to the device as a raw command.
// Lines starting with a colon are console commands.
func console(ctx context.Context, d *gxextron.GXExtron, deviceType gxextron.DeviceType) {
	le := newLineEditor()
	defer le.close()
	fmt.Println("Type SIS commands, :info, :volume, :input or :quit.")
	for {
		line, err := le.getLine(d.GetName() + "> ")
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit":
			return
		case ":info":
			info, err := d.QueryDeviceInformation(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			fmt.Printf("Model: %s\nFirmware: %s\nPart number: %s\n", info.ModelName, info.FirmwareVersion, info.PartNumber)
		case ":volume":
			if deviceType != gxextron.DeviceTypeSurroundSoundProcessor {
				fmt.Fprintln(os.Stderr, "error: volume is available only on surround sound processors")
				continue
			}
			v, err := gxextron.NewSurroundSoundProcessor(d).GetVolume(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			fmt.Printf("Volume: %.2f\n", v)
		case ":input":
			in, err := viewInput(ctx, d, deviceType)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			fmt.Printf("Input: %d\n", in)
		default:
			reply, err := d.RunCommand(ctx, line)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			fmt.Println(reply)
		}
	}
}

func viewInput(ctx context.Context, d *gxextron.GXExtron, deviceType gxextron.DeviceType) (int, error) {
	switch deviceType {
	case gxextron.DeviceTypeSurroundSoundProcessor:
		return gxextron.NewSurroundSoundProcessor(d).ViewInput(ctx)
	case gxextron.DeviceTypeHDMISwitcher:
		return gxextron.NewHDMISwitcher(d).ViewInput(ctx)
	}
	return 0, fmt.Errorf("device type %s has no inputs", deviceType)
}
