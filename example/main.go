package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Gurux/gxcommon-go"
	"github.com/Gurux/gxextron-go"
	"golang.org/x/text/language"
)

var (
	configPath = flag.String("c", "", "YAML configuration file.")
	host       = flag.String("h", "", "Host name")
	port       = flag.Int("p", 0, "Host port")
	password   = flag.String("P", "", "Password")
	device     = flag.String("d", "", "Device type: surround_sound_processor or hdmi_switcher.")
	message    = flag.String("m", "", "Send one command and exit.")
	t          = flag.String("t", "", "Trace level.")
	lang       = flag.String("lang", "", "Used language.")
)

func CurrentLanguage() language.Tag {
	langEnv := os.Getenv("LANG")
	if langEnv == "" {
		return language.AmericanEnglish
	}
	langEnv = strings.Split(langEnv, ".")[0]
	tag, err := language.Parse(langEnv)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func main() {
	flag.Parse()
	cfg := &Config{DeviceType: gxextron.DeviceTypeUnknown.String()}
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
	}
	// Flags override the configuration file.
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *password != "" {
		cfg.Password = *password
		cfg.Login = true
	}
	if *device != "" {
		cfg.DeviceType = *device
	}
	if *t != "" {
		cfg.Trace = *t
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	if cfg.Host == "" || cfg.Port == 0 {
		flag.PrintDefaults()
		return
	}
	deviceType, err := gxextron.DeviceTypeParse(cfg.DeviceType)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}

	d := gxextron.NewGXExtron(cfg.Host, cfg.Port, cfg.Password)
	tag := CurrentLanguage()
	if cfg.Language != "" {
		if tag, err = language.Parse(cfg.Language); err != nil {
			fmt.Fprintln(os.Stderr, "error parsing language:", err)
			return
		}
	}
	d.Localize(tag)
	cfg.apply(d)

	d.SetOnError(func(c *gxextron.GXExtron, err error) {
		fmt.Fprintln(os.Stderr, "error:", err)
	})

	d.SetOnStateChange(func(c *gxextron.GXExtron, state gxextron.ConnectionState) {
		fmt.Printf("Connection state change : %s (%s)\n", state.String(), state.MediaState().String())
	})

	d.SetOnTrace(func(c *gxextron.GXExtron, e gxcommon.TraceEventArgs) {
		fmt.Printf("Trace: %s\n", e.String())
	})

	if cfg.Trace != "" {
		tl, err := gxcommon.TraceLevelParse(cfg.Trace)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
		if err = d.SetTrace(tl); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
	}
	if err = d.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	fmt.Printf("Host name: %s\n", d.GetHostName())
	fmt.Printf("Host port: %d\n", d.GetPort())
	fmt.Printf("Device type: %s\n", deviceType.String())
	fmt.Printf("Trace level %s\n", d.GetTrace().String())

	ctx := context.Background()
	if err = d.Connect(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		return
	}
	//Close the connection.
	defer func() {
		if err := d.Disconnect(); err != nil {
			fmt.Fprintln(os.Stderr, "close failed:", err)
		}
	}()

	if *message != "" {
		reply, err := d.RunCommand(ctx, *message)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error returned:", err)
			return
		}
		fmt.Printf("Reply: %s\n", reply)
		return
	}
	console(ctx, d, deviceType)
	fmt.Printf("Exit\n")
}
