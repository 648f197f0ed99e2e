// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/urfave/cli/v3"
)

// AccessKey resolves the access key for a command. The --access-key flag is
// checked first; its value sources already cover PESTO_ACCESS_KEY and the
// config file. When nothing is set and stdin is a terminal the user is
// prompted, otherwise an empty key is returned and the request goes out
// unauthenticated.
func AccessKey(cmd *cli.Command) (string, error) {
	if key := cmd.String("access-key"); key != "" {
		return key, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", nil
	}

	return promptAccessKey()
}

// promptAccessKey prompts interactively for an access key without echoing
// input. The prompt goes to stderr because stdout carries document output.
func promptAccessKey() (string, error) {
	var key []byte
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(syscall.Stdin), oldState) //nolint:errcheck

	fmt.Fprint(os.Stderr, "Enter access key: ")
	defer fmt.Fprint(os.Stderr, "\r")

loop:
	for {
		select {
		case <-signalChannel:
			fmt.Fprintln(os.Stderr, "\nInterrupt received, exiting...")
			return "", fmt.Errorf("interrupted")
		default:
			var buf [1]byte
			n, readErr := syscall.Read(syscall.Stdin, buf[:])
			if readErr != nil || n == 0 {
				break loop
			}
			if buf[0] == '\n' || buf[0] == '\r' {
				break loop
			}
			if buf[0] == 127 || buf[0] == 8 { // Handle backspace
				if len(key) > 0 {
					key = key[:len(key)-1]
					fmt.Fprint(os.Stderr, "\b \b")
				}
			} else {
				key = append(key, buf[0])
				fmt.Fprint(os.Stderr, "*")
			}
		}
	}
	fmt.Fprintln(os.Stderr)

	return string(key), nil
}
