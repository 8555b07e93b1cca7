// ABOUTME: Human-readable device listings
// ABOUTME: Prints output devices, debug tables and handles the interactive prompt
package device

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned for an index that is not an output device
var ErrInvalidSelection = errors.New("invalid device selection")

// PromptText is shown before reading a device index
const PromptText = "Select output device index (Enter for default): "

// WriteListing prints the output devices with default markers.
// defaultIdx < 0 means no default is known.
func WriteListing(w io.Writer, devices []Descriptor, defaultIdx int) {
	if len(devices) == 0 {
		fmt.Fprintln(w, "No audio output devices found.")
		return
	}

	fmt.Fprintln(w, "Available audio output devices:")
	for _, d := range devices {
		extra := ""
		if d.DefaultSampleRate > 0 {
			extra = fmt.Sprintf(", default sample rate: %d", int(d.DefaultSampleRate))
		}
		mark := ""
		if defaultIdx >= 0 && d.Index == defaultIdx {
			mark = "(default)"
		}
		fmt.Fprintf(w, "  [%2d] %s - output channels: %d%s %s\n", d.Index, d.Name, d.MaxOutputChannels, extra, mark)
	}
}

// WriteDebug prints every device, marking the selected index with '<'
func WriteDebug(w io.Writer, snap Snapshot, sel *Selection) {
	selected := -1
	if sel != nil {
		selected = sel.Index
	}

	fmt.Fprintln(w, "devices: ")
	for _, d := range snap.Devices {
		mark := " "
		if d.Index == selected {
			mark = "<"
		}
		fmt.Fprintf(w, "%s %2d %s (%d in, %d out)\n", mark, d.Index, d.Name, d.MaxInputChannels, d.MaxOutputChannels)
	}

	if sel == nil {
		fmt.Fprintln(w, "select none")
		return
	}
	fmt.Fprintf(w, "select %d\n", selected)
}

// ParseChoice interprets a line typed at the prompt.
// ok is false for empty or non-numeric input; err wraps ErrInvalidSelection
// for a number that is not an output device index, which is still returned.
func ParseChoice(line string, devices []Descriptor) (idx int, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return -1, false, nil
	}

	n, convErr := strconv.Atoi(line)
	if convErr != nil {
		return -1, false, nil
	}

	for _, d := range devices {
		if d.Index == n {
			return n, true, nil
		}
	}
	return n, false, fmt.Errorf("%w: index %d", ErrInvalidSelection, n)
}

// Prompt asks for a device index and returns the chosen one.
// Empty or invalid input falls back to defaultIdx, or to the
// first listed device when there is no default. chosen is false when the
// user accepted the default.
func Prompt(in io.Reader, out io.Writer, devices []Descriptor, defaultIdx int) (idx int, chosen bool) {
	fallback := defaultIdx
	if fallback < 0 && len(devices) > 0 {
		fallback = devices[0].Index
	}

	fmt.Fprint(out, PromptText)
	line, _ := bufio.NewReader(in).ReadString('\n')

	n, ok, err := ParseChoice(line, devices)
	if err != nil {
		fmt.Fprintf(out, "index %d invalid, using default output.\n", n)
		return fallback, false
	}
	if !ok {
		return fallback, false
	}
	return n, true
}
