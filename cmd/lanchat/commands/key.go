package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// byteInput is a value given as text, hex or a list of decimal bytes.
type byteInput struct {
	text, hex, dec string
}

func (b *byteInput) register(cmd *cobra.Command, name, what string) {
	cmd.Flags().StringVar(&b.text, name, "", what+" as text")
	cmd.Flags().StringVar(&b.hex, name+"-hex", "", what+" as hex")
	cmd.Flags().StringVar(&b.dec, name+"-bytes", "", what+" as decimal bytes 0-255, comma or space separated")
	cmd.MarkFlagsMutuallyExclusive(name, name+"-hex", name+"-bytes")
}

func (b *byteInput) bytes() ([]byte, error) {
	switch {
	case b.text != "":
		return []byte(b.text), nil
	case b.hex != "":
		return hex.DecodeString(b.hex)
	case b.dec != "":
		return parseDecimalBytes(b.dec)
	}
	return nil, errors.New("no value given")
}

func parseDecimalBytes(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("byte %q must be between 0 and 255", f)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
