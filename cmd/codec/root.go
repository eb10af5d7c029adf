package codec

import (
	"github.com/ValentinKolb/mediaser/cmd/util"
	"github.com/spf13/cobra"
)

var (
	// CodecCommands groups the commands that run a single serializer
	CodecCommands = &cobra.Command{
		Use:   "codec",
		Short: "Encode, decode and convert media content",
	}
)

func init() {
	// Add Commands
	CodecCommands.AddCommand(encodeCmd)
	CodecCommands.AddCommand(decodeCmd)
	CodecCommands.AddCommand(convertCmd)

	// Add Flags
	util.SetupCodecFlags(CodecCommands)

	key := "input"
	CodecCommands.PersistentFlags().StringP(key, "i", "", util.WrapString("Path of the input file (- for stdin). decode and convert read stdin if empty, encode uses the standard item"))
	key = "output"
	CodecCommands.PersistentFlags().StringP(key, "o", "-", util.WrapString("Path of the output file (- for stdout)"))
}
