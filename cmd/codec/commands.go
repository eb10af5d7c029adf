package codec

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/mediaser/cmd/util"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/media/fixtures"
	"github.com/ValentinKolb/mediaser/lib/token"
	"github.com/ValentinKolb/mediaser/lib/token/bintok"
	"github.com/ValentinKolb/mediaser/lib/token/jsontok"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
)

var (
	encodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "Encode media content read from a YAML fixture file",
		Long: `Encode media content read from a YAML fixture file.

Without --input the standard item is encoded, with --generate random items
are encoded instead. The items are written back to back to the output.`,
		Example: `  mediaser codec encode -i testdata/sample.yaml --serializer bin/manual -o items.bin
  mediaser codec encode --generate 10 --seed 7`,
		Args:    cobra.NoArgs,
		PreRunE: processCodecConfig,
		RunE:    runEncode,
	}
	decodeCmd = &cobra.Command{
		Use:   "decode",
		Short: "Decode media content and print it as YAML",
		Long: `Decode media content and print it as YAML.

The encoded stream carries no item count, so the number of items to read has
to be passed with --count. Trailing data after the last item is ignored.`,
		Example: `  mediaser codec encode --serializer gob | mediaser codec decode --serializer gob`,
		Args:    cobra.NoArgs,
		PreRunE: processCodecConfig,
		RunE:    runDecode,
	}
	convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "Convert a token stream between the JSON and the binary format",
		Long: `Convert a token stream between the JSON and the binary format.

The conversion works on tokens only: the content is not checked against the
media content model, so any JSON or binary token stream can be converted.`,
		Example: `  mediaser codec convert --from json --to bin -i items.json -o items.bin`,
		Args:    cobra.NoArgs,
		PreRunE: processCodecConfig,
		RunE:    runConvert,
	}
)

func init() {
	key := "generate"
	encodeCmd.Flags().Int(key, 0, util.WrapString("Encode this many generated items instead of reading the input"))
	key = "seed"
	encodeCmd.Flags().Int64(key, 1, util.WrapString("Seed for the generated items"))

	key = "count"
	decodeCmd.Flags().IntP(key, "n", 1, util.WrapString("Number of items to decode"))

	key = "from"
	convertCmd.Flags().String(key, jsontok.FormatName, util.WrapString("Token format of the input (json, bin)"))
	key = "to"
	convertCmd.Flags().String(key, bintok.FormatName, util.WrapString("Token format of the output (json, bin)"))
}

func processCodecConfig(cmd *cobra.Command, _ []string) error {
	return util.BindCommandFlags(cmd)
}

// --------------------------------------------------------------------------
// Commands
// --------------------------------------------------------------------------

func runEncode(_ *cobra.Command, _ []string) error {
	s, err := util.GetSerializer(util.GetCodecConfig())
	if err != nil {
		return err
	}

	items, err := encodeInput(viper.GetString("input"), viper.GetInt("generate"), viper.GetInt64("seed"))
	if err != nil {
		return err
	}

	out, err := util.CreateOutput(viper.GetString("output"))
	if err != nil {
		return err
	}
	cw := &countingWriter{w: out}
	err = s.SerializeItems(items, cw)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}

	util.Logger.Infof("encoded %d items with %s (%d bytes)", len(items), s.Name(), cw.n)
	return nil
}

func runDecode(_ *cobra.Command, _ []string) error {
	s, err := util.GetSerializer(util.GetCodecConfig())
	if err != nil {
		return err
	}
	n := viper.GetInt("count")
	if n < 1 {
		return errors.New("count must be at least 1")
	}

	in, err := util.OpenInput(viper.GetString("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	items, err := s.DeserializeItems(in, n)
	if err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}

	out, err := util.CreateOutput(viper.GetString("output"))
	if err != nil {
		return err
	}
	err = fixtures.Dump(out, items)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	util.Logger.Infof("decoded %d items with %s", len(items), s.Name())
	return nil
}

func runConvert(_ *cobra.Command, _ []string) error {
	in, err := util.OpenInput(viper.GetString("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	r, err := newTokenReader(viper.GetString("from"), in)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := util.CreateOutput(viper.GetString("output"))
	if err != nil {
		return err
	}
	w, err := newTokenWriter(viper.GetString("to"), out)
	if err != nil {
		_ = out.Close()
		return err
	}

	values, err := convert(w, r)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to convert: %w", err)
	}

	util.Logger.Infof("converted %d values from %s to %s", values, r.Format(), w.Format())
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// encodeInput returns the items to encode: generated items if generate is set,
// the standard item if no input is given and the items of the fixture file otherwise
func encodeInput(path string, generate int, seed int64) ([]*media.MediaContent, error) {
	switch {
	case generate > 0:
		return fixtures.Generate(seed, generate, fixtures.DefaultGenerateOptions()), nil
	case path == "":
		return []*media.MediaContent{fixtures.Standard()}, nil
	}

	in, err := util.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	items, err := fixtures.Load(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return items, nil
}

// convert copies all top level values from r to w and returns their number
func convert(w token.Writer, r token.Reader) (int, error) {
	values := 0
	for {
		err := token.Copy(w, r)
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return values, err
		}
		values++
	}
}

func newTokenReader(format string, in io.Reader) (token.Reader, error) {
	switch format {
	case jsontok.FormatName:
		return jsontok.NewReader(in), nil
	case bintok.FormatName:
		return bintok.NewReader(in, codec.Registry()), nil
	default:
		return nil, fmt.Errorf("unknown token format %q, must be one of %s, %s", format, jsontok.FormatName, bintok.FormatName)
	}
}

func newTokenWriter(format string, out io.Writer) (token.Writer, error) {
	switch format {
	case jsontok.FormatName:
		return jsontok.NewWriter(out), nil
	case bintok.FormatName:
		return bintok.NewWriter(out, codec.Registry()), nil
	default:
		return nil, fmt.Errorf("unknown token format %q, must be one of %s, %s", format, jsontok.FormatName, bintok.FormatName)
	}
}

// countingWriter counts the bytes written to w
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
