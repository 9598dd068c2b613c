// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/ik5/pcmstream"
	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/formats/wav"
	"github.com/ik5/pcmstream/internal/cli"
	"github.com/ik5/pcmstream/metadata"
	"github.com/ik5/pcmstream/music"
)

// version is set via ldflags at build time.
var version = "dev"

const description = "Inspect and render WAVE, AIFF, MP3 and Ogg Vorbis files, loop points included."

type InfoCmd struct {
	Input string `arg:"" name:"input" help:"Audio file to inspect" type:"existingfile"`
}

type RenderCmd struct {
	Input  string `arg:"" name:"input" help:"Audio file to play" type:"existingfile"`
	Output string `arg:"" name:"output" help:"Mono 16-bit WAV file to write"`
	Rate   int    `help:"Output sample rate in Hz" default:"8000"`
	Repeat int    `help:"Number of times to play the file" default:"1"`
	Volume int    `help:"Playback volume from 0 to 128" default:"128"`
}

var CLI struct {
	Verbose bool             `short:"v" help:"Log diagnostics to stderr"`
	Version kong.VersionFlag `help:"Show version information"`

	Info   InfoCmd   `cmd:"" help:"Show the layout, loops and tags of a file."`
	Render RenderCmd `cmd:"" help:"Play a file into a mono 16-bit WAV file."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pcmstream"),
		kong.Description(description),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(description)),
	)

	log.SetFlags(0)
	log.SetPrefix("pcmstream: ")
	if !CLI.Verbose {
		log.SetOutput(io.Discard)
	}

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func (c *InfoCmd) Run() error {
	stream, err := pcmstream.OpenFile(c.Input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.Input, err)
	}
	defer stream.Close()

	log.Printf("opened %s as %T", c.Input, stream)

	spec := stream.Spec()
	cli.PrintSection(c.Input)
	cli.PrintBox([][2]string{
		{"Format", spec.Format.String()},
		{"Channels", strconv.Itoa(spec.Channels)},
		{"Rate", fmt.Sprintf("%d Hz", spec.SampleRate)},
		{"Length", cli.FormatSeconds(stream.Length())},
	})

	if m, ok := stream.(*music.Music); ok {
		printContainer(m)
	}

	var tags [][2]string
	for _, kind := range metadata.Kinds {
		if v, ok := stream.Tag(kind); ok {
			tags = append(tags, [2]string{kind.String(), v})
		}
	}

	if len(tags) > 0 {
		cli.PrintSection("Tags")
		cli.PrintBox(tags)
	}

	return nil
}

func printContainer(m *music.Music) {
	d := m.Descriptor()
	r := m.Region()

	cli.PrintSection("Container")
	cli.PrintBox([][2]string{
		{"Encoding", d.Encoding.String()},
		{"Bits", strconv.Itoa(d.BitsPerSample)},
		{"Decoder", d.Strategy.String()},
		{"Samples", fmt.Sprintf("%s at offset %d", cli.FormatBytes(r.Len()), r.Start)},
	})

	loops := m.Loops()
	if len(loops) == 0 {
		return
	}

	rows := make([][2]string, 0, len(loops))
	for i, l := range loops {
		rows = append(rows, [2]string{
			fmt.Sprintf("Loop %d", i+1),
			fmt.Sprintf("bytes %d-%d, %s", l.Start, l.Stop, cli.FormatCount(l.Initial)),
		})
	}

	cli.PrintSection("Loops")
	cli.PrintBox(rows)
}

func (c *RenderCmd) Run() error {
	if c.Repeat <= 0 {
		return fmt.Errorf("--repeat must be positive, got %d", c.Repeat)
	}

	if c.Rate <= 0 {
		return fmt.Errorf("--rate must be positive, got %d", c.Rate)
	}

	stream, err := pcmstream.OpenFile(c.Input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.Input, err)
	}
	defer stream.Close()

	stream.SetVolume(c.Volume)
	log.Printf("rendering %s (%+v) at volume %d/%d", c.Input, stream.Spec(), stream.Volume(), audio.MaxVolume)

	samples, err := pcmstream.Render(stream, c.Repeat, c.Rate)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", c.Input, err)
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer out.Close()

	if err := wav.WriteWAV16(out, c.Rate, samples); err != nil {
		return fmt.Errorf("writing %s: %w", c.Output, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	cli.PrintSuccess(fmt.Sprintf("Wrote %s (%s, %s)", c.Output,
		cli.FormatSeconds(float64(len(samples))/float64(c.Rate)),
		cli.FormatBytes(int64(44+2*len(samples)))))

	return nil
}
