package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/serializer"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"F"},
		Value:   string(serializer.FormatYAML),
		Usage:   "Output format: yaml or json",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   serializer.StdoutURI,
		Usage:   "Output `FILE`, or - for stdout",
	}
}

// parseOutputFormat extracts and validates the output format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if !format.IsValid() {
		return "", fmt.Errorf("unknown output format %q, valid formats are: yaml, json", format)
	}
	return format, nil
}

// emit serializes value to the destination selected by the format and output
// flags.
func emit(ctx context.Context, cmd *cli.Command, value any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	writer, closeFn, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			slog.Warn("failed to close output", "error", err)
		}
	}()

	return writer.Serialize(ctx, value)
}
