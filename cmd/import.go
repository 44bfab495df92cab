package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/fetch"
	"github.com/quakelab/seissect/internal/model"
)

var importFlags struct {
	catalog string
	file    string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import JSON-lines event records into the catalog store",
	Long:  "Reads one JSON event object per line ({\"lon\":..,\"lat\":..,\"depth\":..,\"time\":..,\"payload\":{..}}) from a file or stdin and appends them to the named catalog.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var in io.Reader = os.Stdin
		if importFlags.file != "" && importFlags.file != "-" {
			rc, err := fetch.New(fetch.Options{}).Open(ctx, importFlags.file)
			if err != nil {
				return err
			}
			defer rc.Close()
			in = rc
		}

		events, err := decodeEvents(in)
		if err != nil {
			return err
		}

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.SaveEvents(ctx, importFlags.catalog, events)
		if err != nil {
			return err
		}

		zap.L().Info("events imported",
			zap.String("catalog", importFlags.catalog),
			zap.Int64("count", n),
		)
		return nil
	},
}

// decodeEvents reads one JSON event per line, skipping blank lines.
func decodeEvents(r io.Reader) ([]model.Event, error) {
	var events []model.Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev model.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, eris.Wrapf(err, "decode event at line %d", line)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "read events")
	}
	return events, nil
}

func init() {
	importCmd.Flags().StringVar(&importFlags.catalog, "catalog", "default", "catalog name")
	importCmd.Flags().StringVar(&importFlags.file, "file", "-", "input source: file path, http(s):// or ftp:// URL (- for stdin)")
	rootCmd.AddCommand(importCmd)
}
