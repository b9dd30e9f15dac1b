package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

type parseResult struct {
	Key        string                    `json:"key"`
	Descriptor domain.ForecastDescriptor `json:"descriptor"`
	ValidTime  time.Time                 `json:"valid_time"`
	Horizon    string                    `json:"horizon"`
	ItemID     string                    `json:"item_id"`
	Collection string                    `json:"collection"`
	AssetKey   string                    `json:"asset_key"`
	Asset      stac.Asset                `json:"asset"`
	Warnings   []string                  `json:"warnings,omitempty"`
}

func (a *app) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse KEY...",
		Short: "Decode object keys and print their metadata",
		Long: `Decode one or more forecast object keys, bare or as s3:// or https://
URLs, and print the decoded fields and asset metadata as JSON lines.

Keys that cannot be decoded are reported on stderr and make the command
exit non-zero after every key has been tried.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder := domain.NewDecoder(a.tables)
			builder := stac.NewBuilder(domain.NewAssembler(a.tables), nil)
			enc := json.NewEncoder(cmd.OutOrStdout())

			var errs []error
			for _, key := range args {
				res, err := describeKey(decoder, builder, key)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					errs = append(errs, err)
					continue
				}
				if err := enc.Encode(res); err != nil {
					return err
				}
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d keys failed to decode", len(errs), len(args))
			}
			return nil
		},
	}
}

func describeKey(decoder *domain.Decoder, builder *stac.Builder, key string) (parseResult, error) {
	d, err := decoder.Parse(key)
	if err != nil {
		return parseResult{}, err
	}
	item, warnings, err := builder.Item([]stac.Source{{Descriptor: d}})
	if err != nil {
		return parseResult{}, err
	}

	res := parseResult{
		Key:        key,
		Descriptor: d,
		ValidTime:  d.ValidTime(),
		Horizon:    d.Horizon(),
		ItemID:     item.ID,
		Collection: item.Collection,
		AssetKey:   d.AssetKey(),
		Asset:      item.Assets[d.AssetKey()],
	}
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}
	return res, nil
}
