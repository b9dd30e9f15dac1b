package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/met-office-stac/internal/adapter/stdout"
	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/pipeline"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

func (a *app) newItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items MODEL REFERENCE",
		Short: "List a model run and print every item",
		Long: `List the objects of one model run, for example
"items uk-deterministic-2km 20251121T0000Z", and print one STAC item per
line. Fails with "no assets found" when the run has no decodable objects.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, ref, err := a.resolveRun(args[0], args[1])
			if err != nil {
				return err
			}
			items, err := a.collect(cmd, def, ref)
			if err != nil {
				return err
			}
			return stdout.NewWriter(cmd.OutOrStdout()).LoadItems(cmd.Context(), items)
		},
	}
}

func (a *app) newItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item COLLECTION REFERENCE VALID",
		Short: "Print the single item of a collection valid at a time",
		Long: `Build the item of a collection, such as
met-office-uk-deterministic-surface, for one run and valid time, both in
YYYYMMDDTHHMMZ form.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, theme, ok := domain.ParseCollectionID(args[0])
			if !ok {
				return fmt.Errorf("invalid collection ID %q", args[0])
			}
			def, ok := a.tables.Model(model)
			if !ok {
				return fmt.Errorf("unknown model %q", model)
			}
			_, ref, err := a.resolveRun(def.Token, args[1])
			if err != nil {
				return err
			}
			valid, err := domain.ParseReferenceTime(args[2])
			if err != nil {
				return fmt.Errorf("valid time: %w", err)
			}

			items, err := a.collect(cmd, def, ref)
			if err != nil {
				return err
			}
			item, err := pipeline.SelectItem(items, domain.CollectionID(model, theme), valid)
			if err != nil {
				return err
			}
			return stdout.NewWriter(cmd.OutOrStdout()).LoadItems(cmd.Context(), []stac.Item{item})
		},
	}
}

func (a *app) resolveRun(token, reference string) (domain.ModelDefinition, time.Time, error) {
	def, ok := a.tables.ModelByToken(token)
	if !ok {
		return domain.ModelDefinition{}, time.Time{}, fmt.Errorf("unknown model collection %q", token)
	}
	ref, err := domain.ParseReferenceTime(reference)
	if err != nil {
		return domain.ModelDefinition{}, time.Time{}, fmt.Errorf("reference time: %w", err)
	}
	if !def.OnSchedule(ref) {
		return domain.ModelDefinition{}, time.Time{}, fmt.Errorf("%s does not run at %s", token, reference)
	}
	return def, ref, nil
}

// collect lists one model run and builds its items without loading them.
func (a *app) collect(cmd *cobra.Command, def domain.ModelDefinition, ref time.Time) ([]stac.Item, error) {
	cfg, logger, err := a.load()
	if err != nil {
		return nil, err
	}
	p, _, err := a.newPipeline(cmd.Context(), cfg, stdout.NewWriter(cmd.OutOrStdout()), logger)
	if err != nil {
		return nil, err
	}
	return p.Collect(cmd.Context(), domain.Prefix(def, ref))
}
