// Command chooserctl manages the snippet chooser database: schema
// migration, locales, snippets and seed fixtures.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matthewbaird/snippetchooser/internal/app"
	"github.com/matthewbaird/snippetchooser/internal/config"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

var (
	databaseURL  string
	contentTypes string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chooserctl",
		Short:         "Manage snippet chooser data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "database URL (default: $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&contentTypes, "content-types", "", "CUE content type file (default: $CONTENT_TYPES_FILE or built-in)")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(typesCmd())
	rootCmd.AddCommand(localeCmd())
	rootCmd.AddCommand(snippetCmd())
	rootCmd.AddCommand(seedCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp loads configuration, applies flag overrides and migrates.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if contentTypes != "" {
		cfg.ContentTypesFile = contentTypes
	}
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.Migrate(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the snippets and locales tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrated")
			return nil
		},
	}
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered content types",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			for _, ct := range a.Registry.All() {
				var caps []string
				if ct.Indexed {
					caps = append(caps, "indexed")
				}
				if ct.Translatable {
					caps = append(caps, "translatable")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-25s %s\n", ct.Key(), ct.VerboseNamePlural, strings.Join(caps, ","))
			}
			return nil
		},
	}
}

func localeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale",
		Short: "Manage locales",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add CODE DISPLAY_NAME",
		Short: "Register a locale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Locales.Add(cmd.Context(), types.Locale{Code: args[0], DisplayName: args[1]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List locales",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			locales, err := a.Locales.ListLocales(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range locales {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", l.Code, l.DisplayName)
			}
			return nil
		},
	})
	return cmd
}

func snippetCmd() *cobra.Command {
	var id, localeCode string
	add := &cobra.Command{
		Use:   "add APP.MODEL LABEL",
		Short: "Add a snippet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			rec, err := newRecord(cmd.Context(), a, args[0], id, args[1], localeCode)
			if err != nil {
				return err
			}
			if err := a.Store.Save(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
			return nil
		},
	}
	add.Flags().StringVar(&id, "id", "", "snippet id (default: random UUID)")
	add.Flags().StringVar(&localeCode, "locale", "", "locale code for translatable types")

	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Manage snippets",
	}
	cmd.AddCommand(add)
	return cmd
}

// fixture is the seed file format.
type fixture struct {
	Locales  []types.Locale `json:"locales"`
	Snippets []struct {
		Type   string `json:"type"` // "app_label.model_name"
		ID     string `json:"id,omitempty"`
		Label  string `json:"label"`
		Locale string `json:"locale,omitempty"`
	} `json:"snippets"`
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE.json",
		Short: "Load locales and snippets from a JSON fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var fx fixture
			if err := json.Unmarshal(raw, &fx); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			for _, l := range fx.Locales {
				if err := a.Locales.Add(ctx, l); err != nil {
					return err
				}
			}
			for _, s := range fx.Snippets {
				rec, err := newRecord(ctx, a, s.Type, s.ID, s.Label, s.Locale)
				if err != nil {
					return err
				}
				if err := a.Store.Save(ctx, rec); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d locales, %d snippets\n", len(fx.Locales), len(fx.Snippets))
			return nil
		},
	}
}

// newRecord validates a snippet against its content type.
func newRecord(ctx context.Context, a *app.App, typeKey, id, label, localeCode string) (types.Record, error) {
	appLabel, modelName, ok := strings.Cut(typeKey, ".")
	if !ok {
		return types.Record{}, fmt.Errorf("content type must be APP.MODEL, got %q", typeKey)
	}
	ct, err := a.Registry.Lookup(appLabel, modelName)
	if err != nil {
		return types.Record{}, err
	}
	if strings.TrimSpace(label) == "" {
		return types.Record{}, fmt.Errorf("label is required")
	}
	if id == "" {
		id = uuid.NewString()
	}
	rec := types.Record{ID: id, AppLabel: ct.AppLabel, ModelName: ct.ModelName, Label: label}
	if ct.Translatable {
		if localeCode == "" {
			return types.Record{}, fmt.Errorf("%s is translatable: locale is required", ct.Key())
		}
		loc, found, err := a.Locales.Resolve(ctx, localeCode)
		if err != nil {
			return types.Record{}, err
		}
		if !found {
			return types.Record{}, fmt.Errorf("unknown locale %q", localeCode)
		}
		rec.Locale = loc.Code
	}
	return rec, nil
}
