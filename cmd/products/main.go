package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/injector/bootstrap"
	"github.com/kbukum/injector/config"
	"github.com/kbukum/injector/di"
	"github.com/kbukum/injector/internal/products"
	"github.com/kbukum/injector/version"
)

const serviceName = "products"

var (
	configFile  string
	envFile     string
	dataFile    string
	category    string
	showSummary bool
)

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Read product catalogs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the products of a catalog file",
	Long:  `The list command prints every product of a CSV catalog (id,name,category,description,price), optionally filtered by category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), serviceName, version.Get())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: search cmd/products, config/, .)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", ".env file to load")

	listCmd.Flags().StringVarP(&dataFile, "file", "f", "", "catalog file (default: data_file from config)")
	listCmd.Flags().StringVarP(&category, "category", "c", "", "only list products of this category")
	listCmd.Flags().BoolVar(&showSummary, "summary", false, "print the startup summary to stderr")

	rootCmd.AddCommand(listCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*Config, error) {
	cfg := &Config{}
	opts := []config.LoaderOption{config.WithEnvPrefix(serviceName)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}
	return cfg, nil
}

func runList(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	summaryOut := io.Discard
	if showSummary {
		summaryOut = os.Stderr
	}
	app, err := bootstrap.NewApp(cfg,
		bootstrap.WithBindings(products.Bindings()...),
		bootstrap.WithSummaryOutput(summaryOut),
	)
	if err != nil {
		return err
	}

	path := dataFile
	if path == "" {
		path = cfg.DataFile
	}
	if path == "" {
		return fmt.Errorf("no catalog file: pass --file or set data_file")
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		svc, err := di.ResolveContext[products.ProductService](ctx, app.Resolver)
		if err != nil {
			return err
		}

		var list []products.Product
		if category != "" {
			list, err = svc.ByCategory(path, category)
		} else {
			list, err = svc.AllFromFile(path)
		}
		if err != nil {
			return err
		}
		return printProducts(out, list)
	})
}

func printProducts(out io.Writer, list []products.Product) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tDESCRIPTION")
	for _, p := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Category, p.Price, p.Description)
	}
	return w.Flush()
}
