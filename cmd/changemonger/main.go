package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omniscale/changemonger"
	"github.com/omniscale/changemonger/config"
	"github.com/omniscale/changemonger/feature"
	"github.com/omniscale/changemonger/log"
	"github.com/omniscale/changemonger/osmapi"
	"github.com/omniscale/changemonger/stats"
	"github.com/omniscale/changemonger/tracing"
)

var (
	cfgFile string
	v       = viper.New()
	conf    *config.Config

	client          *osmapi.Client
	engine          *changemonger.Engine
	shutdownTracing func(context.Context) error

	rootCmd = &cobra.Command{
		Use:   "changemonger",
		Short: "Describe OpenStreetMap changesets in plain English",
		Long: `changemonger fetches OpenStreetMap changesets, classifies the changed
elements with a feature catalog and describes them in a single sentence:

  alice created Joe's Bakery and two residential streets`,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: changemonger.yml in the user config dir or working dir)")
	flags.String("api-url", "", "OSM API base URL")
	flags.String("user-agent", "", "User-Agent for OSM API requests")
	flags.Float64("rate", 0, "max OSM API requests per second (0 = unlimited)")
	flags.Int("burst", 0, "OSM API request burst")
	flags.Int("cache-size", 0, "number of cached OSM API responses (0 = disabled)")
	flags.Int("concurrency", 0, "parallel parent lookups")
	flags.String("catalog", "", "feature catalog file or directory (default: built-in catalog)")
	flags.String("log-level", "", "minimal log level (debug, step, info, warn, error)")
	flags.Bool("quiet", false, "only log warnings and errors")
	flags.String("httpprofile", "", "bind address for metrics and profile server")
	flags.String("memprofile", "", "write heap profile to file on exit")
	flags.String("otlp-endpoint", "", "export traces to OTLP gRPC endpoint")

	for key, flag := range map[string]string{
		"api_url":       "api-url",
		"user_agent":    "user-agent",
		"rate":          "rate",
		"burst":         "burst",
		"cache_size":    "cache-size",
		"concurrency":   "concurrency",
		"catalog":       "catalog",
		"log_level":     "log-level",
		"quiet":         "quiet",
		"httpprofile":   "httpprofile",
		"memprofile":    "memprofile",
		"otlp_endpoint": "otlp-endpoint",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(summarizeCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(featuresCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[warn] interrupted, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	conf, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if errs := conf.Check(); len(errs) != 0 {
		reportErrors(errs)
		return errors.New("invalid config")
	}

	level, _ := log.ParseLevel(conf.LogLevel)
	if conf.Quiet {
		level = log.LWarn
	}
	log.SetMinLevel(level)

	if conf.HTTPProfile != "" {
		stats.StartHTTP(conf.HTTPProfile)
	}

	shutdownTracing, err = tracing.Init(cmd.Context(), conf.OTLPEndpoint, changemonger.Version)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(conf.Catalog)
	if err != nil {
		return err
	}

	userAgent := conf.UserAgent
	if userAgent == "" {
		userAgent = "changemonger/" + changemonger.Version
	}
	client = osmapi.New(
		osmapi.BaseURL(conf.APIURL),
		osmapi.UserAgent(userAgent),
		osmapi.RateLimit(conf.Rate, conf.Burst),
		osmapi.CacheSize(conf.CacheSize),
	)
	engine = changemonger.New(catalog, client, changemonger.Concurrency(conf.Concurrency))
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	if conf != nil && conf.MemProfile != "" {
		if err := stats.WriteMemProfile(conf.MemProfile); err != nil {
			log.Println("[error]", err)
		}
	}
	if shutdownTracing != nil {
		return shutdownTracing(context.Background())
	}
	return nil
}

func loadCatalog(path string) (*feature.Catalog, error) {
	defer log.Step("Loading feature catalog")()
	var catalog *feature.Catalog
	var err error
	if path == "" {
		catalog, err = feature.Default()
	} else if fi, statErr := os.Stat(path); statErr == nil && fi.IsDir() {
		catalog, err = feature.FromDir(path)
	} else {
		catalog, err = feature.FromFile(path)
	}
	if err != nil {
		return nil, err
	}
	s := catalog.Stats()
	log.Printf("[info] %d features, %d categories, %d magic features", s.Features, s.Categories, s.Magic)
	return catalog, nil
}

func reportErrors(errs []error) {
	fmt.Fprintln(os.Stderr, "errors in config/options:")
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "\t%s\n", err)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// no config required
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			fmt.Println(changemonger.Version)
		},
	}
}
