package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cfspeedtest/speedtest"
)

var (
	BuildName       = "dev"
	BuildAnnotation = "git"
)

type cmdOpts struct {
	ipv4           bool
	ipv6           bool
	timeoutSecs    uint
	nrTests        int
	nrLatencyTests int
	maxPayloadSize int64
	outputFormat   string
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := cmdOpts{}

	cmd := &cobra.Command{
		Use:          "cfspeedtest",
		Short:        "Measure connection bandwidth and latency against speed.cloudflare.com",
		Version:      fmt.Sprintf("%s (%s)", BuildName, BuildAnnotation),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.ipv4, "ipv4", "4", false, "Ensure measurements over IPv4")
	cmd.Flags().BoolVarP(&opts.ipv6, "ipv6", "6", false, "Ensure measurements over IPv6")
	cmd.Flags().UintVarP(&opts.timeoutSecs, "timeout", "t", 0, "Per-request timeout in seconds (0 = none)")
	cmd.Flags().IntVar(&opts.nrTests, "nr-tests", speedtest.DefaultRunsPerSize, "Number of runs per payload size")
	cmd.Flags().IntVar(&opts.nrLatencyTests, "nr-latency-tests", speedtest.DefaultLatencySamples, "Number of latency probes")
	cmd.Flags().Int64Var(&opts.maxPayloadSize, "max-payload-size", 0, "Skip payload sizes above this many bytes (0 = no cap)")
	cmd.Flags().StringVarP(&opts.outputFormat, "output-format", "o", string(speedtest.FormatText), "Output format: text, json or csv")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func run(opts cmdOpts) error {
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
	logrus.SetOutput(os.Stderr)

	format, err := speedtest.ParseOutputFormat(opts.outputFormat)
	if err != nil {
		return err
	}

	cfg := speedtest.DefaultConfig()
	cfg.RunsPerSize = opts.nrTests
	cfg.LatencySamples = opts.nrLatencyTests
	if opts.maxPayloadSize > 0 {
		cfg = cfg.WithMaxPayloadSize(opts.maxPayloadSize)
	}

	client := speedtest.NewClient(speedtest.ClientOptions{
		IPv4:    opts.ipv4,
		IPv6:    opts.ipv6,
		Timeout: time.Duration(opts.timeoutSecs) * time.Second,
	})

	// Keep stdout parseable for machine-readable formats; the bar and the
	// banner only make sense on a terminal run.
	var progress speedtest.ProgressFunc
	if format == speedtest.FormatText {
		fmt.Println("Starting Cloudflare speed test")
		fmt.Printf("At: %s\n\n", time.Now().Format(time.RFC1123Z))
		progress = newProgressBar()
	}

	report, err := speedtest.Run(client, cfg, progress)
	if err != nil {
		return err
	}

	return report.Render(os.Stdout, format)
}

// newProgressBar adapts a terminal progress bar to the sampler's callback.
// A fresh bar starts whenever the index wraps to zero, i.e. at the
// download/upload boundary.
func newProgressBar() speedtest.ProgressFunc {
	var bar *progressbar.ProgressBar

	return func(index, total int, status string) {
		if bar == nil || index == 0 {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Describe(status)
		_ = bar.Add(1)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
