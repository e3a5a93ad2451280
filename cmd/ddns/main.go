package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/judwhite/go-svc"
	"github.com/jxo-me/namesilo-ddns/cmd/ddns/cliutil"
	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/config/parsing"
	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/urfave/cli/v2"
)

var (
	Version   = "DEV"
	BuildTime = "unknown"
	BuildType = ""
)

func main() {
	bInfo := cliutil.GetBuildInfo(BuildType, Version)

	app := &cli.App{}
	app.Name = "namesilo-ddns"
	app.Usage = "Keep NameSilo A records in sync with this machine's public IPv4 address"
	app.UsageText = "namesilo-ddns [global options] [command] [command options]"
	app.Version = fmt.Sprintf("%s (built %s%s)", Version, BuildTime, bInfo.GetBuildTypeMsg())
	app.Description = `namesilo-ddns checks the public IPv4 address of this machine and updates the
	configured NameSilo DNS records when they point elsewhere. With cronConfig.runCron
	enabled it keeps running and repeats the check every cronConfig.intervalMinutes,
	reloading the config file when it changes.`
	app.Flags = flags()
	app.Action = cliutil.ConfiguredAction(runAction)
	app.Commands = commands()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    cliutil.ConfigFlag,
			Aliases: []string{"C"},
			Usage:   "configuration file (json, yaml or toml)",
			EnvVars: []string{config.ConfigFilePathENV},
			Value:   consts.DefaultConfigPath,
		},
		&cli.StringFlag{
			Name:    cliutil.APIKeyFlag,
			Usage:   "NameSilo API key",
			EnvVars: []string{consts.APIKeyENV},
		},
		&cli.StringFlag{
			Name:  cliutil.LogLevelFlag,
			Usage: "override logLevel from the config file (trace, debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:    cliutil.OutputFlag,
			Aliases: []string{"O"},
			Usage:   "print the effective configuration as json or yaml and exit",
		},
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "run",
			Usage:  "Run the DDNS service, scheduled when cronConfig.runCron is enabled",
			Action: cliutil.ConfiguredAction(runAction),
		},
		{
			Name:   "once",
			Usage:  "Run a single reconciliation pass and exit",
			Action: cliutil.ConfiguredAction(onceAction),
			Description: `Runs one pass against every configured record and exits.
The exit code is 1 when the public IP could not be found or any record failed.`,
		},
		{
			Name: "version",
			Action: func(c *cli.Context) error {
				cli.ShowVersion(c)
				return nil
			},
			Usage: "Print the version",
		},
	}
}

func runAction(c *cli.Context, settings *cliutil.Settings) error {
	if format := c.String(cliutil.OutputFlag); format != "" {
		return settings.Config.Write(os.Stdout, format)
	}
	if !settings.Config.CronConfig.RunCron {
		return onceAction(c, settings)
	}

	cliutil.GetBuildInfo(BuildType, Version).Log(settings.Log)
	logger.SetDefault(logFromConfig(&settings.Config))
	return svc.Run(newProgram(settings), syscall.SIGINT, syscall.SIGTERM)
}

func onceAction(c *cli.Context, settings *cliutil.Settings) error {
	if format := c.String(cliutil.OutputFlag); format != "" {
		return settings.Config.Write(os.Stdout, format)
	}

	logger.SetDefault(logFromConfig(&settings.Config))
	job, err := parsing.ParseJob(&settings.Config, settings.APIKey, logger.Default())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := job.Run(ctx)
	if res.Err != nil {
		return res.Err
	}
	settings.Log.Info().
		Str("ip", res.IP).
		Bool("cacheHit", res.CacheHit).
		Int("updated", len(res.Updated())).
		Int("skipped", len(res.Skipped())).
		Int("notFound", len(res.NotFound())).
		Int("failed", len(res.Errored())).
		Msg("DDNS pass finished")
	if res.HasErrors() {
		return cli.Exit("one or more records could not be reconciled", 1)
	}
	return nil
}
