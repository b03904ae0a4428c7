package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neox5/jetdqm/internal/jetdqm"
	"github.com/urfave/cli/v3"
	"go.yaml.in/yaml/v4"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "print the registry snapshot as YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sequence",
				Usage: "only analyzers scheduled by this sequence",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "only this analyzer",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg := cfg.Registry
			snapshot := reg.Snapshot()

			if name := cmd.String("sequence"); name != "" {
				seq, ok := reg.Sequence(name)
				if !ok {
					return fmt.Errorf("sequence %q: %w", name, jetdqm.ErrUnknownSequence)
				}
				snapshot = snapshot.Select(seq.Analyzers...)
			}
			if name := cmd.String("name"); name != "" {
				if _, ok := reg.Analyzer(name); !ok {
					return fmt.Errorf("analyzer %q: %w", name, jetdqm.ErrUnknownAnalyzer)
				}
				snapshot = snapshot.Select(name)
			}

			data, err := jetdqm.MarshalSnapshot(snapshot)
			if err != nil {
				return err
			}
			_, err = cmd.Root().Writer.Write(data)
			return err
		},
	}
}

func sequencesCommand() *cli.Command {
	return &cli.Command{
		Name:  "sequences",
		Usage: "list sequences and their analyzers",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, seq := range cfg.Registry.Sequences() {
				fmt.Fprintln(w, seq.Name)
				for _, a := range seq.Analyzers {
					fmt.Fprintf(w, "  %s\n", a)
				}
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "load the configuration and replay every derivation",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg := cfg.Registry

			for _, name := range reg.Names() {
				if _, err := reg.Replay(name); err != nil {
					return err
				}
			}
			for _, name := range reg.Unscheduled() {
				slog.Warn("analyzer not scheduled by any sequence", "analyzer", name)
			}

			fmt.Fprintf(cmd.Root().Writer, "ok: %d analyzers, %d sequences\n",
				reg.Len(), len(reg.SequenceNames()))
			return nil
		},
	}
}

func diffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "print the minimal override turning BASE into VARIANT",
		ArgsUsage: "BASE VARIANT",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("diff requires BASE and VARIANT")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			configs := make([]jetdqm.AnalyzerConfig, 2)
			for i, name := range cmd.Args().Slice() {
				c, ok := cfg.Registry.Analyzer(name)
				if !ok {
					return fmt.Errorf("analyzer %q: %w", name, jetdqm.ErrUnknownAnalyzer)
				}
				configs[i] = c
			}

			data, err := yaml.Marshal(jetdqm.Diff(configs[0], configs[1]))
			if err != nil {
				return fmt.Errorf("failed to encode override: %w", err)
			}
			_, err = cmd.Root().Writer.Write(data)
			return err
		},
	}
}

func lineageCommand() *cli.Command {
	return &cli.Command{
		Name:      "lineage",
		Usage:     "print the derivation chain of an analyzer",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("lineage requires NAME")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			chain, err := cfg.Registry.Lineage(cmd.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, strings.Join(chain, " -> "))
			return nil
		},
	}
}

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "list analyzer trigger filters selecting each HLT path",
		ArgsUsage: "PATH...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("match requires at least one PATH")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, path := range cmd.Args().Slice() {
				fmt.Fprintln(w, path)
				matches := cfg.Registry.MatchTrigger(path)
				if len(matches) == 0 {
					fmt.Fprintln(w, "  no match")
					continue
				}
				for _, m := range matches {
					fmt.Fprintf(w, "  %s %s %s\n", m.Analyzer, m.Filter, m.Pattern)
				}
			}
			return nil
		},
	}
}
