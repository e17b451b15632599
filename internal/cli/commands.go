package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/seqgen/pkg/archive"
	"go.llib.dev/seqgen/pkg/generator"
	"go.llib.dev/seqgen/pkg/seqkit"
	"go.llib.dev/seqgen/pkg/template"
)

func generateCommand(e Env) *cobra.Command {
	var (
		arch       archiveFlags
		format     formatFlags
		path       string
		seed       uint64
		limit      int
		metricsOut string
	)
	cmd := &cobra.Command{
		Use:   "generate -t FILE",
		Short: "Generate the sequences of a test template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tmpl, err := template.LoadFile(path)
			if err != nil {
				return err
			}

			var opts []template.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, template.WithSeed(seed))
			}
			var reg *prometheus.Registry
			if metricsOut != "" {
				reg = prometheus.NewRegistry()
				opts = append(opts, template.WithMetrics(generator.NewMetrics(reg)))
			}

			g, err := tmpl.Build(ctx, opts...)
			if err != nil {
				return err
			}
			logger.Info(ctx, "generating sequences",
				logging.Field("template", tmpl.Name),
				logging.Field("limit", limit))

			if arch.path != "" {
				err = record(cmd, &arch, &format, tmpl.Name, g, limit)
			} else {
				err = emit(cmd, &format, g, limit)
			}
			if err != nil {
				return err
			}
			if reg != nil {
				return prometheus.WriteToTextfile(metricsOut, reg)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "template", "t", "", "path of the template file")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the random strategies")
	cmd.Flags().IntVar(&limit, "limit", e.Limit, "maximum number of sequences, 0 means no limit")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write generation metrics to this file in the Prometheus text format")
	_ = cmd.MarkFlagRequired("template")
	arch.register(cmd, e)
	format.register(cmd, e)
	return cmd
}

func emit(cmd *cobra.Command, format *formatFlags, g seqkit.Iterator[[]string], limit int) error {
	p, err := format.printer(cmd)
	if err != nil {
		return err
	}
	for seq := range seqkit.Seq(g) {
		if 0 < limit && p.n == limit {
			break
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if err := p.sequence(seq); err != nil {
			return err
		}
	}
	logger.Info(cmd.Context(), "sequences generated", logging.Field("count", p.n))
	return nil
}

func record(cmd *cobra.Command, arch *archiveFlags, format *formatFlags, name string, g seqkit.Iterator[[]string], limit int) (rErr error) {
	p, err := format.printer(cmd)
	if err != nil {
		return err
	}
	a, err := arch.open()
	if err != nil {
		return err
	}
	defer closeArchive(a, &rErr)

	id, _, err := a.Record(cmd.Context(), name, g, limit)
	if err != nil {
		return err
	}
	run, err := a.Run(cmd.Context(), id)
	if err != nil {
		return err
	}
	return p.run(run)
}

func runsCommand(e Env) *cobra.Command {
	var (
		arch   archiveFlags
		format formatFlags
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List the runs of an archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (rErr error) {
			p, err := format.printer(cmd)
			if err != nil {
				return err
			}
			a, err := arch.open()
			if err != nil {
				return err
			}
			defer closeArchive(a, &rErr)

			runs, err := a.Runs(cmd.Context())
			if err != nil {
				return err
			}
			for _, run := range runs {
				if err := p.run(run); err != nil {
					return err
				}
			}
			return nil
		},
	}
	arch.register(cmd, e)
	format.register(cmd, e)
	return cmd
}

func showCommand(e Env) *cobra.Command {
	var (
		arch   archiveFlags
		format formatFlags
	)
	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print the sequences of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (rErr error) {
			id, err := archive.ParseRunID(args[0])
			if err != nil {
				return err
			}
			p, err := format.printer(cmd)
			if err != nil {
				return err
			}
			a, err := arch.open()
			if err != nil {
				return err
			}
			defer closeArchive(a, &rErr)

			seqs, err := a.Sequences(cmd.Context(), id)
			if err != nil {
				return err
			}
			for _, seq := range seqs {
				if err := p.sequence(seq); err != nil {
					return err
				}
			}
			return nil
		},
	}
	arch.register(cmd, e)
	format.register(cmd, e)
	return cmd
}
