package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/scene/internal/demo"
	"github.com/vango-dev/scene/pkg/elements"
	"github.com/vango-dev/scene/pkg/export"
)

func exportCmd(dir *string) *cobra.Command {
	var (
		passes int
		out    string
		bucket string
		prefix string
		region string
		indent bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a frame report",
		Long: `Run passes of the counter scene and write the last frame as a JSON
report, either to a local directory or to an S3 bucket.

S3 credentials and region come from the default AWS configuration:
environment variables, shared config files, SSO or an instance role.

Examples:
  scene export
  scene export --out=reports --passes=3
  scene export --bucket=my-bucket --prefix=runs/1 --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("out") {
				e.cfg.Export.Dir = out
			}
			if flags.Changed("bucket") {
				e.cfg.Export.Bucket = bucket
			}
			if flags.Changed("prefix") {
				e.cfg.Export.Prefix = prefix
			}
			if flags.Changed("region") {
				e.cfg.Export.Region = region
			}

			var store export.Store
			where := ""
			if e.cfg.Export.Bucket != "" {
				client, err := export.NewS3Client(cmd.Context(), e.cfg.Export.Region)
				if err != nil {
					return err
				}
				store = export.NewS3Store(client, e.cfg.Export.Bucket)
				where = "s3://" + e.cfg.Export.Bucket + "/"
			} else {
				ds := export.NewDirStore(e.cfg.ExportPath())
				store = ds
				where = ds.Root() + "/"
			}

			opts := []export.Option{export.WithPrefix(e.cfg.Export.Prefix), export.WithLogger(e.logger)}
			if indent {
				opts = append(opts, export.WithIndent())
			}
			ex := export.New(store, opts...)

			counter := demo.NewCounter("Counter")
			ctx := cmd.Context()
			for i := 0; i < passes; i++ {
				if i > 0 {
					e.rt.Dispatch(demo.IncrementPath, elements.Click{})
				}
				if _, err := e.rt.Frame(ctx, counter.Render); err != nil {
					return err
				}
			}

			key, err := ex.Export(ctx, e.rt.Last())
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Exported %s%s", where, key)
			return nil
		},
	}

	cmd.Flags().IntVarP(&passes, "passes", "n", 1, "Number of passes to run before exporting")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Local directory (default from config)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket; overrides --out")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default AWS_REGION)")
	cmd.Flags().BoolVar(&indent, "indent", false, "Pretty-print the report")

	return cmd
}
