package export

import (
	"context"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/exporter"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

type uploader interface {
	Upload(ctx context.Context, title, content string) (string, error)
}

// newUploader builds the S3 uploader; swapped out in tests.
var newUploader = func(ctx context.Context, s *state.State) (uploader, error) {
	e := s.Config.Export
	return exporter.NewS3Uploader(ctx, e.S3Bucket, e.S3Prefix, e.Region)
}

func NewCmdExport(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <id>",
		Aliases: []string{"x"},
		Short:   "Export a stored document as a Markdown file.",
		Long: heredoc.Doc(`
			Write a stored document to <title>.md with byte-identical content. The
			file goes to --dir, the configured export.dir, or the current
			directory. With --s3 the document is uploaded to the configured
			export.s3_bucket instead.
		`),
		Example: heredoc.Doc(`
			markedit export 3f2a
			markedit export 3f2a --dir ~/notes
			markedit export 3f2a --s3
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			doc, err := cmdpkg.ResolveDocument(ctx, s, args[0])
			if err != nil {
				return err
			}

			toS3, _ := cmd.Flags().GetBool("s3")
			if toS3 {
				return upload(ctx, cmd.OutOrStdout(), s, doc)
			}

			dir, _ := cmd.Flags().GetString("dir")
			return write(cmd.OutOrStdout(), s, doc, dir)
		},
	}

	cmd.Flags().String("dir", "", "Directory to write the file to")
	cmd.Flags().Bool("s3", false, "Upload to the configured S3 bucket")
	return cmd
}

func write(out io.Writer, s *state.State, doc store.Document, dir string) error {
	if dir == "" {
		dir = s.Config.Export.Dir
	}
	if dir == "" {
		dir = "."
	}

	path, err := exporter.WriteFile(dir, doc.Title, doc.Content)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported to %s\n", path)
	return nil
}

func upload(ctx context.Context, out io.Writer, s *state.State, doc store.Document) error {
	u, err := newUploader(ctx, s)
	if err != nil {
		return err
	}

	location, err := u.Upload(ctx, doc.Title, doc.Content)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Uploaded to %s\n", location)
	return nil
}
