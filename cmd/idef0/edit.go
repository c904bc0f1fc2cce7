package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ha1tch/idef0-toolkit/pkg/imageedit"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		input     string
		prompt    string
		output    string
		model     string
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an image with a text instruction",
		Long: `Edit sends an image and a free-text instruction to the Gemini
generateContent API and writes the returned image as PNG.

The API key is read from API_KEY or GEMINI_API_KEY (a .env file in the
working directory is loaded first).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" || output == "" {
				return fmt.Errorf("both -i and -o are required")
			}

			uri, err := imageedit.LoadImageFile(input, a.cfg.MaxUpload, normalize)
			if err != nil {
				return err
			}

			opts := a.cfg.EditOptions()
			opts.Logger = a.log
			if model != "" {
				opts.Model = model
			}
			client := imageedit.NewClient(opts)

			session := imageedit.NewSession(client)
			session.SetImage(uri)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintf(a.errOut, "Editing %s with %s...\n", input, client.Model())
			result, err := session.Submit(ctx, prompt)
			if err != nil {
				return err
			}

			_, data, err := imageedit.DecodeDataURI(result)
			if err != nil {
				return fmt.Errorf("decoding result: %w", err)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			a.success("Wrote %s (%d bytes)", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "image to edit")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "edit instruction, e.g. \"add a retro filter\"")
	cmd.Flags().StringVarP(&output, "output", "o", "", "where to write the edited PNG")
	cmd.Flags().StringVar(&model, "model", "", "model name (default IDEF0_MODEL or "+imageedit.DefaultModel+")")
	cmd.Flags().BoolVar(&normalize, "normalize", true, "convert JPEG, GIF and WebP input to PNG before sending")
	return cmd
}
