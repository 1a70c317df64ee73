package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"newsletter-agent/internal/di"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/usecase/signup"
)

var errSignupFailed = errors.New("signup failed")

type containerFactory func() (*di.Container, error)

// newRootCmd returns the command tree and a release func for the container
// built by the first command that ran. RunE errors skip cobra's post-run
// hooks, so the caller releases it.
func newRootCmd(factory containerFactory) (*cobra.Command, func()) {
	var container *di.Container

	root := &cobra.Command{
		Use:           "newsletter",
		Short:         "Sign up to newsletters and extract links from newsletter emails",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory()
			if err != nil {
				return err
			}
			container = c
			return nil
		},
	}

	get := func() *di.Container { return container }
	root.AddCommand(
		newSignupCmd(get),
		newExtractCmd(get),
		newCompareCmd(get),
		newAddressCmd(get),
	)

	release := func() {
		if container != nil {
			container.Close()
			container = nil
		}
	}
	return root, release
}

// --- signup ---

func newSignupCmd(container func() *di.Container) *cobra.Command {
	var url, framework, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Subscribe a disposable address to the newsletter on a page",
		Long: `Subscribe a disposable address to the newsletter on a page.

Examples:
  newsletter signup --url https://example.com/blog
  newsletter signup --url https://example.com --framework skyvern
  newsletter signup --url https://example.com --email me@example.org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := entity.ParseFramework(framework)
			if err != nil {
				return err
			}

			out, err := container().SignUp.Execute(cmd.Context(), signup.Request{URL: url, Framework: f, Email: email})
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !out.Result.Success {
				return signupFailure(out.Result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "page hosting the signup form")
	cmd.Flags().StringVar(&framework, "framework", string(entity.FrameworkHeadless), "headless, browserbase or skyvern")
	cmd.Flags().StringVar(&email, "email", "", "address to subscribe (generated when empty)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// --- extract ---

func newExtractCmd(container func() *di.Container) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract links from email content (HTML or text)",
		Long: `Extract links from email content (HTML or text).

Reads --file, or standard input when no file is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				content []byte
				err     error
			)
			if file != "" {
				content, err = os.ReadFile(file)
			} else {
				content, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("reading content: %w", err)
			}

			links := container().Extractor.Extract(cmd.Context(), string(content))
			return writeJSON(cmd.OutOrStdout(), links)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "file with the email content")
	return cmd
}

// --- compare ---

func newCompareCmd(container func() *di.Container) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every framework against a page and compare them",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container().Compare.Run(cmd.Context(), url)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&url, "url", "https://example.com", "page hosting the signup form")
	return cmd
}

// --- address ---

func newAddressCmd(container func() *di.Container) *cobra.Command {
	var temp bool

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print a fresh disposable address",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := container().Mailbox
			addr := gen.Generate()
			if temp {
				addr = gen.GenerateTemp()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), addr)
			return err
		},
	}

	cmd.Flags().BoolVar(&temp, "temp", false, "use the short-lived temp- prefix")
	return cmd
}

// signupFailure keeps the result's kind so the exit code reflects it.
func signupFailure(res entity.AutomationResult) error {
	cause := errSignupFailed
	if res.Error != "" {
		cause = fmt.Errorf("%w: %s", errSignupFailed, res.Error)
	}
	if res.ErrorKind == "" {
		return cause
	}
	return entity.NewError(res.ErrorKind, "", cause)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
