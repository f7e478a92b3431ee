package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type smokeOptions struct {
	BaseURL string
}

func newSmokeCmd() *cobra.Command {
	var opts smokeOptions

	cmd := &cobra.Command{
		Use:   "smoke --base-url <url>",
		Short: "Run a small smoke check against /health and the registry API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.BaseURL) == "" {
				return errors.New("--base-url is required")
			}

			client := newHTTPClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if err := smokeCheck(ctx, client, opts.BaseURL); err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(opts.BaseURL, "/")+"/registry/api/hierarchy", nil)
			if err != nil {
				return err
			}
			req.Header.Set("Accept", "application/json")
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			if resp.StatusCode/100 != 2 {
				return fmt.Errorf("registry smoke failed: status=%d", resp.StatusCode)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "http://localhost:3200", "server base URL")

	return cmd
}
