package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmicro/gomero/internal/shared"
	"github.com/urfave/cli/v3"
)

// OpenObject opens the addressed object in the web interface.
func (r *Runner) OpenObject(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	webURL := r.config.Server.WebURL
	if webURL == "" {
		return fmt.Errorf("%w: server.web_url is not configured", shared.ErrMissingConfig)
	}

	kind := strings.ToLower(cmd.String("type"))
	switch kind {
	case "project", "dataset", "image", "screen", "plate", "folder":
	default:
		return fmt.Errorf("%w: unknown object type %q", shared.ErrInvalidArgument, kind)
	}

	url := fmt.Sprintf("%s/?show=%s-%d", strings.TrimRight(webURL, "/"), kind, cmd.Int64("id"))

	r.logger.Info("opening browser", "url", url)
	if err := shared.OpenBrowser(url); err != nil {
		r.writePlain("⚠ Could not open browser, visit:\n%s\n", url)
		return nil
	}
	return r.writePlain("✓ Opened %s\n", url)
}
