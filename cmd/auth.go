package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lmicro/gomero/internal/client"
	"github.com/lmicro/gomero/internal/gateway"
	"github.com/lmicro/gomero/internal/server"
	"github.com/lmicro/gomero/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"golang.org/x/term"
)

// AuthLogin establishes a gateway session from a password prompt, an
// ice.config file or a saved cURL command, and persists the token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	gw := gateway.New(gateway.Opts{
		BaseURL:    r.config.Server.BaseURL(),
		HTTPClient: r.httpClient,
		Logger:     r.logger,
	})

	if curlFile := cmd.String("curl-file"); curlFile != "" {
		session, err := shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		token, err := session.SessionToken()
		if err != nil {
			return err
		}
		gw.SetSessionToken(token)
		if csrf := session.CSRFToken(); csrf != "" {
			gw.SetCSRFToken(csrf)
		}
		r.logger.Info("imported web session", "file", curlFile)
	} else if icePath := firstNonEmpty(cmd.String("ice-config"), r.config.Credentials.IceConfig); icePath != "" {
		ice, err := shared.LoadIceConfig(icePath)
		if err != nil {
			return err
		}
		if err := gw.Login(ctx, ice.User, ice.Password); err != nil {
			return err
		}
		r.logger.Info("logged in", "user", ice.User, "source", icePath)
	} else {
		username := firstNonEmpty(cmd.String("username"), r.config.Credentials.Username)
		if username == "" {
			return fmt.Errorf("%w: no username given, pass --username or set credentials.username", shared.ErrMissingCredentials)
		}

		r.writePlain("Password for %s: ", username)
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		r.writePlain("\n")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if err := gw.Login(ctx, username, string(password)); err != nil {
			return err
		}
		r.logger.Info("logged in", "user", username)
	}

	r.attach(client.New(gw, r.logger))

	if err := r.saveSession(gw.SessionToken()); err != nil {
		r.logger.Warn("session not persisted", "error", err)
	}

	return r.writePlain("✓ Connected to %s\n", gw.BaseURL())
}

// AuthWeb signs in through the browser using the configured OIDC client and
// a local callback listener.
func (r *Runner) AuthWeb(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	oa := r.config.Credentials.OAuth
	if oa.ClientID == "" || oa.AuthURL == "" || oa.TokenURL == "" {
		return fmt.Errorf("%w: credentials.oauth is not configured", shared.ErrMissingConfig)
	}

	callbackAddr := fmt.Sprintf("%s:%d", r.config.Callback.Host, r.config.Callback.Port)
	oauthConfig := &oauth2.Config{
		ClientID:     oa.ClientID,
		ClientSecret: oa.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://%s/callback", callbackAddr),
		Scopes:       oa.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  oa.AuthURL,
			TokenURL: oa.TokenURL,
		},
	}

	token, err := r.doOAuth(ctx, oauthConfig, callbackAddr)
	if err != nil {
		return err
	}

	gw := gateway.New(gateway.Opts{
		BaseURL: r.config.Server.BaseURL(),
		Logger:  r.logger,
	})
	gw.SetBearerToken(ctx, token)
	r.attach(client.New(gw, r.logger))

	if err := r.saveSession(token.AccessToken); err != nil {
		r.logger.Warn("session not persisted", "error", err)
	}

	return r.writePlain("✓ Signed in, token expires %s\n", token.Expiry.Format(time.RFC1123))
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context, oauthConfig *oauth2.Config, addr string) (*oauth2.Token, error) {
	state := shared.GenerateID()
	flow := server.NewFlow(oauthConfig, state)

	listenCtx, stop := context.WithCancel(ctx)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback listener at %v", addr)
		serverErrors <- server.Listen(listenCtx, addr, r.logger, flow)
	}()

	authURL := oauthConfig.AuthCodeURL(state)
	r.writePlain("→ Opening browser for sign-in...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.Result

	select {
	case result = <-flow.Done():
	case err := <-serverErrors:
		if err == nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("callback server stopped: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	stop()
	if err := <-serverErrors; err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Err != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Err)
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

// AuthStatus reports whether a usable session exists.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		r.writePlain("✗ Not connected\n")
		return err
	}

	if _, err := conn.Projects(ctx); err != nil {
		r.writePlain("✗ Session is not usable: %v\n", err)
		return nil
	}

	r.writePlain("✓ Connected to %s\n", conn.Gateway().BaseURL())
	return nil
}

// AuthLogout closes the session and removes the saved token file.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	if err := conn.Disconnect(ctx); err != nil {
		r.logger.Warn("remote logout failed", "error", err)
	}

	if path := r.config.Credentials.SessionFile; path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
	}

	r.conn = nil
	return r.writePlain("✓ Logged out\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
