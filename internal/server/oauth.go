package server

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"golang.org/x/oauth2"
)

// Result is the outcome of a browser-assisted sign-in. Exactly one of
// Token and Err is set.
type Result struct {
	Token *oauth2.Token
	Err   error
}

// Flow receives the redirect from the authorization server, checks the
// state value, trades the code for a token and publishes the outcome on
// Done. Only the first redirect is honored; later ones are refused.
type Flow struct {
	config  *oauth2.Config
	state   string
	claimed atomic.Bool
	done    chan Result
}

// NewFlow prepares a flow for one sign-in attempt. The state value must
// be unguessable and match the one embedded in the authorization URL.
func NewFlow(config *oauth2.Config, state string) *Flow {
	return &Flow{
		config: config,
		state:  state,
		done:   make(chan Result, 1),
	}
}

// Done yields exactly one Result once the redirect has been handled,
// then the channel is closed.
func (f *Flow) Done() <-chan Result {
	return f.done
}

func (f *Flow) report(res Result) {
	f.done <- res
	close(f.done)
}

func (f *Flow) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !f.claimed.CompareAndSwap(false, true) {
		http.Error(w, "Sign-in already completed", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	if query.Get("state") != f.state {
		f.report(Result{Err: fmt.Errorf("callback state does not match")})
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		f.report(Result{Err: fmt.Errorf("authorization denied: %s (%s)",
			query.Get("error"), query.Get("error_description"))})
		http.Error(w, "Authorization denied", http.StatusBadRequest)
		return
	}

	token, err := f.config.Exchange(r.Context(), code)
	if err != nil {
		f.report(Result{Err: fmt.Errorf("failed to exchange authorization code: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusBadGateway)
		return
	}

	f.report(Result{Token: token})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, signedInPage)
}

const signedInPage = `<!DOCTYPE html>
<html>
<head><title>gomero</title></head>
<body style="font-family: sans-serif; max-width: 28rem; margin: 4rem auto; text-align: center;">
<h2>&#10003; Signed in</h2>
<p>You can close this window and return to the terminal.</p>
</body>
</html>
`
