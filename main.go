package main

import (
	"net/http"
	"os"

	"github.com/gobuffalo/buffalo/servers"

	"github.com/silinternational/abs-insurance-api/actions"
	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/listeners"
	"github.com/silinternational/abs-insurance-api/log"
)

var GitCommitHash string

// main is the starting point for your Buffalo application.
// You can feel free and add to this `main` method, change
// what it does, etc...
// All we ask is that, at some point, you make sure to
// call `app.Serve()`, unless you don't want to start your
// application that is. :)
func main() {
	log.Init(GitCommitHash)

	listeners.RegisterListeners()

	app := actions.App()
	if err := app.Serve(getServer()); err != nil {
		if err.Error() != "context canceled" {
			log.Fatal(err)
		}
		os.Exit(0)
	}
}

func getServer() servers.Server {
	if domain.Env.DisableTLS {
		return servers.New()
	}

	return &servers.TLS{
		Server:   &http.Server{},
		CertFile: domain.Env.TLSCertFile,
		KeyFile:  domain.Env.TLSKeyFile,
	}
}

/*
# Notes about `main.go`

## SSL Support

TLS is terminated here when DISABLE_TLS is false, using TLS_CERT_FILE and TLS_KEY_FILE.
Otherwise place the application behind a proxy: https://gobuffalo.io/en/docs/proxy

## Buffalo Build

When `buffalo build` is run to compile your binary, this `main`
function will be at the heart of that binary. It is expected
that your `main` function will start your application using
the `app.Serve()` method.

*/
