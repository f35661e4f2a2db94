// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/lovebite/admindash/internal/platform"
)

// DBDeps holds back-end dependencies for the app. The dashboard owns no
// database of its own; the platform API client is its only upstream.
// Extend this struct as your app evolves.
type DBDeps struct {
	API *platform.Client
}
