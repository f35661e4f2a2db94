// internal/app/features/escorts/templates.go
package escorts

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "escorts",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
