// Package view embeds the page templates and client assets into the binary.
package view

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Layout wraps every page rendered through the engine.
const Layout = "layouts/base"

// NewEngine returns the HTML engine for fiber.Config.Views.
// reload re-parses templates on each render (development only).
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(mustSub(templateFiles, "templates")), ".html")
	engine.Reload(reload)
	engine.AddFunc("formatTime", formatTime)
	return engine
}

// Static returns the client assets for the /static route.
func Static() http.FileSystem {
	return http.FS(mustSub(staticFiles, "static"))
}

func formatTime(t time.Time) string {
	return t.Local().Format("02 Jan 2006 15:04")
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
