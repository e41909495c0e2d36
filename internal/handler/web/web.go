package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"StockCast/internal/domain/models"
	"StockCast/internal/usecase"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html static/*
var assets embed.FS

type renderer struct {
	tmpl *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

type indexPage struct {
	Title      string
	Models     []string
	WindowSize int
}

// Handler serves the browser form on / and its script under /static.
type Handler struct {
	tmpl   *template.Template
	static http.Handler
	page   indexPage
}

func NewHandler() (*Handler, error) {
	tmpl, err := template.ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models.AllSlots))
	for _, s := range models.AllSlots {
		names = append(names, string(s))
	}
	return &Handler{
		tmpl:   tmpl,
		static: http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
		page:   indexPage{Title: "Stock Price Forecast", Models: names, WindowSize: usecase.WindowSize},
	}, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = &renderer{tmpl: h.tmpl}
	e.GET("/", h.Index)
	e.GET("/static/*", echo.WrapHandler(h.static))
}

func (h *Handler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", h.page)
}
