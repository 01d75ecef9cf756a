// Package view renderiza as páginas HTML do painel
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/vfg2006/donor-analytics/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

// Páginas disponíveis
const (
	PageHome         = "home"
	PageSegmentation = "segmentation"
	PagePlaceholder  = "placeholder"
	PageError        = "error"
)

var pages = []string{PageHome, PageSegmentation, PagePlaceholder, PageError}

// Page é o envelope comum a todas as páginas
type Page struct {
	Lang   string
	Title  string // Chave do catálogo
	Active string // Item de navegação destacado
	Source string // Nome da origem de dados, exibido no rodapé
	Body   any
}

type HomeBody struct {
	Overview *domain.DataOverview
}

type SegmentationBody struct {
	Report   *domain.SegmentationReport
	Clusters []domain.ClusterSummary
	Scatter  Scatter
	Bars     []Bar
	Form     SegmentationForm
}

// SegmentationForm guarda os parâmetros exibidos no formulário da página
type SegmentationForm struct {
	K        int
	KOptions []int
	Since    string
	Until    string
	Options  []SegmentOption
}

type SegmentOption struct {
	Segment  domain.Segment
	Selected bool
}

type ErrorBody struct {
	Message string
	Form    *SegmentationForm
}

type Renderer struct {
	tag       language.Tag
	printer   *message.Printer
	templates map[string]*template.Template
}

// NewRenderer carrega os templates embutidos para o idioma de APP_LOCALE
func NewRenderer(locale string) (*Renderer, error) {
	tag := resolveTag(locale)
	r := &Renderer{
		tag:       tag,
		printer:   message.NewPrinter(tag),
		templates: make(map[string]*template.Template, len(pages)),
	}

	funcs := template.FuncMap{
		"t":     r.T,
		"num":   r.Number,
		"int":   r.Integer,
		"date":  func(t time.Time) string { return t.Format(time.DateOnly) },
		"color": ClusterColor,
	}

	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("erro ao carregar template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}

	return r, nil
}

// T traduz uma chave do catálogo; chaves desconhecidas são devolvidas como estão
func (r *Renderer) T(key string, args ...any) string {
	return r.printer.Sprintf(key, args...)
}

// Number formata com casas decimais fixas no padrão do idioma
func (r *Renderer) Number(v float64, decimals int) string {
	return r.printer.Sprint(number.Decimal(v, number.Scale(decimals)))
}

func (r *Renderer) Integer(v int) string {
	return r.printer.Sprint(number.Decimal(v))
}

// Render executa a página inteira em memória antes de escrever a resposta
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	tmpl, exists := r.templates[page]
	if !exists {
		return fmt.Errorf("página desconhecida: %s", page)
	}

	data.Lang = r.tag.String()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("erro ao renderizar %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
