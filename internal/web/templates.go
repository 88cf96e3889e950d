package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/novatech/taskflow/internal/dateutil"
	"github.com/novatech/taskflow/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateFuncs are the helpers available to every page.
var templateFuncs = template.FuncMap{
	"formatDate":     dateutil.FormatDate,
	"formatDateTime": dateutil.FormatDateTime,
	"displayName": func(status domain.TaskStatus) string {
		return status.DisplayName()
	},
	"statusClass": func(status domain.TaskStatus) string {
		switch status {
		case domain.TaskStatusCompleted:
			return "status-completed"
		case domain.TaskStatusInProgress:
			return "status-in-progress"
		case domain.TaskStatusCancelled:
			return "status-cancelled"
		default:
			return "status-pending"
		}
	},
}

// pageTemplates parses each page against the shared layout. Pages render
// by executing "layout.html", which pulls in the page's content block.
type pageTemplates struct {
	pages map[string]*template.Template
}

func parseTemplates() (*pageTemplates, error) {
	pageNames := []string{"dashboard.html", "tasks.html", "task_form.html", "task_detail.html"}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &pageTemplates{pages: pages}, nil
}

// render executes the named page into w.
func (t *pageTemplates) render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}
