package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"yatube/internal/config"
	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// funcMap 模板辅助函数
func funcMap(cfg *config.Config) template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"markdown": utils.RenderMarkdown,
		"excerpt":  utils.Excerpt,
		"date": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
		"mediaURL": func(rel string) string {
			return path.Join(cfg.MediaURL, rel)
		},
		"siteName": func() string {
			return cfg.SiteName
		},
		"derefID": func(id *uint) uint {
			if id == nil {
				return 0
			}
			return *id
		},
	}
}

// loadTemplates builds one template set per view: the base layout, every include and the view itself.
// A view at templates/views/posts/index.html is registered as "posts/index.html".
func loadTemplates(fsys fs.FS, funcs template.FuncMap) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	includes, err := fs.Glob(fsys, "templates/includes/*.html")
	if err != nil {
		return nil, err
	}
	shared := append([]string{"templates/layouts/base.html"}, includes...)

	err = fs.WalkDir(fsys, "templates/views", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
			return err
		}
		files := append(append([]string{}, shared...), p)
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		r.Add(strings.TrimPrefix(p, "templates/views/"), tmpl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
