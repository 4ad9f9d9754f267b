package exporter

import (
	"html/template"

	"github.com/goliatone/go-blog/posts"
)

type postPage struct {
	SiteTitle string
	BaseURL   string
	Post      *posts.Post
}

type indexPage struct {
	SiteTitle string
	BaseURL   string
	Posts     []posts.Post
}

var templateFuncs = template.FuncMap{
	// Post content is already rendered and sanitized upstream.
	"raw": func(s string) template.HTML { return template.HTML(s) },
}

var postTemplate = template.Must(template.New("post").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Post.Title}} | {{.SiteTitle}}</title>
{{- with .Post.Description}}
<meta name="description" content="{{.}}">
{{- end}}
</head>
<body>
<article>
<header>
<h1>{{.Post.Title}}</h1>
<p class="meta">
<time datetime="{{.Post.Date}}">{{.Post.Date}}</time>
 · {{.Post.Author}}
 · {{.Post.ReadingTime}} min read
</p>
{{- if .Post.CoverImage}}
<img class="cover" src="{{.Post.CoverImage}}" alt="{{.Post.Title}}">
{{- end}}
</header>
{{raw .Post.Content}}
{{- if .Post.Tags}}
<footer>
<ul class="tags">
{{- range .Post.Tags}}
<li>{{.}}</li>
{{- end}}
</ul>
</footer>
{{- end}}
</article>
</body>
</html>
`))

var indexTemplate = template.Must(template.New("index").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteTitle}}</title>
</head>
<body>
<h1>{{.SiteTitle}}</h1>
<ul class="posts">
{{- range .Posts}}
<li>
<a href="{{$.BaseURL}}/articles/{{.Slug}}/">{{.Title}}</a>
<time datetime="{{.Date}}">{{.Date}}</time>
{{- with .Excerpt}}
<p>{{.}}</p>
{{- end}}
</li>
{{- end}}
</ul>
</body>
</html>
`))
