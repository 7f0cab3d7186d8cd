package program

import "html/template"

// The regions hold backend-provided markup and are inserted unescaped.
var pageTmpl = template.Must(template.New("detail").Funcs(template.FuncMap{
	"raw": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Program {{.ProgramID}}</title>
</head>
<body>
<h1 id="program-title">{{raw .Page.Title}}</h1>
<h3 id="driver-name">{{raw .Page.DriverName}}</h3>
<table id="program-details">{{raw .Page.Details}}</table>
<form id="delete-program" method="post" action="/program/detail/delete" onsubmit="return confirm({{.ConfirmMessage}})">
<input type="hidden" name="id" value="{{.ProgramID}}">
<input type="hidden" name="scientist" value="{{.Scientist}}">
<input type="hidden" name="confirmed" value="true">
<button type="submit">Delete</button>
</form>
</body>
</html>
`))
