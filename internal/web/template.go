package web

// getHTMLTemplate возвращает HTML шаблон страницы формы
func getHTMLTemplate() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Simple Form Data App</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #262730; }
        form { display: flex; flex-direction: column; gap: 0.75rem; padding: 1rem; border: 1px solid #e6e6ea; border-radius: 8px; }
        label { display: flex; flex-direction: column; font-size: 0.9rem; gap: 0.25rem; }
        input, textarea { padding: 0.5rem; border: 1px solid #ccc; border-radius: 4px; font: inherit; }
        textarea { min-height: 6rem; }
        button { align-self: flex-start; padding: 0.5rem 1.25rem; border: 1px solid #ccc; border-radius: 4px; background: #fff; cursor: pointer; }
        .alert { padding: 0.75rem 1rem; border-radius: 4px; margin: 1rem 0; }
        .error { background: #ffe5e5; color: #7d1a1a; }
        .success { background: #e5f6ea; color: #17562b; }
        .info { background: #e5f0ff; color: #1a3d7d; }
        pre { background: #f6f7f9; padding: 1rem; border-radius: 4px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>Simple Form Data App</h1>
    <p>Submit your information below:</p>

    <form method="post" action="/submit">
        <label>Name
            <input type="text" name="name" maxlength="100" value="{{.Form.Name}}">
        </label>
        <label>Email
            <input type="text" name="email" maxlength="100" value="{{.Form.Email}}">
        </label>
        <label>Message
            <textarea name="message" maxlength="500">{{.Form.Message}}</textarea>
        </label>
        <button type="submit">Submit</button>
    </form>

    {{if .Error}}<div class="alert error">{{.Error}}</div>{{end}}
    {{if .Success}}
    <div class="alert success">{{.Success}}</div>
    <pre>{{.EntryJSON}}</pre>
    {{end}}

    <h2>Submitted Entries</h2>
    {{if .EntriesJSON}}
    <pre>{{.EntriesJSON}}</pre>
    {{else}}
    <div class="alert info">No entries yet.</div>
    {{end}}
</body>
</html>`
}
