package notifier

import (
	"bytes"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Content is a rendered email.
type Content struct {
	Subject string
	Text    string
	HTML    string
}

const welcomeMarkdown = `Thank you for subscribing to **{{.Brand}}**!

You'll now receive daily updates with the latest Non-Qualified Mortgage news and insights delivered straight to your inbox.

We're excited to keep you informed about:

- Daily industry news and updates
- Expert analysis and market trends
- Quick, actionable insights

Stay tuned for your first newsletter!

Best regards,
The {{.Brand}} Team
`

const layoutHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #00C853 0%, #00A844 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
.content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>{{.Title}}</h1></div>
<div class="content">
{{.Body}}
</div>
</div>
</body>
</html>
`

var (
	welcomeTmpl = texttemplate.Must(texttemplate.New("welcome").Parse(welcomeMarkdown))
	layoutTmpl  = template.Must(template.New("layout").Parse(layoutHTML))

	// The text part reuses the Markdown source without its emphasis markers.
	emphasisMarkers = strings.NewReplacer("**", "", "__", "")

	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Typographer),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
)

// RenderWelcome builds the subject, plain-text and HTML bodies of the
// welcome email for the given newsletter name.
func RenderWelcome(brand string) (Content, error) {
	title := "Welcome to " + brand + "!"

	var md bytes.Buffer
	if err := welcomeTmpl.Execute(&md, struct{ Brand string }{brand}); err != nil {
		return Content{}, err
	}

	var body bytes.Buffer
	if err := markdown.Convert(md.Bytes(), &body); err != nil {
		return Content{}, err
	}

	var page bytes.Buffer
	err := layoutTmpl.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return Content{}, err
	}

	return Content{
		Subject: title,
		Text:    title + "\n\n" + emphasisMarkers.Replace(md.String()),
		HTML:    page.String(),
	}, nil
}
