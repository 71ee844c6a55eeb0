package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var updateTemplate = template.Must(template.ParseFS(templateFS, "templates/update.html.tmpl"))

// messagePolicy keeps formatting markup in admin-written messages while
// stripping scripts, event handlers and the like
var messagePolicy = bluemonday.UGCPolicy()

var newlines = strings.NewReplacer("\r\n", "<br>", "\n", "<br>")

// SocialLink is a footer link in the update email
type SocialLink struct {
	Name string
	URL  string
	Icon string
}

// DefaultSocialLinks are the footer links of every update email
var DefaultSocialLinks = []SocialLink{
	{Name: "YouTube", URL: "https://www.youtube.com/@jumpiworld", Icon: "https://jumpigames.com/icons/youtube.png"},
	{Name: "Instagram", URL: "https://www.instagram.com/jumpi.world/", Icon: "https://jumpigames.com/icons/instagram.png"},
	{Name: "Discord", URL: "https://discord.gg/vDpRYQkSq5", Icon: "https://jumpigames.com/icons/discord.png"},
}

// Update is the content of one newsletter update
type Update struct {
	Subject string
	Message string
}

type updateData struct {
	Name    string
	Subject string
	Message template.HTML
	Social  []SocialLink
}

// RenderUpdate renders the update email addressed to name.
// Name and subject are escaped; the message is sanitized and its line
// breaks become <br>.
func RenderUpdate(name string, u Update) (string, error) {
	data := updateData{
		Name:    name,
		Subject: u.Subject,
		Message: FormatMessage(u.Message),
		Social:  DefaultSocialLinks,
	}

	var buf bytes.Buffer
	if err := updateTemplate.ExecuteTemplate(&buf, "update.html.tmpl", data); err != nil {
		return "", fmt.Errorf("rendering update email: %w", err)
	}
	return buf.String(), nil
}

// FormatMessage sanitizes message and converts newlines to <br>
func FormatMessage(message string) template.HTML {
	return template.HTML(newlines.Replace(messagePolicy.Sanitize(message)))
}
