// Package templates provides email template layout
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// EmailLayoutProps configures the shared email shell.
type EmailLayoutProps struct {
	Preheader  string
	Content    string
	FooterText string
}

type emailTemplateData struct {
	Preheader  string
	Content    template.HTML
	FooterText string
}

var layoutTemplate = template.Must(template.New("emailLayout").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
  <title>GoIconicWay</title>
</head>
<body style="background-color: #f4f5f6; font-family: Helvetica, sans-serif; font-size: 16px; line-height: 1.3; margin: 0; padding: 0;">
  <span style="color: transparent; display: none; height: 0; max-height: 0; max-width: 0; opacity: 0; overflow: hidden; visibility: hidden; width: 0;">{{.Preheader}}</span>
  <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color: #f4f5f6; width: 100%;" width="100%">
    <tr>
      <td>&nbsp;</td>
      <td style="display: block; margin: 0 auto; max-width: 600px; padding: 24px;" width="600">
        <div style="background: #ffffff; border-radius: 8px; padding: 32px;">
          {{.Content}}
        </div>
        <div style="color: #9a9ea6; font-size: 14px; padding-top: 24px; text-align: center;">
          {{.FooterText}}
        </div>
      </td>
      <td>&nbsp;</td>
    </tr>
  </table>
</body>
</html>`))

// GetEmailLayout renders content inside the shared email shell.
func GetEmailLayout(props EmailLayoutProps) string {
	if props.FooterText == "" {
		props.FooterText = "GoIconicWay · Route 66 Adventures"
	}

	var buf bytes.Buffer
	err := layoutTemplate.Execute(&buf, emailTemplateData{
		Preheader:  props.Preheader,
		Content:    template.HTML(props.Content),
		FooterText: props.FooterText,
	})
	if err != nil {
		log.Printf("ERROR: failed to render email layout: %v", err)
		return props.Content
	}
	return buf.String()
}
