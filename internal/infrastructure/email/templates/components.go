// Package templates provides email template components
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// GuideEmailProps configures the travel guide delivery email body.
type GuideEmailProps struct {
	FirstName string
	GuideURL  string
}

var guideTemplate = template.Must(template.New("guideEmail").Parse(`
  <h1 style="font-family: Helvetica, sans-serif; font-size: 24px; font-weight: bold; margin: 0; margin-bottom: 16px;">Your Route 66 guide is here, {{.FirstName}}!</h1>
  <p style="font-family: Helvetica, sans-serif; font-size: 16px; margin: 0; margin-bottom: 16px;">Thanks for subscribing. Your free guide to the classic Chicago-to-Santa-Monica drive is one click away.</p>
  <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse: separate; width: auto;">
    <tbody>
      <tr>
        <td style="border-radius: 4px; text-align: center; background-color: #d97706;" valign="top" align="center" bgcolor="#d97706">
          <a href="{{.GuideURL}}" target="_blank" style="border: solid 2px #d97706; border-radius: 4px; box-sizing: border-box; cursor: pointer; display: inline-block; font-size: 16px; font-weight: bold; margin: 0; padding: 12px 24px; text-decoration: none; background-color: #d97706; border-color: #d97706; color: #ffffff;">Download the guide</a>
        </td>
      </tr>
    </tbody>
  </table>
  <p style="font-family: Helvetica, sans-serif; font-size: 16px; margin: 16px 0 0;">Questions about routes, vehicles, or packing? Reply to this email or ask our concierge on the site.</p>`))

// GetGuideEmailContent renders the guide delivery email body.
func GetGuideEmailContent(props GuideEmailProps) string {
	if props.FirstName == "" {
		props.FirstName = "traveler"
	}

	var buf bytes.Buffer
	if err := guideTemplate.Execute(&buf, props); err != nil {
		log.Printf("ERROR: failed to render guide email: %v", err)
		return ""
	}
	return buf.String()
}
