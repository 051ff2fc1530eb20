package notifier

import (
	"bytes"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"price-tracker-bot/lib/helpers"
)

// SubjectPriceDrop is the subject line for fired alerts.
const SubjectPriceDrop = "🚨 Price Drop Alert for Your Tracked Product!"

var priceDropTemplate = template.Must(template.New("priceDrop").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f9f9f9; color: #333; }
    .container { max-width: 600px; margin: 20px auto; background-color: #fff; padding: 20px; border: 1px solid #ddd; border-radius: 8px; box-shadow: 0 4px 8px rgba(0, 0, 0, 0.1); }
    .header { text-align: center; border-bottom: 1px solid #ddd; padding-bottom: 10px; }
    .header h1 { margin: 0; color: #007BFF; }
    .content { margin-top: 20px; }
    .content p { line-height: 1.6; font-size: 16px; }
    .content a { display: inline-block; margin-top: 10px; padding: 10px 20px; background-color: #007BFF; color: #fff; text-decoration: none; border-radius: 4px; font-weight: bold; }
    .footer { margin-top: 20px; text-align: center; font-size: 12px; color: #888; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>Price Drop Alert!</h1></div>
    <div class="content">
      <h4>{{.Title}}</h4>
      <p>Good news! The price for the product you are tracking has dropped to <strong>{{.Price}}</strong>.</p>
      <p>Don't miss this opportunity to grab the product at a discounted price.</p>
      <a href="{{.URL}}" target="_blank">View Product</a>
    </div>
    <div class="footer">
      <p>You are receiving this email because you subscribed to price alerts on our platform{{if .Age}} {{.Age}}{{end}}.</p>
      <p>&copy; {{.Year}} Price Tracker Inc. All rights reserved.</p>
    </div>
  </div>
</body>
</html>
`))

// RenderPriceDropEmail produces the notification body for a fired alert.
// Rendering is deterministic; delivery is the Notifier's problem.
func RenderPriceDropEmail(title string, currentPrice float64, url, createdAt string) (string, error) {
	data := struct {
		Title string
		Price string
		URL   string
		Age   string
		Year  int
	}{
		Title: title,
		Price: helpers.FormatPriceUS(currentPrice),
		URL:   url,
		Year:  time.Now().Year(),
	}

	if created, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		data.Age = humanize.Time(created)
	}

	var buf bytes.Buffer
	if err := priceDropTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "could not render price drop email")
	}
	return buf.String(), nil
}
